// Package bits implements a bit-level stream over byte storage, for data
// that is not aligned to 8-bit boundaries: boolean flags packed as single
// bits, length tags of 2 or 3 bits, and similar. It is the side channel of
// the cser wire format.
//
// The Writer emits into an fstring.Buffer; the Reader walks a raw byte
// slice. Bits are packed LSB-first within each byte, so the Reader must
// consume them in the same order the Writer produced them.
package bits

import (
	"github.com/rony4d/go-faststring/fstring"
)

// Writer appends variable-width bit words to a buffer. The cursor within
// the current byte lives here; the bytes themselves accumulate in Out.
type Writer struct {
	Out *fstring.Buffer
	// bitOffset is the index (0-7) of the next bit to write in the last
	// byte of Out. Zero means the next write starts a fresh byte.
	bitOffset int
}

// Reader extracts bit words from a byte slice.
type Reader struct {
	buf        []byte
	byteOffset int
	bitOffset  int
}

// NewWriter creates a Writer emitting into out. Out may already hold
// byte-aligned data; the bit stream begins at a fresh byte.
func NewWriter(out *fstring.Buffer) *Writer {
	return &Writer{Out: out}
}

// NewReader creates a Reader over bb.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

func (w *Writer) byteBitsFree() int {
	return 8 - w.bitOffset
}

// orIntoLastByte merges bits of v into the current byte at the cursor
// position. The Bytes view is fetched fresh because any WriteByte may have
// moved the storage.
func (w *Writer) orIntoLastByte(v uint) {
	bb := w.Out.Bytes()
	bb[len(bb)-1] |= byte(v << uint(w.bitOffset))
}

// lowBits masks v down to its low (8 - drop) bits.
func lowBits(v uint, drop int) uint {
	return v & (0xff >> uint(drop))
}

// Write appends the lowest 'bits' bits of v. Bits of v above 'bits' must be
// zero; the value is split across bytes as needed.
func (w *Writer) Write(bits int, v uint) {
	if w.bitOffset == 0 {
		w.Out.WriteByte(0)
	}

	free := w.byteBitsFree()
	if bits <= free {
		// Fits in the current byte.
		w.orIntoLastByte(v)
		if bits == free {
			w.bitOffset = 0
		} else {
			w.bitOffset += bits
		}
		return
	}

	// Fill the current byte, then recurse with what remains.
	w.orIntoLastByte(lowBits(v, w.bitOffset))
	w.bitOffset = 0
	w.Write(bits-free, v>>uint(free))
}

func (r *Reader) byteBitsFree() int {
	return 8 - r.bitOffset
}

// Read extracts the next 'bits' bits and advances the cursor.
// Panics if the stream is exhausted.
func (r *Reader) Read(bits int) (v uint) {
	if bits == 0 {
		return 0
	}

	free := r.byteBitsFree()
	if bits <= free {
		// Isolate [bitOffset, bitOffset+bits) of the current byte.
		drop := 8 - (r.bitOffset + bits)
		v = lowBits(uint(r.buf[r.byteOffset]), drop) >> uint(r.bitOffset)
		if bits == free {
			r.bitOffset = 0
			r.byteOffset++
		} else {
			r.bitOffset += bits
		}
		return v
	}

	// Take the rest of the current byte, then recurse; the continuation
	// holds the higher bits of the result.
	v = uint(r.buf[r.byteOffset]) >> uint(r.bitOffset)
	r.bitOffset = 0
	r.byteOffset++
	v |= r.Read(bits-free) << uint(free)
	return v
}

// View reads the next 'bits' bits without advancing the cursor.
func (r *Reader) View(bits int) uint {
	cp := *r
	return cp.Read(bits)
}

// NonReadBytes returns the count of bytes not yet fully or partially
// consumed, including the byte under the cursor.
func (r *Reader) NonReadBytes() int {
	return len(r.buf) - r.byteOffset
}

// NonReadBits returns the count of unread bits remaining in the stream.
func (r *Reader) NonReadBits() int {
	return r.NonReadBytes()*8 - r.bitOffset
}

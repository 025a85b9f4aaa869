package cser

import (
	"errors"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"

	"github.com/rony4d/go-faststring/bits"
	"github.com/rony4d/go-faststring/fast"
	"github.com/rony4d/go-faststring/fstring"
)

var (
	// ErrNonCanonicalEncoding is returned when a value was not packed into
	// its minimal representation, or padding bits are non-zero.
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	// ErrMalformedEncoding is returned when the blob structure is invalid
	// or truncated.
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrTooLargeAlloc is returned when a decoded size exceeds the limit
	// the caller allowed.
	ErrTooLargeAlloc = errors.New("too large allocation")
)

// MaxAlloc bounds decoded byte slices, so malformed input cannot force an
// arbitrarily large allocation.
const MaxAlloc = 100 * 1024

// Writer encodes values into the two output streams.
type Writer struct {
	BitsW  *bits.Writer    // booleans and width tags
	BytesW *fstring.Buffer // byte-aligned data
}

// Reader decodes values from the two input streams.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter creates a ready-to-use Writer. The body stream is preallocated
// past the inline size since most records exceed it; the bit stream rarely
// does and stays inline.
func NewWriter() *Writer {
	return &Writer{
		BitsW:  bits.NewWriter(fstring.New()),
		BytesW: fstring.NewCap(200),
	}
}

// writeUint64Compact encodes v as a stop-bit varint: 7 data bits per byte,
// with the high bit marking the FINAL byte (the inverse of the usual
// continuation-bit convention).
func writeUint64Compact(out *fstring.Buffer, v uint64) {
	for {
		chunk := v & 0x7f
		v >>= 7
		if v == 0 {
			chunk |= 0x80
		}
		out.WriteByte(byte(chunk))
		if v == 0 {
			return
		}
	}
}

// readUint64Compact decodes the stop-bit varint, rejecting representations
// with a redundant zero final byte.
func readUint64Compact(bytesR *fast.Reader) uint64 {
	v := uint64(0)
	stop := false
	for i := 0; !stop; i++ {
		chunk := uint64(bytesR.ReadByte())
		stop = (chunk & 0x80) != 0
		word := chunk & 0x7f
		v |= word << uint(i*7)

		if i > 0 && stop && word == 0 {
			panic(ErrNonCanonicalEncoding)
		}
	}
	return v
}

// writeUint64BitCompact writes v as little-endian bytes, using exactly as
// many bytes as the value needs but no fewer than minSize. Returns the
// count written.
func writeUint64BitCompact(out *fstring.Buffer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		out.WriteByte(byte(v))
		size++
		v >>= 8
	}
	return
}

// readUint64BitCompact reads size little-endian bytes, rejecting zero
// padding in the most significant byte.
func readUint64BitCompact(bytesR *fast.Reader, size int) uint64 {
	var (
		v    uint64
		last byte
	)
	buf := bytesR.Read(size)
	for i, b := range buf {
		v |= uint64(b) << uint(8*i)
		last = b
	}

	if size > 1 && last == 0 {
		panic(ErrNonCanonicalEncoding)
	}

	return v
}

// readU64_bits reads a width tag of bitsForSize bits from the bit stream,
// then that many bytes (offset by minSize) from the body.
func (r *Reader) readU64_bits(minSize int, bitsForSize int) uint64 {
	size := r.BitsR.Read(bitsForSize)
	size += uint(minSize)
	return readUint64BitCompact(r.BytesR, int(size))
}

// writeU64_bits writes the value bytes to the body and the width tag to the
// bit stream.
func (w *Writer) writeU64_bits(minSize int, bitsForSize int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(bitsForSize, uint(size-minSize))
}

// U8 writes a single byte; no width tag needed.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U16 packs into 1-2 bytes, tagged with 1 bit.
func (w *Writer) U16(v uint16) {
	w.writeU64_bits(1, 1, uint64(v))
}

func (r *Reader) U16() uint16 {
	return uint16(r.readU64_bits(1, 1))
}

// U32 packs into 1-4 bytes, tagged with 2 bits.
func (w *Writer) U32(v uint32) {
	w.writeU64_bits(1, 2, uint64(v))
}

func (r *Reader) U32() uint32 {
	return uint32(r.readU64_bits(1, 2))
}

// U64 packs into 1-8 bytes, tagged with 3 bits.
func (w *Writer) U64(v uint64) {
	w.writeU64_bits(1, 3, v)
}

func (r *Reader) U64() uint64 {
	return r.readU64_bits(1, 3)
}

// VarUint is the encoding used for counts and map sizes; identical to U64.
func (w *Writer) VarUint(v uint64) {
	w.writeU64_bits(1, 3, v)
}

func (r *Reader) VarUint() uint64 {
	return r.readU64_bits(1, 3)
}

// I64 writes the sign as a bit and the magnitude as a U64.
func (w *Writer) I64(v int64) {
	w.Bool(v < 0)
	if v < 0 {
		w.U64(uint64(-v))
	} else {
		w.U64(uint64(v))
	}
}

func (r *Reader) I64() int64 {
	neg := r.Bool()
	abs := r.U64()

	// Negative zero would be a second representation of zero.
	if neg && abs == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	if neg {
		return -int64(abs)
	}
	return int64(abs)
}

// U56 packs into 0-7 bytes, tagged with 3 bits. Used for slice lengths.
func (w *Writer) U56(v uint64) {
	const max = 1<<56 - 1
	if v > max {
		panic("cser: value exceeds 56 bits")
	}
	w.writeU64_bits(0, 3, v)
}

func (r *Reader) U56() uint64 {
	return r.readU64_bits(0, 3)
}

// U64BigEndian writes v as exactly 8 big-endian bytes. Unlike U64 this is
// not width-compressed; it preserves byte-wise ordering of the encoded
// form, which key encodings rely on.
func (w *Writer) U64BigEndian(v uint64) {
	w.BytesW.Append(bigendian.Uint64ToBytes(v))
}

func (r *Reader) U64BigEndian() uint64 {
	return bigendian.BytesToUint64(r.BytesR.Read(8))
}

// Bool writes a single bit.
func (w *Writer) Bool(v bool) {
	u := uint(0)
	if v {
		u = 1
	}
	w.BitsW.Write(1, u)
}

func (r *Reader) Bool() bool {
	return r.BitsR.Read(1) != 0
}

// FixedBytes writes raw bytes with no length prefix; the reader variant
// fills the slice it is given.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Append(v)
}

func (r *Reader) FixedBytes(v []byte) {
	copy(v, r.BytesR.Read(len(v)))
}

// SliceBytes writes a U56 length followed by the raw bytes.
func (w *Writer) SliceBytes(v []byte) {
	w.U56(uint64(len(v)))
	w.FixedBytes(v)
}

func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.U56()
	if size > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// PaddedBytes left-pads b with zeros to at least n bytes.
func PaddedBytes(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	padding := make([]byte, n-len(b))
	return append(padding, b...)
}

// BigInt writes the magnitude as a byte slice. The sign is not encoded;
// callers use it for inherently non-negative quantities.
func (w *Writer) BigInt(v *big.Int) {
	bigBytes := []byte{}
	if v.Sign() != 0 {
		bigBytes = v.Bytes()
	}
	w.SliceBytes(bigBytes)
}

func (r *Reader) BigInt() *big.Int {
	buf := r.SliceBytes(512)
	if len(buf) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(buf)
}

// Package fast provides a minimal cursor over a byte slice for linear
// decoding paths.
//
// The write side of those paths is fstring.Buffer; Reader is its consuming
// counterpart, typically walking a slice obtained from Buffer.Release. It
// performs no bounds-error reporting: reading past the end panics with a
// slice range error, a deliberate trade of safety for speed that is
// acceptable for internal, trusted decoding code. Decode boundaries that
// accept untrusted input recover the panic (see the cser package).
package fast

// Reader consumes a byte slice front to back.
type Reader struct {
	buf    []byte
	offset int
}

// NewReader creates a Reader over bb. The Reader does not copy bb; it reads
// the caller's bytes in place.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:    bb,
		offset: 0,
	}
}

// Read consumes and returns the next n bytes.
//
// The returned slice shares memory with the underlying buffer; it is valid
// as long as the buffer is. Panics if fewer than n bytes remain.
func (r *Reader) Read(n int) []byte {
	res := r.buf[r.offset : r.offset+n]
	r.offset += n
	return res
}

// ReadByte consumes and returns a single byte. Panics at end of buffer.
func (r *Reader) ReadByte() byte {
	res := r.buf[r.offset]
	r.offset++
	return res
}

// Position returns the count of bytes consumed so far.
func (r *Reader) Position() int {
	return r.offset
}

// Bytes returns the entire underlying slice, consumed or not.
func (r *Reader) Bytes() []byte {
	return r.buf
}

// Empty reports whether all bytes have been consumed.
func (r *Reader) Empty() bool {
	return len(r.buf) == r.offset
}

// Package cser implements a compact canonical serialization format.
//
// Values are split across two streams: byte-aligned data goes to a body
// stream, while booleans and small width tags go to a bit stream. On the
// wire the two are packed as
//
//	[ body bytes ][ bit-stream bytes ][ reversed varint: bit-stream length ]
//
// The length suffix is written back to front so a decoder can discover the
// split point by scanning from the end of the blob. Encodings are strictly
// canonical: a value has exactly one valid representation, and decoding
// rejects padding, oversized widths, and unconsumed data.
//
// Both streams accumulate in fstring buffers on the write side and are
// walked with fast and bits readers on the read side.
package cser

import (
	"github.com/rony4d/go-faststring/bits"
	"github.com/rony4d/go-faststring/fast"
	"github.com/rony4d/go-faststring/fstring"
)

// MarshalBinaryAdapter runs the provided serialization callback against a
// fresh Writer and packs both streams into a single byte slice.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()

	err := marshalCser(w)
	if err != nil {
		return nil, err
	}

	return binaryFromCSER(w)
}

// binaryFromCSER appends the bit-stream bytes and the reversed length
// suffix to the body and hands the result off without a further copy.
func binaryFromCSER(w *Writer) ([]byte, error) {
	body := w.BytesW
	bitstream := w.BitsW.Out.Bytes()

	body.Append(bitstream)

	// The suffix varint is laid down in reverse so the decoder can read it
	// back to front from the end of the blob.
	size := fstring.New()
	writeUint64Compact(size, uint64(len(bitstream)))
	body.Append(reversed(size.Bytes()))

	return body.Release(), nil
}

// binaryToCSER splits a raw blob back into its bit and body streams.
func binaryToCSER(raw []byte) (bbits []byte, bbytes []byte, err error) {
	// The suffix is at most 9 bytes (64 bits, 7 per byte). Un-reverse the
	// tail and decode the bit-stream length from it.
	sizeBuf := reversed(tail(raw, 9))
	sizeReader := fast.NewReader(sizeBuf)
	bitsSize := readUint64Compact(sizeReader)

	// Drop the suffix; what remains is body plus bit stream.
	raw = raw[:len(raw)-sizeReader.Position()]

	if uint64(len(raw)) < bitsSize {
		err = ErrMalformedEncoding
		return
	}

	bbits = raw[uint64(len(raw))-bitsSize:]
	bbytes = raw[:uint64(len(raw))-bitsSize]
	return
}

// UnmarshalBinaryAdapter splits the raw blob, runs the provided
// deserialization callback, and enforces that the encoding was canonical:
// every byte and every bit must be consumed, and trailing padding bits must
// be zero.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(reader *Reader) error) (err error) {
	// The readers skip bounds checks; truncated input surfaces as a slice
	// range panic, which is reported as a malformed encoding.
	defer func() {
		if r := recover(); r != nil {
			err = ErrMalformedEncoding
		}
	}()

	bbits, bbytes, err := binaryToCSER(raw)
	if err != nil {
		return err
	}

	bodyReader := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}

	err = unmarshalCser(bodyReader)
	if err != nil {
		return err
	}

	if bodyReader.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	// Unused bits of the final bit-stream byte must be zero.
	tail := bodyReader.BitsR.Read(bodyReader.BitsR.NonReadBits())
	if tail != 0 {
		return ErrNonCanonicalEncoding
	}
	if !bodyReader.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}

	return nil
}

// tail returns the last n bytes of b, or all of b if it is shorter.
func tail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}

// reversed returns a new slice with the bytes of b in reverse order.
func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

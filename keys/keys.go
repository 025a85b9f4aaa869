// Package keys builds composite storage keys whose byte-wise order matches
// the order of their fields, and computes iteration bounds over them.
//
// Integer fields are laid down big-endian so that numeric order and
// bytes.Compare order agree, which is what ordered key-value stores sort
// by. Keys are assembled in an fstring.Buffer and handed off without a
// final copy.
package keys

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-faststring/fstring"
)

// Builder accumulates key fields. Methods return the Builder so fields can
// be chained; a Builder is single-use once Build is called.
type Builder struct {
	buf *fstring.Buffer
}

// NewBuilder starts a key with the given table prefix. An empty or nil
// prefix is allowed.
func NewBuilder(prefix []byte) *Builder {
	b := &Builder{buf: fstring.New()}
	b.buf.Append(prefix)
	return b
}

// Raw appends bytes as-is.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Append(p)
	return b
}

// Byte appends a single byte, typically a field separator or type tag.
func (b *Builder) Byte(v byte) *Builder {
	b.buf.WriteByte(v)
	return b
}

// U16 appends v as 2 big-endian bytes.
func (b *Builder) U16(v uint16) *Builder {
	b.buf.Append(bigendian.Uint16ToBytes(v))
	return b
}

// U32 appends v as 4 big-endian bytes.
func (b *Builder) U32(v uint32) *Builder {
	b.buf.Append(bigendian.Uint32ToBytes(v))
	return b
}

// U64 appends v as 8 big-endian bytes.
func (b *Builder) U64(v uint64) *Builder {
	b.buf.Append(bigendian.Uint64ToBytes(v))
	return b
}

// Len returns the byte length of the key built so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Build hands off the assembled key. The Builder resets to empty and may be
// reused for another key with no prefix.
func (b *Builder) Build() []byte {
	return b.buf.Release()
}

// String returns the hex form of the key built so far, for logs and tests.
func (b *Builder) String() string {
	return "0x" + common.Bytes2Hex(b.buf.Bytes())
}

// PrefixEnd returns the exclusive upper bound for iterating all keys that
// start with prefix: the lexicographic successor of the prefix. It returns
// nil when no finite bound exists (empty or all-0xff prefix), meaning the
// iteration is unbounded above.
func PrefixEnd(prefix []byte) []byte {
	b := fstring.New()
	b.AssignCopy(prefix)
	if !b.AdvanceToSuccessor() {
		return nil
	}
	return b.Release()
}

// Range returns the [start, end) bounds covering every key with the given
// prefix. start is an owned copy; end is nil when unbounded.
func Range(prefix []byte) (start, end []byte) {
	start = make([]byte, len(prefix))
	copy(start, prefix)
	end = PrefixEnd(prefix)
	return
}

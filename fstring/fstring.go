// Package fstring implements a growable, contiguous byte buffer optimized
// for append-heavy workloads, such as assembling serialized records or
// storage keys.
//
// Purpose:
// - `bytes.Buffer` keeps a read cursor and zero-fills on Grow; both are wasted
//   work for pure write-side accumulation.
// - Buffer tracks only a logical length over an allocated array. Resize
//   exposes uninitialized bytes instead of memsetting them, and growth is
//   geometric (at least +50%) so repeated small appends amortize to O(1).
// - Small contents live in a fixed 32-byte array embedded in the struct, so
//   a Buffer allocated together with its owner needs no second allocation
//   until the contents outgrow the inline space.
//
// A Buffer is NOT safe for concurrent use and must not be copied by value
// after first use: the inline storage is embedded in the struct, and a copy
// would alias it.
package fstring

// InitialCapacity is the size of the inline storage embedded in every
// Buffer. A Buffer never reports a smaller capacity than this.
const InitialCapacity = 32

// smallAppend is the cutoff below which Append copies byte-by-byte instead
// of calling copy. Appending a handful of bytes is common enough in
// prefix-compressed streams (successive values differing only in a few
// trailing bytes) that the loop beats the bulk copy in benchmarks.
const smallAppend = 4

// Buffer owns a byte array and tracks a logical length separately from the
// allocated capacity. Bytes between Len() and Cap() hold unspecified
// contents and must not be read.
type Buffer struct {
	// buf is the full allocated storage; len(buf) is the capacity. It aliases
	// either the embedded inline array or a separately allocated heap slice.
	buf []byte
	// length is the count of valid bytes, always <= len(buf).
	length int
	// inline is the small-buffer storage used until contents outgrow it.
	// Once abandoned for a heap slice it is never readopted, except by
	// Release resetting the Buffer to its initial state.
	inline [InitialCapacity]byte
}

// New creates an empty Buffer backed by its inline storage.
func New() *Buffer {
	b := &Buffer{}
	b.buf = b.inline[:]
	return b
}

// NewCap creates an empty Buffer with at least the given capacity.
// Capacities up to InitialCapacity stay on the inline storage; anything
// larger is allocated up front, exactly sized.
func NewCap(capacity int) *Buffer {
	b := New()
	if capacity > InitialCapacity {
		b.buf = make([]byte, capacity)
	}
	return b
}

// Len returns the count of valid bytes.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the allocated capacity. It never decreases over the life of
// the Buffer, except across a Release.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Clear resets the valid length to zero. Storage and capacity are untouched.
func (b *Buffer) Clear() {
	b.length = 0
}

// Bytes returns the valid byte range [0, Len()) as a view into the Buffer's
// own storage.
//
// WARNING: the view is invalidated by any subsequent mutating call
// (Append, WriteByte, Resize, Reserve, Assign*, Release). Holding it across
// such a call aliases freed or stale storage.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.length]
}

// At returns the byte at offset i. It is the hot-path accessor: i is not
// checked against the logical length, only against the allocated capacity,
// so reading at or past Len() is a caller contract violation and yields
// unspecified bytes. Bounds-careful callers should index Bytes() instead.
func (b *Buffer) At(i int) byte {
	return b.buf[i]
}

// Reserve grows the capacity to exactly newCapacity, preserving the valid
// bytes. It is a no-op if the Buffer already has that much room; capacity is
// never reduced.
func (b *Buffer) Reserve(newCapacity int) {
	if newCapacity <= len(b.buf) {
		return
	}
	b.growTo(newCapacity)
}

// Resize sets the valid length to newLength, growing geometrically first if
// it exceeds the current capacity.
//
// NOTE: in contrast to slices and bytes.Buffer, newly exposed bytes between
// the old and new length are NOT zeroed. Callers must overwrite them before
// reading.
func (b *Buffer) Resize(newLength int) {
	if newLength > len(b.buf) {
		b.growByAtLeast(newLength - b.length)
	}
	b.length = newLength
}

// Append copies p onto the end of the Buffer, growing as needed.
func (b *Buffer) Append(p []byte) {
	b.ensureRoom(len(p))
	if len(p) <= smallAppend {
		dst := b.buf[b.length:]
		for i := 0; i < len(p); i++ {
			dst[i] = p[i]
		}
	} else {
		copy(b.buf[b.length:], p)
	}
	b.length += len(p)
}

// AppendString copies the bytes of s onto the end of the Buffer.
func (b *Buffer) AppendString(s string) {
	b.ensureRoom(len(s))
	copy(b.buf[b.length:], s)
	b.length += len(s)
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) {
	b.ensureRoom(1)
	b.buf[b.length] = v
	b.length++
}

// Write appends p and reports len(p) with a nil error, satisfying io.Writer
// so a Buffer can sit behind encoders that expect one.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// AssignCopy replaces the Buffer's contents with a copy of p.
func (b *Buffer) AssignCopy(p []byte) {
	// Reset the length first so that a growing Resize does not waste time
	// copying the now-irrelevant old contents.
	b.length = 0
	b.Resize(len(p))
	copy(b.buf, p)
}

// AssignString replaces the Buffer's contents with a copy of the bytes of s.
func (b *Buffer) AssignString(s string) {
	b.length = 0
	b.Resize(len(s))
	copy(b.buf, s)
}

// String returns an owned copy of the valid bytes.
func (b *Buffer) String() string {
	return string(b.buf[:b.length])
}

// Release transfers ownership of the accumulated bytes to the caller and
// resets the Buffer to its initial empty, inline-backed state.
//
// If the contents are heap-allocated the existing array is handed off
// directly without copying; note its backing capacity may exceed len of the
// returned slice. Inline contents are copied into a new, exactly-sized
// slice.
func (b *Buffer) Release() []byte {
	var out []byte
	if b.isInline() {
		out = make([]byte, b.length)
		copy(out, b.buf)
	} else {
		out = b.buf[:b.length]
	}
	b.length = 0
	b.buf = b.inline[:]
	return out
}

// AdvanceToSuccessor mutates the Buffer in place to the lexicographically
// smallest byte string of equal or smaller length that is strictly greater
// than the current contents: trailing 0xff bytes are truncated and the first
// non-0xff byte found scanning backward is incremented.
//
// It returns false, leaving the Buffer entirely unchanged, when no such
// successor exists (the Buffer is empty or all 0xff).
//
// Examples: "foo" -> "fop"; "aab\xff\xff" -> "aac"; "\xff" -> false.
//
// The primary use is computing exclusive upper bounds for prefix scans over
// ordered keys.
func (b *Buffer) AdvanceToSuccessor() bool {
	index := b.length - 1
	for index >= 0 && b.buf[index] == 0xff {
		index--
	}
	if index < 0 {
		return false
	}
	b.buf[index]++
	b.length = index + 1
	return true
}

// isInline reports whether storage is still the embedded inline array.
func (b *Buffer) isInline() bool {
	return &b.buf[0] == &b.inline[0]
}

// ensureRoom guarantees capacity for count more bytes. The growth itself is
// kept out of line so the common already-fits case stays cheap.
func (b *Buffer) ensureRoom(count int) {
	if b.length+count <= len(b.buf) {
		return
	}
	b.growByAtLeast(count)
}

// growByAtLeast grows the array by count bytes or 50% of the current
// capacity, whichever is more.
func (b *Buffer) growByAtLeast(count int) {
	newCapacity := len(b.buf) + len(b.buf)/2
	if b.length+count > newCapacity {
		newCapacity = b.length + count
	}
	b.growTo(newCapacity)
}

// growTo reallocates to exactly newCapacity, which must exceed the current
// capacity, and carries over the valid bytes. An abandoned inline array is
// left for the GC along with the rest of the struct; an abandoned heap
// array is unreferenced from here on.
func (b *Buffer) growTo(newCapacity int) {
	arr := make([]byte, newCapacity)
	copy(arr, b.buf[:b.length])
	b.buf = arr
}

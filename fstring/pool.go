package fstring

import "sync"

// maxPooledCap bounds the capacity of buffers the pool retains. A buffer
// that grew past this while in use is dropped on Put instead of pinning a
// large allocation for the pool's lifetime.
const maxPooledCap = 64 << 10

var pool = sync.Pool{
	New: func() interface{} {
		return New()
	},
}

// Get returns a cleared Buffer from the package pool, ready for appends.
func Get() *Buffer {
	return pool.Get().(*Buffer)
}

// Put returns a Buffer to the pool. Oversized buffers are discarded.
// The caller must not touch b afterwards.
func Put(b *Buffer) {
	if b == nil || b.Cap() > maxPooledCap {
		return
	}
	b.Clear()
	pool.Put(b)
}

package fast

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-faststring/fstring"
)

// TestReader_Integration writes through an fstring.Buffer and reads the
// released bytes back, exercising the intended producer/consumer pairing.
func TestReader_Integration(t *testing.T) {
	require := require.New(t)

	const N = 100
	extraData := []byte{0, 0, 0xFF, 9, 0}

	w := fstring.New()
	for i := byte(0); i < N; i++ {
		w.WriteByte(i)
	}
	w.Append(extraData)

	r := NewReader(w.Release())
	require.Equal(N+len(extraData), len(r.Bytes()))
	require.False(r.Empty())
	require.Equal(0, r.Position())

	for exp := byte(0); exp < N; exp++ {
		require.Equal(exp, r.ReadByte(), "ReadByte mismatch at index %d", exp)
	}
	require.Equal(N, r.Position())

	require.Equal(extraData, r.Read(len(extraData)))
	require.True(r.Empty())
	require.Equal(N+len(extraData), r.Position())
}

// TestReader_Boundaries covers empty input and partial reads.
func TestReader_Boundaries(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		r := NewReader([]byte{})
		require.True(t, r.Empty())
		require.Equal(t, 0, r.Position())
	})

	t.Run("Partial reads", func(t *testing.T) {
		r := NewReader([]byte{1, 2, 3, 4, 5})

		require.Equal(t, []byte{1, 2}, r.Read(2))
		require.Equal(t, 2, r.Position())
		require.False(t, r.Empty())

		require.Equal(t, byte(3), r.ReadByte())

		require.Equal(t, []byte{4, 5}, r.Read(2))
		require.True(t, r.Empty())
	})

	t.Run("Shared memory", func(t *testing.T) {
		src := []byte{1, 2, 3}
		r := NewReader(src)
		view := r.Read(3)
		view[0] = 9
		require.Equal(t, byte(9), src[0], "Read must return a view, not a copy")
	})
}

// Benchmark compares Reader against the standard library bytes.Reader.
func Benchmark(b *testing.B) {
	src := make([]byte, 1000)
	rand.Read(src)

	b.Run("Std", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := bytes.NewReader(src)
			for j := 0; j < len(src); j++ {
				_, _ = r.ReadByte()
			}
		}
	})
	b.Run("Fast", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := NewReader(src)
			for j := 0; j < len(src); j++ {
				_ = r.ReadByte()
			}
		}
	})
}

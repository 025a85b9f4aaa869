package bits

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-faststring/fstring"
)

// testWord is one value to push through the stream: 'v' occupying 'bits'.
type testWord struct {
	bits int
	v    uint
}

// bytesToFit returns the minimum byte count holding the given bit count.
func bytesToFit(bits int) int {
	if bits%8 == 0 {
		return bits / 8
	}
	return bits/8 + 1
}

// genTestWords produces a random word sequence for round-trip testing.
func genTestWords(r *rand.Rand, maxCount int, maxBits int) []testWord {
	count := r.Intn(maxCount)
	words := make([]testWord, count)
	for i := range words {
		if maxBits == 1 {
			words[i].bits = 1
		} else {
			words[i].bits = 1 + r.Intn(maxBits-1)
		}
		words[i].v = uint(r.Intn(1 << uint(words[i].bits)))
	}
	return words
}

// testStream writes all words, checks the packed size, then reads them back
// and checks cursor bookkeeping and end-of-stream state.
func testStream(t *testing.T, words []testWord, name string) {
	require := require.New(t)

	out := fstring.New()
	writer := NewWriter(out)

	totalBits := 0
	for _, w := range words {
		writer.Write(w.bits, w.v)
		totalBits += w.bits
	}
	require.Equal(bytesToFit(totalBits), out.Len(),
		"%s: packed size mismatch for %d bits", name, totalBits)

	reader := NewReader(out.Bytes())
	readBits := 0
	for i, w := range words {
		// View must not advance.
		require.Equal(w.v, reader.View(w.bits), "%s: View mismatch at word %d", name, i)
		require.Equal(w.v, reader.Read(w.bits), "%s: Read mismatch at word %d", name, i)
		readBits += w.bits
		require.Equal(out.Len()*8-readBits, reader.NonReadBits(), "%s: NonReadBits at word %d", name, i)
	}

	// Only zero padding may remain, always less than one byte.
	rest := reader.NonReadBits()
	require.Less(rest, 8, "%s: more than padding left", name)
	require.Equal(uint(0), reader.Read(rest), "%s: padding bits must be zero", name)
	require.Equal(0, reader.NonReadBytes(), "%s: bytes left after full read", name)
}

func TestStream_Fixed(t *testing.T) {
	testStream(t, nil, "empty")
	testStream(t, []testWord{{1, 1}}, "single bit")
	testStream(t, []testWord{{8, 0xff}}, "full byte")
	testStream(t, []testWord{{3, 0b101}, {7, 0b1111111}, {2, 0}}, "byte spanning")
	testStream(t, []testWord{{8, 0xaa}, {8, 0x55}, {8, 0x00}, {8, 0xff}}, "aligned bytes")
}

func TestStream_Random(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for maxBits := 1; maxBits <= 8; maxBits++ {
		for try := 0; try < 20; try++ {
			words := genTestWords(r, 50, maxBits)
			testStream(t, words, fmt.Sprintf("maxBits=%d try=%d", maxBits, try))
		}
	}
}

// TestWriter_AfterAlignedData verifies that a bit stream may start after
// byte-aligned content already present in the output buffer.
func TestWriter_AfterAlignedData(t *testing.T) {
	out := fstring.New()
	out.AppendString("hdr")

	w := NewWriter(out)
	w.Write(4, 0xf)
	w.Write(4, 0x0)

	assert.Equal(t, 4, out.Len())
	assert.Equal(t, byte(0x0f), out.At(3))
}

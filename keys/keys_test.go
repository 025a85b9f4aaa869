package keys

import (
	"bytes"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// TestBuilder_Order verifies the core property: keys built from increasing
// field values compare in the same order byte-wise.
func TestBuilder_Order(t *testing.T) {
	require := require.New(t)

	prefix := []byte("tbl")
	vals := []uint64{0, 1, 255, 256, 1 << 16, 1 << 32, math.MaxUint64}

	var prev []byte
	for i, v := range vals {
		key := NewBuilder(prefix).U64(v).Build()
		require.Equal(len(prefix)+8, len(key))
		require.True(bytes.HasPrefix(key, prefix))

		if prev != nil {
			require.True(bytes.Compare(prev, key) < 0,
				"key for %d does not sort after key for %d", v, vals[i-1])
		}
		prev = key
	}
}

// TestBuilder_Fields verifies the layout of a multi-field key.
func TestBuilder_Fields(t *testing.T) {
	require := require.New(t)

	key := NewBuilder([]byte{0xaa}).
		Byte('k').
		U16(0x0102).
		U32(0x03040506).
		U64(0x0708090a0b0c0d0e).
		Raw([]byte{0xff}).
		Build()

	require.Equal(common.FromHex("0xaa6b0102030405060708090a0b0c0d0eff"), key)
}

// TestBuilder_Reuse verifies that Build resets the Builder for the next key.
func TestBuilder_Reuse(t *testing.T) {
	require := require.New(t)

	b := NewBuilder([]byte("p"))
	b.U32(7)
	require.Equal(5, b.Len())

	first := b.Build()
	require.Equal(0, b.Len())

	second := b.Raw([]byte("q")).Build()
	require.Equal([]byte("q"), second)
	require.Equal(common.FromHex("0x7000000007"), first, "first key must survive the reuse")
}

func TestBuilder_String(t *testing.T) {
	b := NewBuilder(nil).Byte(0xde).Byte(0xad)
	require.Equal(t, "0xdead", b.String())
}

// TestPrefixEnd covers the successor-based upper bound, including the
// unbounded cases.
func TestPrefixEnd(t *testing.T) {
	cases := []struct {
		prefix []byte
		end    []byte
	}{
		{[]byte("foo"), []byte("fop")},
		{[]byte("aab\xff\xff"), []byte("aac")},
		{[]byte{0xff, 0xff, 0x00}, []byte{0xff, 0xff, 0x01}},
		{[]byte{0xff}, nil},
		{[]byte{0xff, 0xff, 0xff}, nil},
		{nil, nil},
		{[]byte{}, nil},
	}

	for _, tc := range cases {
		require.Equal(t, tc.end, PrefixEnd(tc.prefix), "PrefixEnd(%x)", tc.prefix)
	}
}

// TestRange verifies that the bounds actually bracket prefixed keys and
// exclude the rest.
func TestRange(t *testing.T) {
	require := require.New(t)

	prefix := []byte("ab")
	start, end := Range(prefix)
	require.Equal(prefix, start)
	require.Equal([]byte("ac"), end)

	inside := [][]byte{
		[]byte("ab"),
		[]byte("ab\x00"),
		[]byte("abz"),
		[]byte("ab\xff\xff\xff"),
	}
	outside := [][]byte{
		[]byte("aa\xff"),
		[]byte("ac"),
		[]byte("b"),
	}

	for _, k := range inside {
		require.True(bytes.Compare(start, k) <= 0 && bytes.Compare(k, end) < 0,
			"key %q should fall inside the range", k)
	}
	for _, k := range outside {
		require.False(bytes.Compare(start, k) <= 0 && bytes.Compare(k, end) < 0,
			"key %q should fall outside the range", k)
	}

	// start must be an owned copy, not a view of the caller's prefix.
	prefix[0] = 'x'
	require.Equal([]byte("ab"), start)
}

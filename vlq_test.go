package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Table from the MIDI 1.0 spec's variable-length quantity example, p.131.
func TestReadVLQ_KnownEncodings(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint32
		n    int
	}{
		{"zero", []byte{0x00}, 0x00000000, 1},
		{"0x40", []byte{0x40}, 0x00000040, 1},
		{"0x7f", []byte{0x7f}, 0x0000007f, 1},
		{"0x80", []byte{0x81, 0x00}, 0x00000080, 2},
		{"0x2000", []byte{0xc0, 0x00}, 0x00002000, 2},
		{"0x3fff", []byte{0xff, 0x7f}, 0x00003fff, 2},
		{"0x4000", []byte{0x81, 0x80, 0x00}, 0x00004000, 3},
		{"0x1fffff", []byte{0xff, 0xff, 0x7f}, 0x001fffff, 3},
		{"0x200000", []byte{0x81, 0x80, 0x80, 0x00}, 0x00200000, 4},
		{"max", []byte{0xff, 0xff, 0xff, 0x7f}, 0x0fffffff, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, n, ok := ReadVLQ(c.in)
			require.True(t, ok)
			assert.Equal(t, c.want, v)
			assert.Equal(t, c.n, n)
		})
	}
}

func TestReadVLQ_Invalid(t *testing.T) {
	_, _, ok := ReadVLQ(nil)
	assert.False(t, ok)

	_, n, ok := ReadVLQ([]byte{0x81, 0x81, 0x81, 0x81})
	assert.False(t, ok)
	assert.Equal(t, 4, n)
}

func TestWriteVLQ_RoundTrip(t *testing.T) {
	values := []uint32{0, 0x40, 0x7f, 0x80, 0x3fff, 0x4000, 0x1fffff, 0x200000, MaxVLQ}
	for _, v := range values {
		enc := WriteVLQ(v, nil)
		got, n, ok := ReadVLQ(enc)
		require.True(t, ok)
		assert.Equal(t, v, got)
		assert.Equal(t, len(enc), n)
		assert.Equal(t, VLQFieldSize(v), len(enc))
	}
}

func TestWriteVLQ_ClampsAboveMax(t *testing.T) {
	enc := WriteVLQ(0xffffffff, nil)
	v, _, ok := ReadVLQ(enc)
	require.True(t, ok)
	assert.Equal(t, uint32(MaxVLQ), v)
}

func TestWriteVLQ_AppendsToExistingSlice(t *testing.T) {
	out := []byte{0xaa}
	out = WriteVLQ(0x7f, out)
	assert.Equal(t, []byte{0xaa, 0x7f}, out)
}

func TestAdvanceVLQ(t *testing.T) {
	b := []byte{0x81, 0x80, 0x00, 0xff}
	assert.Equal(t, 3, AdvanceVLQ(b))
}

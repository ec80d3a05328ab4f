package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMTrkDecoder_MinimalValidTrack(t *testing.T) {
	// Minimal valid track, decoder side: the body after the chunk
	// header, since MTrkDecoder operates on already-unwrapped bytes.
	body := []byte{0x00, 0xff, 0x2f, 0x00}
	d := NewMTrkDecoder(body)

	ev, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, int32(0), ev.DeltaTime())
	assert.Equal(t, MetaEOT, ClassifyMeta(&ev))

	_, ok = d.Next()
	assert.False(t, ok)
	assert.Nil(t, d.Err())
}

func TestMTrkDecoder_RunningStatusAcrossEvents(t *testing.T) {
	body := []byte{
		0x00, 0x92, 0x30, 0x60,
		0x81, 0x48, 0x30, 0x60,
		0x00, 0xff, 0x2f, 0x00,
	}
	d := NewMTrkDecoder(body)

	ev1, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, byte(0x92), ev1.StatusByte())

	ev2, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, int32(200), ev2.DeltaTime())
	assert.Equal(t, byte(0x92), ev2.StatusByte())

	eot, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, MetaEOT, ClassifyMeta(&eot))

	_, ok = d.Next()
	assert.False(t, ok)
	assert.Nil(t, d.Err())
}

func TestMTrkDecoder_MissingEOT(t *testing.T) {
	body := []byte{0x00, 0x90, 0x3c, 0x40}
	d := NewMTrkDecoder(body)

	_, ok := d.Next()
	require.True(t, ok)

	_, ok = d.Next()
	assert.False(t, ok)
	require.NotNil(t, d.Err())
	assert.Equal(t, ErrMTrkMissingEOT, d.Err().Kind)
}

func TestMTrkDecoder_TrailingBytesAfterEOT(t *testing.T) {
	body := []byte{0x00, 0xff, 0x2f, 0x00, 0x00, 0x90, 0x3c, 0x40}
	d := NewMTrkDecoder(body)

	eot, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, MetaEOT, ClassifyMeta(&eot))

	_, ok = d.Next()
	assert.False(t, ok)
	require.NotNil(t, d.Err())
	assert.Equal(t, ErrMTrkTrailingBytesAfterEOT, d.Err().Kind)
}

func TestMTrkDecoder_StopsAtFirstDecodeError(t *testing.T) {
	// Truncated meta event, surfaced through the decoder.
	body := []byte{0x00, 0xff, 0x01, 0x05, 0x41, 0x42, 0x43}
	d := NewMTrkDecoder(body)

	_, ok := d.Next()
	assert.False(t, ok)
	require.NotNil(t, d.Err())
	assert.Equal(t, ErrSysexOrMetaBodyExceedsInput, d.Err().Kind)
}

func TestMTrkDecoder_OffsetTracksConsumedBytes(t *testing.T) {
	body := []byte{0x00, 0x90, 0x3c, 0x40, 0x00, 0xff, 0x2f, 0x00}
	d := NewMTrkDecoder(body)
	_, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, 4, d.Offset())
}

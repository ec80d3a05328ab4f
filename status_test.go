package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, StatusData, ClassifyStatus(0x3c))
	assert.Equal(t, StatusChannel, ClassifyStatus(0x80))
	assert.Equal(t, StatusChannel, ClassifyStatus(0xe5))
	assert.Equal(t, StatusSysexF0, ClassifyStatus(0xf0))
	assert.Equal(t, StatusSysexF7, ClassifyStatus(0xf7))
	assert.Equal(t, StatusMeta, ClassifyStatus(0xff))
	for _, b := range []byte{0xf1, 0xf3, 0xf6, 0xf8, 0xfe} {
		assert.Equal(t, StatusUnrecognized, ClassifyStatus(b), "byte 0x%02x", b)
	}
}

func TestChannelDataByteCount(t *testing.T) {
	assert.Equal(t, 1, ChannelDataByteCount(0xc3))
	assert.Equal(t, 1, ChannelDataByteCount(0xdf))
	assert.Equal(t, 2, ChannelDataByteCount(0x90))
	assert.Equal(t, 2, ChannelDataByteCount(0xb0))
	assert.Equal(t, 2, ChannelDataByteCount(0xe0))
}

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, byte(0x91), ResolveStatus(0x91, 0x80))
	assert.Equal(t, byte(0x91), ResolveStatus(0x3c, 0x91))
	assert.Equal(t, byte(0), ResolveStatus(0x3c, 0))
	assert.Equal(t, byte(0), ResolveStatus(0x3c, 0xff))
	assert.Equal(t, byte(0xff), ResolveStatus(0xff, 0x91))
}

func TestNextRunningStatus(t *testing.T) {
	assert.Equal(t, byte(0x91), NextRunningStatus(0x91))
	assert.Equal(t, byte(0), NextRunningStatus(0xff))
	assert.Equal(t, byte(0), NextRunningStatus(0xf0))
	assert.Equal(t, byte(0), NextRunningStatus(0xf1))
}

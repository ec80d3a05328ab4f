package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampDeltaTime(t *testing.T) {
	assert.Equal(t, int32(0), ClampDeltaTime(-5))
	assert.Equal(t, int32(0), ClampDeltaTime(0))
	assert.Equal(t, int32(100), ClampDeltaTime(100))
	assert.Equal(t, MaxDeltaTime, ClampDeltaTime(MaxDeltaTime+1))
	assert.Equal(t, MaxDeltaTime, ClampDeltaTime(1<<30))
}

func TestValidDeltaTime(t *testing.T) {
	assert.False(t, ValidDeltaTime(-1))
	assert.True(t, ValidDeltaTime(0))
	assert.True(t, ValidDeltaTime(MaxDeltaTime))
	assert.False(t, ValidDeltaTime(MaxDeltaTime+1))
}

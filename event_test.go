package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultEvent(t *testing.T) {
	e := NewDefaultEvent()
	assert.Equal(t, int32(0), e.DeltaTime())
	assert.Equal(t, byte(0x90), e.StatusByte())
	assert.True(t, IsNoteOn(&e))
}

func TestEvent_SetDeltaTime_ClampsAndReencodes(t *testing.T) {
	e := MakeNoteOn(0, 0, 0x3c, 0x40)
	e.SetDeltaTime(-5)
	assert.Equal(t, int32(0), e.DeltaTime())

	e.SetDeltaTime(0x200000) // crosses a VLQ field-size boundary
	assert.Equal(t, int32(0x200000), e.DeltaTime())
	assert.Equal(t, byte(0x90), e.StatusByte())

	e.SetDeltaTime(MaxDeltaTime + 1000)
	assert.Equal(t, MaxDeltaTime, e.DeltaTime())
}

func TestEvent_Equality_IgnoresRunningStatusOrigin(t *testing.T) {
	// Same (dt, status, body) triple, one built explicitly and one
	// built via running status through MakeEvent.
	explicit := MakeNoteOn(0, 2, 0x40, 0x60)

	data := []byte{0x00, 0x40, 0x60} // dt=0, elided status, p1, p2
	viaRS, consumed, err := MakeEvent(data, 0x92)
	require.Nil(t, err)
	assert.Equal(t, 3, consumed)
	assert.True(t, explicit.Equal(&viaRS))
}

func TestEvent_PayloadBytes_ChannelMetaSysex(t *testing.T) {
	ch := MakeNoteOn(0, 1, 0x3c, 0x40)
	assert.Equal(t, []byte{0x3c, 0x40}, ch.PayloadBytes())

	meta := MakeTempo(0, 0x07a120)
	assert.Equal(t, []byte{0x07, 0xa1, 0x20}, meta.PayloadBytes())
	assert.Equal(t, byte(0x51), meta.MetaType())

	sx := MakeSysexF0(0, []byte{0x01, 0x02})
	assert.Equal(t, []byte{0x01, 0x02, 0xf7}, sx.PayloadBytes())
}

func TestEvent_String_DoesNotPanic(t *testing.T) {
	e := NewDefaultEvent()
	assert.NotEmpty(t, e.String())
}

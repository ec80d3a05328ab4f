package midievent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteVLQ_MIDIStandardTable(t *testing.T) {
	// MIDI standard p.131 VLQ table: 1-4 byte encodings spanning the
	// range boundaries.
	cases := []struct {
		v    uint32
		want []byte
	}{
		{0x00, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x81, 0x00}},
		{0x2000, []byte{0xc0, 0x00}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x100000, []byte{0xc0, 0x80, 0x00}},
		{0x1fffff, []byte{0xff, 0xff, 0x7f}},
		{0x200000, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x8000000, []byte{0xc0, 0x80, 0x80, 0x00}},
		{0x0fffffff, []byte{0xff, 0xff, 0xff, 0x7f}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WriteVLQ(c.v, nil), "v=0x%x", c.v)
	}
}

func TestMakeSysexF0_NormalizesTerminator(t *testing.T) {
	// Sysex F0 terminator normalization: a missing 0xf7 is appended,
	// an already-present one is left alone.
	noTerm := MakeSysexF0(0, []byte{0x01, 0x02, 0x03, 0x04})
	assert.Equal(t, []byte{0x00, 0xf0, 0x05, 0x01, 0x02, 0x03, 0x04, 0xf7}, noTerm.Bytes())

	withTerm := MakeSysexF0(0, []byte{0x01, 0x02, 0x03, 0xf7})
	assert.Equal(t, []byte{0x00, 0xf0, 0x04, 0x01, 0x02, 0x03, 0xf7}, withTerm.Bytes())
}

func TestMakeChannel_ClampsHighNibbleAndChannel(t *testing.T) {
	ev := MakeChannel(0, 0xf0, 0xff, 0x90, 0x40)
	assert.Equal(t, byte(0x8f), ev.StatusByte(), "out-of-range high nibble falls back to note-off (0x80)")
}

func TestMakeNoteOn_ForcesNonzeroVelocity(t *testing.T) {
	ev := MakeNoteOn(0, 0, 0x3c, 0)
	assert.Equal(t, []byte{0x3c, 0x01}, ev.PayloadBytes())
}

func TestMakeOnOffPair(t *testing.T) {
	on, off := MakeOnOffPair(480, 3, 0x40, 0x60, 0x40)
	assert.Equal(t, int32(0), on.DeltaTime())
	assert.Equal(t, int32(480), off.DeltaTime())
	assert.True(t, IsOnOffPair(&on, &off))
}

func TestMakeKeySig_ClampsRange(t *testing.T) {
	ev := MakeKeySig(0, -20, true)
	p := ev.PayloadBytes()
	assert.Equal(t, int8(-7), int8(p[0]))

	ev = MakeKeySig(0, 20, false)
	p = ev.PayloadBytes()
	assert.Equal(t, int8(7), int8(p[0]))
}

func TestMakeTempo_ClampsTo24Bits(t *testing.T) {
	ev := MakeTempo(0, 0xffffffff)
	assert.Equal(t, uint32(0x00ffffff), GetTempo(&ev, 0))
}

func TestMakeTextFamily_RejectsNonTextMetaType(t *testing.T) {
	ev := makeTextEvent(0, 0x51, []byte("not text"))
	def := NewDefaultEvent()
	assert.True(t, ev.Equal(&def))
}

func TestMakeEOT(t *testing.T) {
	ev := MakeEOT(10)
	assert.Equal(t, MetaEOT, ClassifyMeta(&ev))
	assert.Equal(t, int32(10), ev.DeltaTime())
}

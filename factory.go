package midievent

// This file implements the event factories. Unlike the validators,
// factories never fail: out-of-range inputs are silently clamped or
// masked into a well-formed event rather than rejected.

func buildChannel(dt int32, status, p1, p2 byte, twoBytes bool) Event {
	b := WriteVLQ(uint32(ClampDeltaTime(dt)), nil)
	b = append(b, status)
	b = append(b, p1&0x7f)
	if twoBytes {
		b = append(b, p2&0x7f)
	}
	return newEventFromBytes(b)
}

// MakeChannel builds a channel event. statusHighNibble is masked to the
// set of legal channel message high nibbles (0x80-0xe0, in steps of
// 0x10); channel is masked to its low 4 bits; p1/p2 are masked to 7 bits.
// p2 is dropped for message types that only carry one data byte
// (program-change, channel-pressure).
func MakeChannel(dt int32, statusHighNibble, channel, p1, p2 byte) Event {
	status := statusHighNibble & 0xf0
	if status < 0x80 || status > 0xe0 {
		status = 0x80
	}
	status |= channel & 0x0f
	twoBytes := ChannelDataByteCount(status) == 2
	return buildChannel(dt, status, p1, p2, twoBytes)
}

// MakeNoteOn builds a note-on event. A requested velocity of 0 is forced
// up to 1, since a 0-velocity note-on is canonically a note-off.
func MakeNoteOn(dt int32, channel, note, vel byte) Event {
	if vel&0x7f == 0 {
		vel = 1
	}
	return buildChannel(dt, 0x90|(channel&0x0f), note, vel, true)
}

// MakeNoteOff builds a note-off event with status 0x8n.
func MakeNoteOff(dt int32, channel, note, vel byte) Event {
	return buildChannel(dt, 0x80|(channel&0x0f), note, vel, true)
}

// MakeOnOffPair returns a (note-on, note-off) pair: the on event has
// dt=0, the off event has dt=duration.
func MakeOnOffPair(duration int32, channel, note, velOn, velOff byte) (on, off Event) {
	return MakeNoteOn(0, channel, note, velOn), MakeNoteOff(duration, channel, note, velOff)
}

func buildMeta(dt int32, metaType byte, data []byte) Event {
	b := WriteVLQ(uint32(ClampDeltaTime(dt)), nil)
	b = append(b, 0xff, metaType)
	b = WriteVLQ(uint32(len(data)), b)
	b = append(b, data...)
	return newEventFromBytes(b)
}

// MakeTempo builds a set-tempo meta event (type 0x51), clamping
// usPerQN to the 24-bit range the event format can hold.
func MakeTempo(dt int32, usPerQN uint32) Event {
	if usPerQN > 0x00ffffff {
		usPerQN = 0x00ffffff
	}
	return buildMeta(dt, 0x51, []byte{
		byte(usPerQN >> 16),
		byte(usPerQN >> 8),
		byte(usPerQN),
	})
}

// MakeTimeSig builds a time-signature meta event (type 0x58).
func MakeTimeSig(dt int32, numerator, denominator, clocksPerClick, notated32ndsPerQN byte) Event {
	return buildMeta(dt, 0x58, []byte{numerator, denominator, clocksPerClick, notated32ndsPerQN})
}

// MakeKeySig builds a key-signature meta event (type 0x59). sharpsOrFlats
// is clamped to [-7, 7].
func MakeKeySig(dt int32, sharpsOrFlats int8, isMinor bool) Event {
	if sharpsOrFlats < -7 {
		sharpsOrFlats = -7
	}
	if sharpsOrFlats > 7 {
		sharpsOrFlats = 7
	}
	mm := byte(0)
	if isMinor {
		mm = 1
	}
	return buildMeta(dt, 0x59, []byte{byte(sharpsOrFlats), mm})
}

// MakeSeqn builds a sequence-number meta event (type 0x00). This event
// is only meaningful before any channel event and at cumulative tick 0;
// MakeSeqn does not enforce that placement rule itself (it is a pure
// factory), leaving positioning checks to (*MTrk).Validate.
func MakeSeqn(n uint16) Event {
	return buildMeta(0, 0x00, []byte{byte(n >> 8), byte(n)})
}

// MakeEOT builds an end-of-track meta event (type 0x2f).
func MakeEOT(dt int32) Event {
	return buildMeta(dt, 0x2f, nil)
}

// MakeChPrefix builds a MIDI channel prefix meta event (type 0x20).
func MakeChPrefix(dt int32, channel byte) Event {
	return buildMeta(dt, 0x20, []byte{channel})
}

// MakeSMPTEOffset builds an SMPTE offset meta event (type 0x54).
func MakeSMPTEOffset(dt int32, hours, minutes, seconds, frames, fractionalFrames byte) Event {
	return buildMeta(dt, 0x54, []byte{hours, minutes, seconds, frames, fractionalFrames})
}

// isTextMetaType reports whether mt is one of the text-family meta types
// (0x01-0x07).
func isTextMetaType(mt byte) bool {
	return mt >= 0x01 && mt <= 0x07
}

// makeTextEvent is the single generic builder every text-family factory
// below delegates to: it checks the requested meta type is a text type,
// else returns a default event.
func makeTextEvent(dt int32, metaType byte, text []byte) Event {
	if !isTextMetaType(metaType) {
		return NewDefaultEvent()
	}
	return buildMeta(dt, metaType, text)
}

// MakeText builds a generic text meta event (type 0x01).
func MakeText(dt int32, text []byte) Event { return makeTextEvent(dt, 0x01, text) }

// MakeCopyright builds a copyright-notice meta event (type 0x02).
func MakeCopyright(dt int32, text []byte) Event { return makeTextEvent(dt, 0x02, text) }

// MakeTrackName builds a track/sequence-name meta event (type 0x03).
func MakeTrackName(dt int32, text []byte) Event { return makeTextEvent(dt, 0x03, text) }

// MakeInstName builds an instrument-name meta event (type 0x04).
func MakeInstName(dt int32, text []byte) Event { return makeTextEvent(dt, 0x04, text) }

// MakeLyric builds a lyric meta event (type 0x05).
func MakeLyric(dt int32, text []byte) Event { return makeTextEvent(dt, 0x05, text) }

// MakeMarker builds a marker meta event (type 0x06).
func MakeMarker(dt int32, text []byte) Event { return makeTextEvent(dt, 0x06, text) }

// MakeCuePoint builds a cue-point meta event (type 0x07).
func MakeCuePoint(dt int32, text []byte) Event { return makeTextEvent(dt, 0x07, text) }

// MakeSysexF0 builds an F0 system-exclusive event. A terminal 0xf7 is
// appended to data unless it already ends with one.
func MakeSysexF0(dt int32, data []byte) Event {
	return buildSysex(dt, 0xf0, data)
}

// MakeSysexF7 builds an F7 system-exclusive event; same framing as
// MakeSysexF0 but with status 0xf7 (used for sysex continuation
// packets).
func MakeSysexF7(dt int32, data []byte) Event {
	return buildSysex(dt, 0xf7, data)
}

func buildSysex(dt int32, status byte, data []byte) Event {
	body := data
	if len(body) == 0 || body[len(body)-1] != 0xf7 {
		body = append(append([]byte(nil), data...), 0xf7)
	}
	b := WriteVLQ(uint32(ClampDeltaTime(dt)), nil)
	b = append(b, status)
	b = WriteVLQ(uint32(len(body)), b)
	b = append(b, body...)
	return newEventFromBytes(b)
}

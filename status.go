package midievent

// StatusClass tags a byte by its role in the MTrk status-byte/running-status
// scheme.
type StatusClass int

const (
	// StatusData means the byte has its high bit clear: a data byte, or
	// (in context) an implicit running-status continuation.
	StatusData StatusClass = iota
	// StatusChannel means the byte is a channel-voice or channel-mode
	// status byte, 0x80-0xef.
	StatusChannel
	// StatusMeta means the byte is the meta status byte, 0xff.
	StatusMeta
	// StatusSysexF0 means the byte is 0xf0.
	StatusSysexF0
	// StatusSysexF7 means the byte is 0xf7.
	StatusSysexF7
	// StatusUnrecognized means the byte is a status byte ([0xf1,0xf6] or
	// [0xf8,0xfe]) with no defined meaning inside an MTrk.
	StatusUnrecognized
)

// ClassifyStatus tags a single byte as a status byte of some kind, or as
// a plain data byte.
func ClassifyStatus(b byte) StatusClass {
	switch {
	case b < 0x80:
		return StatusData
	case b >= 0x80 && b <= 0xef:
		return StatusChannel
	case b == 0xf0:
		return StatusSysexF0
	case b == 0xf7:
		return StatusSysexF7
	case b == 0xff:
		return StatusMeta
	default: // 0xf1-0xf6, 0xf8-0xfe
		return StatusUnrecognized
	}
}

// IsStatusByte reports whether b's high bit is set, i.e. it is some kind
// of status byte (channel, sysex, meta, or unrecognized) rather than a
// data byte.
func IsStatusByte(b byte) bool {
	return b&0x80 != 0
}

// ChannelDataByteCount returns the number of data bytes following a
// channel status byte: 1 for program-change (0xc0-0xcf) and
// channel-pressure (0xd0-0xdf), 2 for all other channel message types.
func ChannelDataByteCount(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	default:
		return 2
	}
}

// ResolveStatus determines the effective status byte for an event whose
// first post-delta-time byte is b, given the current running-status byte
// rs (0 if none is set). It returns b itself if b is any status byte
// (channel, sysex, meta, or unrecognized — an unrecognized status byte
// poisons running status and is reported as invalid by the caller via its
// own classification, not by this function). If b is a data byte, it
// returns rs if rs is a channel status byte, or 0 if there is no usable
// running status.
func ResolveStatus(b, rs byte) byte {
	if IsStatusByte(b) {
		return b
	}
	if ClassifyStatus(rs) == StatusChannel {
		return rs
	}
	return 0
}

// NextRunningStatus computes the running-status byte that should be in
// effect after an event whose effective status byte (as returned by
// ResolveStatus) is s. Channel status bytes become the new running
// status; sysex, meta, and unrecognized status bytes clear it. Since
// ResolveStatus already folds an unchanged running status back into s
// when the event used running status, this single rule covers both the
// explicit-status-byte and running-status-elided cases.
func NextRunningStatus(s byte) byte {
	if ClassifyStatus(s) == StatusChannel {
		return s
	}
	return 0
}

// This package defines a library for reading, representing, manipulating,
// and writing Standard MIDI Files (SMF) at the event layer: delta-times,
// status bytes, running status, and MTrk events.
package midievent

// MaxVLQ is the largest value a MIDI variable-length quantity can encode:
// four 7-bit groups, or 0x0fffffff.
const MaxVLQ = 0x0fffffff

// ReadVLQ scans up to four bytes from the start of b, decoding a MIDI
// variable-length quantity. It returns the decoded value, the number of
// bytes consumed, and whether the parse was valid. A valid parse consumes
// at least one byte and ends on a byte whose high bit is clear, within the
// first four bytes of b. Reading an empty slice, or four bytes that all
// have their high bit set, is invalid.
func ReadVLQ(b []byte) (value uint32, nbytes int, valid bool) {
	limit := len(b)
	if limit > 4 {
		limit = 4
	}
	for i := 0; i < limit; i++ {
		c := b[i]
		value = (value << 7) | uint32(c&0x7f)
		nbytes = i + 1
		if (c & 0x80) == 0 {
			return value, nbytes, true
		}
	}
	return 0, nbytes, false
}

// AdvanceVLQ returns the number of bytes occupied by the VLQ at the start
// of b: the offset of the first position past it. It never returns more
// than 4, and never more than len(b). If b does not contain a valid VLQ
// within its first 4 bytes, AdvanceVLQ returns the number of bytes
// examined (which is what ReadVLQ would report as nbytes on failure).
func AdvanceVLQ(b []byte) int {
	_, n, _ := ReadVLQ(b)
	return n
}

// VLQFieldSize returns the minimal number of bytes (1 to 4) needed to
// encode v as a MIDI VLQ, after silently clamping v to [0, MaxVLQ].
func VLQFieldSize(v uint32) int {
	if v > MaxVLQ {
		v = MaxVLQ
	}
	switch {
	case v < (1 << 7):
		return 1
	case v < (1 << 14):
		return 2
	case v < (1 << 21):
		return 3
	default:
		return 4
	}
}

// WriteVLQ clamps v to [0, MaxVLQ] and appends its minimal canonical VLQ
// encoding to out, returning the extended slice.
func WriteVLQ(v uint32, out []byte) []byte {
	if v > MaxVLQ {
		v = MaxVLQ
	}
	n := VLQFieldSize(v)
	var buf [4]byte
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v & 0x7f)
		v >>= 7
		if i != n-1 {
			buf[i] |= 0x80
		}
	}
	return append(out, buf[:n]...)
}

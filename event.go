package midievent

import "fmt"

// Event is an owning MTrk event: a serialized byte sequence beginning
// with a delta-time VLQ, followed by an explicit status byte (running
// status is always resolved before construction), and then whatever
// body bytes that status implies. Event is a value type; copying an
// Event copies its bytes.
type Event struct {
	buf eventBytes
}

// defaultEventBytes is the canonical default event: dt=0, a note-on on
// channel 0, note 0x3c (middle C), velocity 0x3f — playable, well-formed,
// and small. Any well-formed default would satisfy callers; this one
// picks channel 0 and a middle-of-the-keyboard note as unsurprising
// defaults.
var defaultEventBytes = []byte{0x00, 0x90, 0x3c, 0x3f}

// NewDefaultEvent returns the default-constructed event: dt=0,
// status=0x90 (note-on channel 0), two non-zero data bytes. It never
// allocates on the heap.
func NewDefaultEvent() Event {
	var e Event
	e.buf.assign(defaultEventBytes)
	return e
}

// newEventFromBytes builds an Event directly from an already-canonical
// byte sequence (dt VLQ || status || body). Callers (factories,
// validators) are responsible for ensuring the bytes are well-formed;
// this constructor does no validation itself, since factories clamp
// their inputs rather than validate them.
func newEventFromBytes(b []byte) Event {
	var e Event
	e.buf.assign(b)
	return e
}

// Bytes returns the full serialized byte sequence for the event,
// including its delta-time VLQ and status byte. The returned slice
// aliases the event's internal storage and must not be retained across
// a mutating call such as SetDeltaTime.
func (e *Event) Bytes() []byte {
	return e.buf.Bytes()
}

// Size returns the total number of bytes in the event, including the
// delta-time VLQ and status byte.
func (e *Event) Size() int {
	return e.buf.Len()
}

// Capacity returns the event's current storage capacity.
func (e *Event) Capacity() int {
	return e.buf.Cap()
}

// dtFieldSize returns the number of bytes occupied by the event's
// leading delta-time VLQ.
func (e *Event) dtFieldSize() int {
	return AdvanceVLQ(e.buf.Bytes())
}

// DeltaTime reads and returns the event's leading delta-time value.
func (e *Event) DeltaTime() int32 {
	v, _, _ := ReadVLQ(e.buf.Bytes())
	return int32(v)
}

// SetDeltaTime re-encodes the event's leading VLQ to represent v (clamped
// to [0, MaxDeltaTime]). If the new encoding is a different length than
// the old one, the remaining bytes are shifted to accommodate it.
func (e *Event) SetDeltaTime(v int32) {
	v = ClampDeltaTime(v)
	oldLen := e.dtFieldSize()
	rest := append([]byte(nil), e.buf.Bytes()[oldLen:]...)
	var head []byte
	head = WriteVLQ(uint32(v), head)
	newBytes := append(head, rest...)
	e.buf.assign(newBytes)
}

// DataSize returns the event's size excluding its delta-time field.
func (e *Event) DataSize() int {
	return e.Size() - e.dtFieldSize()
}

// StatusByte returns the event's explicit status byte (the byte
// immediately following the delta-time VLQ).
func (e *Event) StatusByte() byte {
	b := e.buf.Bytes()
	return b[e.dtFieldSize()]
}

// RunningStatusAfter returns the running-status byte that would be in
// effect immediately after this event, as a pure function of its stored
// status byte. Running status is decoder state, never event state.
func (e *Event) RunningStatusAfter() byte {
	return NextRunningStatus(e.StatusByte())
}

// eventBegin returns the offset of the first byte after the delta-time,
// i.e. the position of the explicit status byte.
func (e *Event) eventBegin() int {
	return e.dtFieldSize()
}

// payloadBegin returns the offset of the first payload byte: past the
// delta-time, the status byte, and (for meta events) the meta-type byte,
// and past any sysex/meta length VLQ.
func (e *Event) payloadBegin() int {
	b := e.buf.Bytes()
	i := e.dtFieldSize()
	status := b[i]
	i++
	switch ClassifyStatus(status) {
	case StatusChannel:
		return i
	case StatusMeta:
		i++ // meta-type byte
		i += AdvanceVLQ(b[i:])
		return i
	case StatusSysexF0, StatusSysexF7:
		i += AdvanceVLQ(b[i:])
		return i
	default:
		return i
	}
}

// PayloadBytes returns the event's payload: data bytes for a channel
// event, or the body bytes for a meta/sysex event (excluding the meta
// type byte and length VLQ, or the length VLQ, respectively).
func (e *Event) PayloadBytes() []byte {
	return e.buf.Bytes()[e.payloadBegin():]
}

// MetaType returns the meta-type byte of a meta event. The caller must
// check IsMeta(e) first; calling this on a non-meta event returns
// whatever byte happens to follow the status byte.
func (e *Event) MetaType() byte {
	return e.buf.Bytes()[e.eventBegin()+1]
}

// Equal reports whether e and o have identical serialized bytes. Two
// events built from the same (dt, status, body) triple compare equal
// regardless of whether running status was used to produce either one,
// because the canonical stored form always carries an explicit status
// byte.
func (e *Event) Equal(o *Event) bool {
	return e.buf.Equal(&o.buf)
}

// String renders a short debugging description of the event.
func (e *Event) String() string {
	return fmt.Sprintf("Event{dt=%d, status=0x%02x, size=%d}", e.DeltaTime(),
		e.StatusByte(), e.Size())
}

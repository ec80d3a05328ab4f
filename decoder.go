package midievent

// MTrkDecoder is a pull-style iterator over the bytes of a single MTrk
// chunk body: the caller repeatedly calls Next until it returns false,
// then checks Err to distinguish clean exhaustion (nil) from the first
// decode failure. The decoder is the sole place running status lives;
// Event values themselves always carry an explicit status byte.
type MTrkDecoder struct {
	data       []byte
	cursor     int
	rs         byte
	lastWasEOT bool
	finished   bool
	err        *ValidationError
}

// NewMTrkDecoder returns a decoder over data, the bytes of an MTrk chunk
// immediately following its 8-byte chunk header (id + length).
func NewMTrkDecoder(data []byte) *MTrkDecoder {
	return &MTrkDecoder{data: data}
}

// Next decodes and returns the next event. It returns ok == false both
// on clean exhaustion (the track ended in EOT with no trailing bytes —
// Err returns nil) and on failure (Err returns the *ValidationError).
// Once Next has returned false, it keeps returning false.
func (d *MTrkDecoder) Next() (Event, bool) {
	if d.err != nil || d.finished {
		return Event{}, false
	}
	if d.cursor == len(d.data) {
		if d.lastWasEOT {
			d.finished = true
		} else {
			d.err = &ValidationError{Kind: ErrMTrkMissingEOT, Offset: d.cursor, RunningStatus: d.rs}
		}
		return Event{}, false
	}
	ev, consumed, verr := MakeEvent(d.data[d.cursor:], d.rs)
	if verr != nil {
		verr.Offset += d.cursor
		d.err = verr
		return Event{}, false
	}
	d.cursor += consumed
	d.rs = NextRunningStatus(ev.StatusByte())
	d.lastWasEOT = ClassifyMeta(&ev) == MetaEOT
	if d.lastWasEOT && d.cursor != len(d.data) {
		// The event itself decoded cleanly; the track-level violation is
		// reported on the *next* call so this EOT event is still yielded
		// to the caller.
		d.err = &ValidationError{Kind: ErrMTrkTrailingBytesAfterEOT, Offset: d.cursor}
	}
	return ev, true
}

// Err returns the decode failure, if any. A nil return after Next has
// returned false means the track decoded completely and cleanly.
func (d *MTrkDecoder) Err() *ValidationError {
	return d.err
}

// Offset returns the decoder's current byte cursor within the track.
func (d *MTrkDecoder) Offset() int {
	return d.cursor
}

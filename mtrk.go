package midievent

import "fmt"

// MTrk is an owning, editable sequence of Events decoded from (or destined
// for) a single MTrk chunk body. It is the value-type counterpart to
// MTrkDecoder: where the decoder is a one-pass pull iterator, MTrk holds
// the whole track so it can be inspected and edited by tick or by index.
// Its tick-aware insert/erase operations are built around a plain Go
// slice plus cumulative-tick bookkeeping rather than a node-based
// container.
type MTrk struct {
	events []Event
}

// NewMTrk returns an empty track.
func NewMTrk() *MTrk {
	return &MTrk{}
}

// DecodeMTrk decodes the full body of an MTrk chunk (the bytes following
// its 8-byte header) into an MTrk. It is a thin driver over MTrkDecoder
// that keeps decoding until exhaustion, returning the first error
// encountered, if any.
func DecodeMTrk(data []byte) (*MTrk, *ValidationError) {
	d := NewMTrkDecoder(data)
	m := &MTrk{}
	for {
		ev, ok := d.Next()
		if !ok {
			break
		}
		m.events = append(m.events, ev)
	}
	return m, d.Err()
}

// Size returns the number of events in the track.
func (m *MTrk) Size() int {
	return len(m.events)
}

// Event returns the event at index i.
func (m *MTrk) Event(i int) Event {
	return m.events[i]
}

// Events returns the track's events. The returned slice aliases the
// track's internal storage.
func (m *MTrk) Events() []Event {
	return m.events
}

// NTicks returns the track's total duration in ticks: the sum of every
// event's delta-time, i.e. the absolute onset of a hypothetical event
// appended after the last one.
func (m *MTrk) NTicks() int64 {
	var total int64
	for _, e := range m.events {
		total += int64(e.DeltaTime())
	}
	return total
}

// NBytes returns the track's total serialized size in bytes, the value
// that belongs in the MTrk chunk's length field.
func (m *MTrk) NBytes() int64 {
	var total int64
	for _, e := range m.events {
		total += int64(e.Size())
	}
	return total
}

// cumulativeOnsets returns, for each event, its absolute onset tick: the
// inclusive prefix sum through and including that event's own delta-time.
func (m *MTrk) cumulativeOnsets() []int64 {
	onsets := make([]int64, len(m.events))
	var cum int64
	for i, e := range m.events {
		cum += int64(e.DeltaTime())
		onsets[i] = cum
	}
	return onsets
}

// PushBack appends ev to the end of the track unchanged: ev's own
// delta-time is taken as-is, relative to the track's current end.
func (m *MTrk) PushBack(ev Event) {
	m.events = append(m.events, ev)
}

// Insert inserts ev at index i, shifting every later event's absolute
// onset forward by ev's own delta-time — the default, simplest insert.
func (m *MTrk) Insert(i int, ev Event) {
	m.events = append(m.events, Event{})
	copy(m.events[i+1:], m.events[i:])
	m.events[i] = ev
}

// Erase removes the event at index i, shifting every later event's
// absolute onset backward by the removed event's delta-time (the inverse
// of Insert).
func (m *MTrk) Erase(i int) {
	m.events = append(m.events[:i], m.events[i+1:]...)
}

// AtCumTick returns the index of the first event whose absolute onset
// tick is >= tk, and that onset tick. If every event's onset is < tk, it
// returns (len(m.events), m.NTicks()).
func (m *MTrk) AtCumTick(tk int64) (index int, onset int64) {
	onsets := m.cumulativeOnsets()
	for i, o := range onsets {
		if o >= tk {
			return i, o
		}
	}
	return len(m.events), m.NTicks()
}

// AtTickOnset is an alias for AtCumTick kept as a distinct name:
// AtCumTick is the general search-by-tick primitive, AtTickOnset is the
// name used when the caller specifically wants "the first event beginning
// at or after tick tk". Both return the same result.
func (m *MTrk) AtTickOnset(tk int64) (index int, onset int64) {
	return m.AtCumTick(tk)
}

// InsertAtCumTick inserts ev so that its absolute onset tick equals tk
// exactly, computing ev's own delta-time from the preceding event's onset
// and adjusting the following event's delta-time so its own absolute
// onset is undisturbed. tk must be >= the onset of the
// event currently at the insertion point's predecessor; if tk falls
// strictly inside an existing event's wait (i.e. before the next event's
// old onset but after its predecessor's), the next event's delta-time
// shrinks accordingly.
func (m *MTrk) InsertAtCumTick(tk int64, ev Event) {
	idx, _ := m.AtCumTick(tk)
	var predOnset int64
	if idx > 0 {
		onsets := m.cumulativeOnsets()
		predOnset = onsets[idx-1]
	}
	ev.SetDeltaTime(int32(ClampDeltaTime(int32(tk - predOnset))))
	if idx < len(m.events) {
		onsets := m.cumulativeOnsets()
		oldOnset := onsets[idx]
		m.events[idx].SetDeltaTime(int32(ClampDeltaTime(int32(oldOnset - tk))))
	}
	m.Insert(idx, ev)
}

// InsertNoTickShift inserts ev at index i without disturbing the absolute
// onset tick of any other event already in the track. ev.DeltaTime() is
// interpreted as an offset measured from index i's position (not from the
// track start): InsertNoTickShift walks forward consuming each
// subsequent event's delta-time budget until it finds where that offset
// lands, then splits the remaining budget between the inserted event and
// the event it now precedes.
func (m *MTrk) InsertNoTickShift(i int, ev Event) {
	newDt := ev.DeltaTime()
	for i < len(m.events) && m.events[i].DeltaTime() < newDt {
		newDt -= m.events[i].DeltaTime()
		i++
	}
	if i < len(m.events) {
		m.events[i].SetDeltaTime(m.events[i].DeltaTime() - newDt)
	}
	ev.SetDeltaTime(newDt)
	m.Insert(i, ev)
}

// EraseNoTickShift removes the event at index i and folds its
// delta-time into the following event, so every remaining event's
// absolute onset tick is unchanged (the inverse of InsertNoTickShift).
func (m *MTrk) EraseNoTickShift(i int) {
	dt := m.events[i].DeltaTime()
	m.Erase(i)
	if i < len(m.events) {
		m.events[i].SetDeltaTime(m.events[i].DeltaTime() + dt)
	}
}

// SplitIf partitions the track's events by pred into two new tracks,
// matched (pred true) and rest (pred false), each stable with respect to
// the other events that landed in the same track and each reconstructing
// its members' original absolute onset ticks via its own delta-times.
func (m *MTrk) SplitIf(pred func(Event) bool) (matched, rest *MTrk) {
	onsets := m.cumulativeOnsets()
	matched, rest = &MTrk{}, &MTrk{}
	var lastMatched, lastRest int64
	for i, e := range m.events {
		onset := onsets[i]
		ne := e
		if pred(e) {
			ne.SetDeltaTime(int32(ClampDeltaTime(int32(onset - lastMatched))))
			matched.events = append(matched.events, ne)
			lastMatched = onset
		} else {
			ne.SetDeltaTime(int32(ClampDeltaTime(int32(onset - lastRest))))
			rest.events = append(rest.events, ne)
			lastRest = onset
		}
	}
	return matched, rest
}

// MergeMTrk interleaves a and b by absolute onset tick into a single new
// track. At equal onset ticks the event from a is placed first — the
// same convention a stable sort uses for equal keys. Each input's
// internal relative order is always preserved.
//
// TODO: when a and b share an onset tick, reconstructing the exact
// original interleaving of SplitIf's two outputs requires knowing which
// side held that tick's event first in the pre-split track; this tie
// rule (a-before-b) only recovers that original order when the split
// predicate itself never placed a tied pair with the "rest" side first.
func MergeMTrk(a, b *MTrk) *MTrk {
	aOnsets, bOnsets := a.cumulativeOnsets(), b.cumulativeOnsets()
	out := &MTrk{}
	var lastOnset int64
	i, j := 0, 0
	for i < len(a.events) || j < len(b.events) {
		takeA := j >= len(b.events) || (i < len(a.events) && aOnsets[i] <= bOnsets[j])
		var ev Event
		var onset int64
		if takeA {
			ev, onset = a.events[i], aOnsets[i]
			i++
		} else {
			ev, onset = b.events[j], bOnsets[j]
			j++
		}
		ev.SetDeltaTime(int32(ClampDeltaTime(int32(onset - lastOnset))))
		out.events = append(out.events, ev)
		lastOnset = onset
	}
	return out
}

// MTrkValidation is the result of (*MTrk).Validate: hard errors (the
// track could not be serialized/decoded correctly) and soft warnings
// (the track is well-formed but musically suspicious).
type MTrkValidation struct {
	Errors   []*ValidationError
	Warnings []string
}

// OK reports whether the track has no hard errors.
func (v MTrkValidation) OK() bool {
	return len(v.Errors) == 0
}

// Validate checks the track's structural and positioning rules: exactly
// one end-of-track event, as the last event;
// a sequence-number event, if present, only before any channel event and
// at cumulative tick 0 (warning otherwise); and overlapping or orphaned
// note-on/note-off pairs (warning, never an error, since MIDI files with
// stuck notes are common in the wild).
func (m *MTrk) Validate() MTrkValidation {
	var v MTrkValidation

	for i := range m.events {
		if ClassifyMeta(&m.events[i]) == MetaEOT && i != len(m.events)-1 {
			v.Errors = append(v.Errors, &ValidationError{Kind: ErrMTrkTrailingBytesAfterEOT, Offset: i})
		}
	}
	if len(m.events) == 0 || ClassifyMeta(&m.events[len(m.events)-1]) != MetaEOT {
		v.Errors = append(v.Errors, &ValidationError{Kind: ErrMTrkMissingEOT})
	}

	seenChannel := false
	var cum int64
	for i := range m.events {
		e := &m.events[i]
		if ClassifyMeta(e) == MetaSeqNumber && (seenChannel || cum != 0) {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"sequence-number event at index %d is not at the start of the track", i))
		}
		if IsChannel(e) {
			seenChannel = true
		}
		cum += int64(e.DeltaTime())
	}

	type noteKey struct{ channel, note byte }
	open := map[noteKey]int{}
	for i := range m.events {
		e := &m.events[i]
		switch {
		case IsNoteOn(e):
			ce := GetChannelEvent(e, ChannelEvent{})
			k := noteKey{ce.Channel, ce.P1}
			open[k]++
			if open[k] > 1 {
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"overlapping note-on for channel %d note %d at index %d", ce.Channel, ce.P1, i))
			}
		case IsNoteOff(e):
			ce := GetChannelEvent(e, ChannelEvent{})
			k := noteKey{ce.Channel, ce.P1}
			if open[k] <= 0 {
				v.Warnings = append(v.Warnings, fmt.Sprintf(
					"orphan note-off for channel %d note %d at index %d", ce.Channel, ce.P1, i))
			} else {
				open[k]--
			}
		}
	}

	return v
}

package midievent

import "fmt"

// ErrorKind enumerates the ways an event-layer validator can reject a
// byte range. Zero value ErrNone never appears on a returned
// *ValidationError — a nil error means success.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	// ErrInvalidDeltaTime: the leading VLQ was malformed or exceeded
	// MaxVLQ.
	ErrInvalidDeltaTime
	// ErrNoDataAfterDT: input ended immediately after the delta-time
	// field.
	ErrNoDataAfterDT
	// ErrInvalidStatusByte: neither the byte itself nor the running
	// status resolved to a usable status byte.
	ErrInvalidStatusByte
	// ErrChannelLengthExceedsInput: a channel event's data bytes were
	// truncated.
	ErrChannelLengthExceedsInput
	// ErrChannelInvalidDataByte: a channel event's data byte had its high
	// bit set.
	ErrChannelInvalidDataByte
	// ErrSysexOrMetaHeaderOverflow: not enough bytes remained for the
	// 0xff/type/length or 0xf0|0xf7/length header.
	ErrSysexOrMetaHeaderOverflow
	// ErrSysexOrMetaInvalidLength: the length VLQ itself was malformed.
	ErrSysexOrMetaInvalidLength
	// ErrSysexOrMetaBodyExceedsInput: the declared body length overran
	// the available input.
	ErrSysexOrMetaBodyExceedsInput
	// ErrMTrkMissingEOT: an MTrk ended without a meta end-of-track event.
	ErrMTrkMissingEOT
	// ErrMTrkTrailingBytesAfterEOT: bytes remained in the track after an
	// end-of-track event.
	ErrMTrkTrailingBytesAfterEOT
	// ErrOther is a catch-all for conditions not otherwise enumerated.
	ErrOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidDeltaTime:
		return "invalid_delta_time"
	case ErrNoDataAfterDT:
		return "no_data_after_dt"
	case ErrInvalidStatusByte:
		return "invalid_status_byte"
	case ErrChannelLengthExceedsInput:
		return "channel_length_exceeds_input"
	case ErrChannelInvalidDataByte:
		return "channel_invalid_data_byte"
	case ErrSysexOrMetaHeaderOverflow:
		return "sysex_or_meta_header_overflow"
	case ErrSysexOrMetaInvalidLength:
		return "sysex_or_meta_invalid_length"
	case ErrSysexOrMetaBodyExceedsInput:
		return "sysex_or_meta_body_exceeds_input"
	case ErrMTrkMissingEOT:
		return "mtrk.missing_eot"
	case ErrMTrkTrailingBytesAfterEOT:
		return "mtrk.trailing_bytes_after_eot"
	default:
		return "other"
	}
}

// ValidationError is the non-exceptional failure result of the event
// validators and MakeEvent. Validators never panic or recover: they
// return the first problem found, with enough context (byte offset,
// observed status byte, and running status) for a caller to build a
// diagnostic.
type ValidationError struct {
	Kind          ErrorKind
	Offset        int
	StatusByte    byte
	RunningStatus byte
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("midievent: %s at offset %d (status=0x%02x, running=0x%02x)",
		e.Kind, e.Offset, e.StatusByte, e.RunningStatus)
}

// ValidateChannel validates a channel event beginning at data[0], which
// may be an explicit status byte or (if rs is a channel status) an
// elided data byte under running status. On success it returns the
// number of bytes consumed from data, the effective status byte, and the
// 1 or 2 data bytes (p2 is meaningless when the message type only uses
// one data byte).
func ValidateChannel(data []byte, rs byte) (consumed int, status, p1, p2 byte, err *ValidationError) {
	if len(data) == 0 {
		return 0, 0, 0, 0, &ValidationError{Kind: ErrNoDataAfterDT, RunningStatus: rs}
	}
	b := data[0]
	status = ResolveStatus(b, rs)
	if ClassifyStatus(status) != StatusChannel {
		return 0, 0, 0, 0, &ValidationError{Kind: ErrInvalidStatusByte, StatusByte: b, RunningStatus: rs}
	}
	dataStart := 0
	if IsStatusByte(b) {
		dataStart = 1
	}
	n := ChannelDataByteCount(status)
	need := dataStart + n
	if len(data) < need {
		return 0, 0, 0, 0, &ValidationError{Kind: ErrChannelLengthExceedsInput, StatusByte: status, RunningStatus: rs}
	}
	for i := dataStart; i < need; i++ {
		if IsStatusByte(data[i]) {
			return 0, 0, 0, 0, &ValidationError{Kind: ErrChannelInvalidDataByte, Offset: i, StatusByte: status, RunningStatus: rs}
		}
	}
	p1 = data[dataStart]
	if n == 2 {
		p2 = data[dataStart+1]
	}
	return need, status, p1, p2, nil
}

// ValidateMeta validates a meta event beginning at data[0] == 0xff. On
// success it returns the number of bytes consumed, the meta-type byte,
// and the offset/length of the body within data.
func ValidateMeta(data []byte) (consumed int, metaType byte, bodyStart, bodyLen int, err *ValidationError) {
	if len(data) < 2 {
		return 0, 0, 0, 0, &ValidationError{Kind: ErrSysexOrMetaHeaderOverflow, StatusByte: 0xff}
	}
	metaType = data[1]
	lenSlice := data[2:]
	v, n, valid := ReadVLQ(lenSlice)
	if !valid {
		kind := ErrSysexOrMetaInvalidLength
		if len(lenSlice) < 4 {
			kind = ErrSysexOrMetaHeaderOverflow
		}
		return 0, 0, 0, 0, &ValidationError{Kind: kind, StatusByte: 0xff}
	}
	bodyStart = 2 + n
	bodyLen = int(v)
	need := bodyStart + bodyLen
	if len(data) < need {
		return 0, 0, 0, 0, &ValidationError{Kind: ErrSysexOrMetaBodyExceedsInput, StatusByte: 0xff}
	}
	return need, metaType, bodyStart, bodyLen, nil
}

// ValidateSysex validates a sysex event beginning at data[0] ∈
// {0xf0, 0xf7}. On success it returns the number of bytes consumed and
// the offset/length of the body within data.
func ValidateSysex(data []byte) (consumed int, bodyStart, bodyLen int, err *ValidationError) {
	status := data[0]
	lenSlice := data[1:]
	v, n, valid := ReadVLQ(lenSlice)
	if !valid {
		kind := ErrSysexOrMetaInvalidLength
		if len(lenSlice) < 4 {
			kind = ErrSysexOrMetaHeaderOverflow
		}
		return 0, 0, 0, &ValidationError{Kind: kind, StatusByte: status}
	}
	bodyStart = 1 + n
	bodyLen = int(v)
	need := bodyStart + bodyLen
	if len(data) < need {
		return 0, 0, 0, &ValidationError{Kind: ErrSysexOrMetaBodyExceedsInput, StatusByte: status}
	}
	return need, bodyStart, bodyLen, nil
}

// MakeEvent is the umbrella validator entry point: it reads the leading
// delta-time VLQ, resolves the effective status byte against rs,
// dispatches to the matching validator, and on success
// synthesizes the event's canonical serialized form — always with an
// explicit status byte, even when data used running status. It returns
// the total number of bytes consumed from data (including the
// delta-time).
func MakeEvent(data []byte, rs byte) (ev Event, consumed int, err *ValidationError) {
	dtVal, dtN, dtValid := ReadVLQ(data)
	if !dtValid {
		return Event{}, 0, &ValidationError{Kind: ErrInvalidDeltaTime, RunningStatus: rs}
	}
	rest := data[dtN:]
	if len(rest) == 0 {
		return Event{}, dtN, &ValidationError{Kind: ErrNoDataAfterDT, Offset: dtN, RunningStatus: rs}
	}
	firstByte := rest[0]
	effStatus := ResolveStatus(firstByte, rs)
	if effStatus == 0 {
		return Event{}, 0, &ValidationError{Kind: ErrInvalidStatusByte, Offset: dtN, StatusByte: firstByte, RunningStatus: rs}
	}

	var payload []byte
	var bodyConsumed int
	switch ClassifyStatus(effStatus) {
	case StatusChannel:
		n, status, p1, p2, verr := ValidateChannel(rest, rs)
		if verr != nil {
			verr.Offset += dtN
			return Event{}, 0, verr
		}
		bodyConsumed = n
		if ChannelDataByteCount(status) == 1 {
			payload = []byte{p1}
		} else {
			payload = []byte{p1, p2}
		}
	case StatusMeta:
		n, metaType, bodyStart, bodyLen, verr := ValidateMeta(rest)
		if verr != nil {
			// Meta and sysex failures are reported at the start of the
			// event (offset 0 of data), not at its status byte.
			return Event{}, 0, verr
		}
		bodyConsumed = n
		payload = []byte{metaType}
		payload = WriteVLQ(uint32(bodyLen), payload)
		payload = append(payload, rest[bodyStart:bodyStart+bodyLen]...)
	case StatusSysexF0, StatusSysexF7:
		n, bodyStart, bodyLen, verr := ValidateSysex(rest)
		if verr != nil {
			return Event{}, 0, verr
		}
		bodyConsumed = n
		payload = WriteVLQ(uint32(bodyLen), nil)
		payload = append(payload, rest[bodyStart:bodyStart+bodyLen]...)
	default:
		return Event{}, 0, &ValidationError{Kind: ErrInvalidStatusByte, Offset: dtN, StatusByte: firstByte, RunningStatus: rs}
	}

	canonical := WriteVLQ(dtVal, nil)
	canonical = append(canonical, effStatus)
	canonical = append(canonical, payload...)
	return newEventFromBytes(canonical), dtN + bodyConsumed, nil
}

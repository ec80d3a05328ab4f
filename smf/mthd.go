// Package smf is the file/stream layer around the midievent core: the
// MThd header, the chunk envelope, and the top-level SMF stream of
// MThd + MTrk (+ unknown) chunks. Everything in this package is
// file/stream-shaped; the event-layer semantics it drives live in
// github.com/finchtrack/midievent.
package smf

import (
	"encoding/binary"
	"fmt"
)

// ErrorKind enumerates the header and chunk-envelope failures this
// package can report, with an "mthd." prefix reserved for header-level
// failures.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrMThdInvalidID
	ErrMThdBadLength
	ErrMThdBadFormat
	ErrMThdNtrksFormatMismatch
	ErrMThdBadDivision
	ErrChunkHeaderOverflow
	ErrChunkBodyExceedsInput
	ErrTrackCountMismatch
	ErrTrailingBytesAfterStream
	ErrUnprintableChunkID
	ErrTrackDecodeFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMThdInvalidID:
		return "mthd.invalid_id"
	case ErrMThdBadLength:
		return "mthd.bad_length"
	case ErrMThdBadFormat:
		return "mthd.bad_format"
	case ErrMThdNtrksFormatMismatch:
		return "mthd.ntrks_format_mismatch"
	case ErrMThdBadDivision:
		return "mthd.bad_division"
	case ErrChunkHeaderOverflow:
		return "chunk.header_overflow"
	case ErrChunkBodyExceedsInput:
		return "chunk.body_exceeds_input"
	case ErrTrackCountMismatch:
		return "smf.track_count_mismatch"
	case ErrTrailingBytesAfterStream:
		return "smf.trailing_bytes_after_stream"
	case ErrUnprintableChunkID:
		return "chunk.unprintable_id"
	case ErrTrackDecodeFailed:
		return "smf.track_decode_failed"
	default:
		return "other"
	}
}

// ParseError is the structured failure result for this package, mirroring
// midievent.ValidationError's non-exceptional shape but scoped to
// file/chunk offsets instead of event byte offsets. Cause holds the
// underlying *midievent.ValidationError when Kind is ErrTrackDecodeFailed.
type ParseError struct {
	Kind       ErrorKind
	ChunkIndex int
	Offset     int64
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("smf: %s at chunk %d, offset %d: %s", e.Kind, e.ChunkIndex, e.Offset, e.Cause)
	}
	return fmt.Sprintf("smf: %s at chunk %d, offset %d", e.Kind, e.ChunkIndex, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Division is the MThd division field: either ticks per quarter note, or
// an SMPTE frame rate plus ticks per frame.
type Division uint16

// TicksPerQuarterNote returns the division's ticks-per-quarter value, or
// 0 if this division uses SMPTE timing instead.
func (d Division) TicksPerQuarterNote() uint16 {
	if d&0x8000 != 0 {
		return 0
	}
	return uint16(d)
}

// SMPTE returns the division's frame rate (as a positive count of frames
// per second) and ticks-per-frame, or 0, 0 if this division uses
// ticks-per-quarter timing instead.
func (d Division) SMPTE() (framesPerSecond, ticksPerFrame uint8) {
	if d&0x8000 == 0 {
		return 0, 0
	}
	framesPerSecond = uint8(-int8(d >> 8))
	ticksPerFrame = uint8(d & 0xff)
	return framesPerSecond, ticksPerFrame
}

func (d Division) String() string {
	if qn := d.TicksPerQuarterNote(); qn != 0 {
		return fmt.Sprintf("%d ticks per quarter note", qn)
	}
	fps, tpf := d.SMPTE()
	return fmt.Sprintf("%d frames per second, %d ticks per frame", fps, tpf)
}

// validSMPTERate reports whether b is one of the four legal negated
// SMPTE byte values defined by the standard (-24, -25, -29, -30).
func validSMPTERate(b int8) bool {
	switch b {
	case -24, -25, -29, -30:
		return true
	default:
		return false
	}
}

// MThd is the decoded SMF header chunk. It keeps any header bytes beyond
// the canonical 6-byte payload it read, so a round-trip write reproduces
// a non-conformant-but-accepted input rather than silently truncating it.
type MThd struct {
	Format     uint16
	NTracks    uint16
	Division   Division
	ExtraBytes []byte
}

const mthdID = "MThd"

// ParseMThd parses the MThd chunk at the start of data (its id, length,
// and payload), returning the header and the number of bytes consumed.
// Any declared length >= 6 is accepted; bytes beyond the canonical
// 6-byte payload are preserved in ExtraBytes rather than rejected.
func ParseMThd(data []byte) (hdr MThd, consumed int, err *ParseError) {
	if len(data) < 8 {
		return MThd{}, 0, &ParseError{Kind: ErrChunkHeaderOverflow}
	}
	if string(data[0:4]) != mthdID {
		return MThd{}, 0, &ParseError{Kind: ErrMThdInvalidID}
	}
	length := binary.BigEndian.Uint32(data[4:8])
	if length < 6 {
		return MThd{}, 0, &ParseError{Kind: ErrMThdBadLength, Offset: 4}
	}
	need := 8 + int(length)
	if len(data) < need {
		return MThd{}, 0, &ParseError{Kind: ErrChunkBodyExceedsInput, Offset: 8}
	}
	body := data[8:need]

	format := binary.BigEndian.Uint16(body[0:2])
	if format > 2 {
		return MThd{}, 0, &ParseError{Kind: ErrMThdBadFormat, Offset: 8}
	}
	ntrks := binary.BigEndian.Uint16(body[2:4])
	if format == 0 && ntrks != 1 {
		return MThd{}, 0, &ParseError{Kind: ErrMThdNtrksFormatMismatch, Offset: 10}
	}
	div := Division(binary.BigEndian.Uint16(body[4:6]))
	if div&0x8000 == 0 {
		qn := div.TicksPerQuarterNote()
		if qn == 0 {
			return MThd{}, 0, &ParseError{Kind: ErrMThdBadDivision, Offset: 12}
		}
	} else {
		rateByte := int8(div >> 8)
		_, tpf := div.SMPTE()
		if !validSMPTERate(rateByte) || tpf == 0 {
			return MThd{}, 0, &ParseError{Kind: ErrMThdBadDivision, Offset: 12}
		}
	}

	return MThd{
		Format:     format,
		NTracks:    ntrks,
		Division:   div,
		ExtraBytes: append([]byte(nil), body[6:]...),
	}, need, nil
}

// Bytes serializes h back into its canonical chunk form: id, length, and
// the 6-byte payload followed by any preserved ExtraBytes.
func (h *MThd) Bytes() []byte {
	payload := make([]byte, 6, 6+len(h.ExtraBytes))
	binary.BigEndian.PutUint16(payload[0:2], h.Format)
	binary.BigEndian.PutUint16(payload[2:4], h.NTracks)
	binary.BigEndian.PutUint16(payload[4:6], uint16(h.Division))
	payload = append(payload, h.ExtraBytes...)

	out := make([]byte, 0, 8+len(payload))
	out = append(out, mthdID...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	out = append(out, lenBuf[:]...)
	out = append(out, payload...)
	return out
}


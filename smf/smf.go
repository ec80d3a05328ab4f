package smf

import (
	"encoding/binary"
	"os"

	"github.com/finchtrack/midievent"
	"github.com/pkg/errors"
)

// chunkKind distinguishes the two things chunkOrder can point at.
type chunkKind int

const (
	chunkTrack chunkKind = iota
	chunkUnknown
)

// chunkSlot is one entry of SMF's parallel order index, recording which
// concrete slice holds the chunk that appeared at this position in the
// file and the index within that slice.
type chunkSlot struct {
	kind  chunkKind
	index int
}

// UnknownChunk preserves a chunk this package does not interpret: any
// envelope whose 4-byte id is printable ASCII but is neither "MThd" nor
// "MTrk".
type UnknownChunk struct {
	ID   [4]byte
	Data []byte
}

// SMF is a fully decoded Standard MIDI File stream: one header, its
// tracks, and any interleaved unknown chunks, in their original order.
type SMF struct {
	Header        MThd
	Tracks        []*midievent.MTrk
	UnknownChunks []UnknownChunk
	chunkOrder    []chunkSlot
}

// parseOptions configures Parse's strictness.
type parseOptions struct {
	tolerantTrackCount bool
}

// ParseOption configures Parse. The zero value of parseOptions is the
// default strict behavior: a strict reader reports an error if the
// observed MTrk count differs from MThd.ntrks.
type ParseOption func(*parseOptions)

// Tolerant disables the strict MThd.ntrks-vs-observed-track-count check,
// for readers that would rather accept a file with a miscounted header
// than reject it outright. Modeled as a functional option rather than a
// config struct, since this is the parser's only tunable knob.
func Tolerant() ParseOption {
	return func(o *parseOptions) { o.tolerantTrackCount = true }
}

func isPrintableASCIIID(id []byte) bool {
	for _, b := range id {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// Parse decodes a complete SMF byte stream: the MThd header followed by
// MThd.ntrks MTrk chunks, possibly interleaved with unknown chunks. It
// stops at the first malformed chunk; a malformed MTrk is never skipped,
// even in tolerant mode. Track decoding is delegated to
// midievent.MTrkDecoder via midievent.DecodeMTrk; unknown chunks are
// preserved verbatim rather than dropped.
func Parse(data []byte, opts ...ParseOption) (*SMF, *ParseError) {
	var po parseOptions
	for _, opt := range opts {
		opt(&po)
	}

	hdr, n, perr := ParseMThd(data)
	if perr != nil {
		return nil, perr
	}

	out := &SMF{Header: hdr}
	cursor := n
	chunkIndex := 1
	for cursor < len(data) {
		if len(data)-cursor < 8 {
			return nil, &ParseError{Kind: ErrChunkHeaderOverflow, ChunkIndex: chunkIndex, Offset: int64(cursor)}
		}
		id := data[cursor : cursor+4]
		length := binary.BigEndian.Uint32(data[cursor+4 : cursor+8])
		bodyStart := cursor + 8
		need := 8 + int(length)
		if len(data)-cursor < need {
			return nil, &ParseError{Kind: ErrChunkBodyExceedsInput, ChunkIndex: chunkIndex, Offset: int64(cursor)}
		}
		body := data[bodyStart : bodyStart+int(length)]

		switch {
		case string(id) == "MTrk":
			trk, verr := midievent.DecodeMTrk(body)
			if verr != nil {
				return nil, &ParseError{Kind: ErrTrackDecodeFailed, ChunkIndex: chunkIndex, Offset: int64(bodyStart), Cause: verr}
			}
			out.Tracks = append(out.Tracks, trk)
			out.chunkOrder = append(out.chunkOrder, chunkSlot{kind: chunkTrack, index: len(out.Tracks) - 1})
		case isPrintableASCIIID(id):
			var idArr [4]byte
			copy(idArr[:], id)
			out.UnknownChunks = append(out.UnknownChunks, UnknownChunk{ID: idArr, Data: append([]byte(nil), body...)})
			out.chunkOrder = append(out.chunkOrder, chunkSlot{kind: chunkUnknown, index: len(out.UnknownChunks) - 1})
		default:
			return nil, &ParseError{Kind: ErrUnprintableChunkID, ChunkIndex: chunkIndex, Offset: int64(cursor)}
		}

		cursor += need
		chunkIndex++
	}

	if !po.tolerantTrackCount && len(out.Tracks) != int(hdr.NTracks) {
		return nil, &ParseError{Kind: ErrTrackCountMismatch, ChunkIndex: chunkIndex}
	}
	return out, nil
}

// trackBytes serializes one MTrk chunk (id, length, then every event's
// canonical bytes back to back — running status is never applied on
// write, matching MakeEvent's always-explicit-status canonical form).
func trackBytes(t *midievent.MTrk) []byte {
	var body []byte
	for i := 0; i < t.Size(); i++ {
		ev := t.Event(i)
		body = append(body, ev.Bytes()...)
	}
	out := make([]byte, 0, 8+len(body))
	out = append(out, "MTrk"...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	out = append(out, lenBuf[:]...)
	return append(out, body...)
}

func unknownChunkBytes(u UnknownChunk) []byte {
	out := make([]byte, 0, 8+len(u.Data))
	out = append(out, u.ID[:]...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(u.Data)))
	out = append(out, lenBuf[:]...)
	return append(out, u.Data...)
}

// Bytes serializes the whole stream back to its canonical chunk
// sequence, in the original interleaving recorded by chunkOrder.
func (s *SMF) Bytes() []byte {
	hdr := s.Header
	hdr.NTracks = uint16(len(s.Tracks))
	out := append([]byte(nil), hdr.Bytes()...)
	for _, slot := range s.chunkOrder {
		switch slot.kind {
		case chunkTrack:
			out = append(out, trackBytes(s.Tracks[slot.index])...)
		case chunkUnknown:
			out = append(out, unknownChunkBytes(s.UnknownChunks[slot.index])...)
		}
	}
	return out
}

// AppendTrack adds t as a new MTrk chunk at the end of the stream,
// updating both the track slice and the chunk order index.
func (s *SMF) AppendTrack(t *midievent.MTrk) {
	s.Tracks = append(s.Tracks, t)
	s.chunkOrder = append(s.chunkOrder, chunkSlot{kind: chunkTrack, index: len(s.Tracks) - 1})
	s.Header.NTracks = uint16(len(s.Tracks))
}

// AppendUnknownChunk adds u as a new passthrough chunk at the end of the
// stream.
func (s *SMF) AppendUnknownChunk(u UnknownChunk) {
	s.UnknownChunks = append(s.UnknownChunks, u)
	s.chunkOrder = append(s.chunkOrder, chunkSlot{kind: chunkUnknown, index: len(s.UnknownChunks) - 1})
}

// LoadFile reads and parses the SMF stream at path. File paths and I/O
// are external to the core event model, so this is a thin convenience
// wrapper, not a required entry point; errors are annotated with the
// path via github.com/pkg/errors, since a bare ParseError has no way to
// name which file it came from. This mirrors the common CLI convention
// of a file-based load function sitting in front of a pure byte-slice
// parser.
func LoadFile(path string) (*SMF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	s, perr := Parse(data)
	if perr != nil {
		return nil, errors.Wrapf(perr, "parsing %q", path)
	}
	return s, nil
}

// SaveFile serializes s and writes it to path.
func SaveFile(s *SMF, path string) error {
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", path)
	}
	return nil
}

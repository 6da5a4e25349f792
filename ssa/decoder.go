package ssa

import (
	"strconv"

	"github.com/gossair/gossair/internal/bytecursor"
)

// DecodeStatus reports the outcome of a single Decoder.Read call.
//
// SPEC_FULL.md §4.E resolves spec.md's Open Question on decode-failure
// taxonomy: a streaming consumer still halts on anything other than
// DecodeOK (matching spec.md's original "the surrounding loop halts on
// either" behavior), but DecodeEOF, DecodeUnknownTag, and DecodeTruncated
// are kept distinct so callers that want better diagnostics (the CLI,
// tests) can tell a cleanly terminated stream from a corrupt one.
type DecodeStatus int

const (
	// DecodeOK means Read produced a valid Instruction and advanced the
	// cursor past it.
	DecodeOK DecodeStatus = iota
	// DecodeEOF means the cursor was already fully consumed before Read
	// was called; this is the expected, successful end of a stream.
	DecodeEOF
	// DecodeUnknownTag means a tag byte was present but is not in the
	// known tag table (includes the reserved-but-bodyless TagCall and
	// TagTailCall, per DESIGN.md Open Question 2). The cursor is left
	// untouched, pointing at the unrecognised tag byte.
	DecodeUnknownTag
	// DecodeTruncated means a recognised tag byte was present but fewer
	// bytes remained than its body requires. The cursor is left
	// untouched, pointing at the tag byte.
	DecodeTruncated
)

// Decoder is a pull parser over a byte stream produced by Builder. Read
// yields one Instruction per call, in the exact order Builder emitted them
// (SPEC_FULL.md §8 property 1).
type Decoder struct {
	cursor *bytecursor.Cursor
}

// NewDecoder returns a Decoder reading from the start of b. b is typically
// the result of Builder.View.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{cursor: bytecursor.NewCursor(b)}
}

// Read consumes and returns the next Instruction, or reports why it could
// not. On anything other than DecodeOK, the returned Instruction is the
// zero value and the cursor is left exactly where it was before the call.
//
// Every body is validated with TryPopChunk before any field is picked out
// of it, the same two-step shape as original_source/src/ssa.rs's `chomp`:
// a short body (the stream ends mid-record) is reported as DecodeTruncated
// rather than panicking, since a truncated record is untrusted-input
// territory (a file read by `ssac decode`, say), not a builder/decoder
// schema bug.
func (d *Decoder) Read() (Instruction, DecodeStatus) {
	startPos := d.cursor.Pos

	tagByte, ok := d.cursor.TryPopU8()
	if !ok {
		return Instruction{}, DecodeEOF
	}
	tag := Tag(tagByte)
	if !tag.decodable() {
		d.cursor.Pos = startPos
		return Instruction{}, DecodeUnknownTag
	}

	var instr Instruction
	instr.Tag = tag

	truncated := func() (Instruction, DecodeStatus) {
		d.cursor.Pos = startPos
		return Instruction{}, DecodeTruncated
	}

	switch tag {
	case TagFunction:
		head, ok := d.cursor.TryPopChunk(8)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(head)
		instr.NKonts = r.PopU32()
		instr.NArgs = r.PopU32()
		types, ok := d.cursor.TryPopChunk(int(instr.NArgs))
		if !ok {
			return truncated()
		}
		instr.Types = TypeList{bytes: types}
	case TagCase:
		// No body.
	case TagJoin, TagKont:
		head, ok := d.cursor.TryPopChunk(4)
		if !ok {
			return truncated()
		}
		instr.NArgs = bytecursor.NewCursor(head).PopU32()
		types, ok := d.cursor.TryPopChunk(int(instr.NArgs))
		if !ok {
			return truncated()
		}
		instr.Types = TypeList{bytes: types}
	case TagOp1:
		body, ok := d.cursor.TryPopChunk(5)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(body)
		instr.Op1Code = Op1(r.PopU8())
		instr.A = Value(r.PopU32())
	case TagOp2:
		body, ok := d.cursor.TryPopChunk(9)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(body)
		instr.Op2Code = Op2(r.PopU8())
		instr.A = Value(r.PopU32())
		instr.B = Value(r.PopU32())
	case TagSelect:
		body, ok := d.cursor.TryPopChunk(12)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(body)
		instr.A = Value(r.PopU32())
		instr.B = Value(r.PopU32())
		instr.C = Value(r.PopU32())
	case TagConstI32:
		body, ok := d.cursor.TryPopChunk(4)
		if !ok {
			return truncated()
		}
		instr.ConstI32 = bytecursor.NewCursor(body).PopU32()
	case TagConstI64:
		body, ok := d.cursor.TryPopChunk(8)
		if !ok {
			return truncated()
		}
		instr.ConstI64 = bytecursor.NewCursor(body).PopU64()
	case TagConstBool:
		body, ok := d.cursor.TryPopChunk(1)
		if !ok {
			return truncated()
		}
		instr.ConstBool = body[0] != 0
	case TagIf:
		body, ok := d.cursor.TryPopChunk(12)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(body)
		instr.A = Value(r.PopU32())
		instr.LabelA = Label(r.PopU32())
		instr.LabelB = Label(r.PopU32())
	case TagGoto:
		head, ok := d.cursor.TryPopChunk(8)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(head)
		instr.LabelB = Label(r.PopU32())
		instr.NArgs = r.PopU32()
		values, ok := d.cursor.TryPopChunk(int(instr.NArgs) * 4)
		if !ok {
			return truncated()
		}
		instr.Values = ValueList{bytes: values}
	case TagReturn:
		head, ok := d.cursor.TryPopChunk(8)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(head)
		instr.KontIndex = r.PopU32()
		instr.NArgs = r.PopU32()
		values, ok := d.cursor.TryPopChunk(int(instr.NArgs) * 4)
		if !ok {
			return truncated()
		}
		instr.Values = ValueList{bytes: values}
	case TagLetVariable:
		body, ok := d.cursor.TryPopChunk(4)
		if !ok {
			return truncated()
		}
		instr.A = Value(bytecursor.NewCursor(body).PopU32())
	case TagGetVariable:
		body, ok := d.cursor.TryPopChunk(4)
		if !ok {
			return truncated()
		}
		instr.VarA = Variable(bytecursor.NewCursor(body).PopU32())
	case TagSetVariable:
		body, ok := d.cursor.TryPopChunk(8)
		if !ok {
			return truncated()
		}
		r := bytecursor.NewCursor(body)
		instr.VarA = Variable(r.PopU32())
		instr.A = Value(r.PopU32())
	default:
		// Unreachable: tag.decodable() above already filtered to exactly
		// this set of tags.
		panic("ssa: decodable tag with no decode case: " + tag.String())
	}

	return instr, DecodeOK
}

// ReadAll decodes every instruction in the stream, stopping at the first
// non-DecodeOK status. It returns an error only for DecodeUnknownTag and
// DecodeTruncated; a clean DecodeEOF is not an error.
func ReadAll(b []byte) ([]Instruction, error) {
	d := NewDecoder(b)
	var out []Instruction
	for {
		instr, status := d.Read()
		switch status {
		case DecodeOK:
			out = append(out, instr)
		case DecodeEOF:
			return out, nil
		case DecodeUnknownTag:
			return out, &UnknownTagError{Offset: d.cursor.Pos}
		case DecodeTruncated:
			return out, &TruncatedError{Offset: d.cursor.Pos}
		}
	}
}

// UnknownTagError reports that Decoder.Read stopped on a tag byte it did
// not recognise.
type UnknownTagError struct {
	Offset int
}

func (e *UnknownTagError) Error() string {
	return "ssa: unknown tag byte at offset " + strconv.Itoa(e.Offset)
}

// TruncatedError reports that Decoder.Read stopped on a tag byte whose body
// extends past the end of the stream.
type TruncatedError struct {
	Offset int
}

func (e *TruncatedError) Error() string {
	return "ssa: truncated record at offset " + strconv.Itoa(e.Offset)
}

package ssa

import (
	"github.com/google/uuid"

	"github.com/gossair/gossair/internal/bytecursor"
	"github.com/gossair/gossair/internal/rawbuf"
)

// PatchPoint is a byte offset into a Builder's buffer where a 4-byte Label
// field awaits a later Builder.PatchLabel call. It has no meaning once the
// Builder that produced it is gone (SPEC_FULL.md §5): using a stale
// PatchPoint against a different Builder is undefined behavior by the same
// contract as using one after the buffer has been discarded.
type PatchPoint uint32

// Builder appends SSA instructions to a byte stream and mints the fresh
// Value/Label/Variable identifiers each instruction needs, per
// SPEC_FULL.md §4.D. It performs no verification of its own: callers (in
// practice, package mir's lowering pass) are responsible for invariants 1-5
// of SPEC_FULL.md §3. A Builder is not safe for concurrent use; nothing in
// this package is (SPEC_FULL.md §5).
type Builder struct {
	buf *rawbuf.Buffer

	nextValue    Value
	nextLabel    Label
	nextVariable Variable

	// buildID identifies the function currently being built, for logging
	// only. It is never written into the
	// byte stream, so it cannot affect the byte-level stability property
	// of SPEC_FULL.md §8.
	buildID uuid.UUID

	log diagnosticsLogger
}

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithLogger attaches a diagnostics sink for patch-point bookkeeping. It
// accepts any type satisfying diagnosticsLogger (in practice the
// *zap.SugaredLogger that cmd/ssac passes in directly) so this package does
// not itself depend on zap.
func WithLogger(l diagnosticsLogger) Option {
	return func(b *Builder) { b.log = l }
}

// diagnosticsLogger is the narrow slice of *zap.SugaredLogger's API the
// builder needs, kept as an interface so package ssa has no hard dependency
// on zap; cmd/ssac supplies the real implementation.
type diagnosticsLogger interface {
	Debugf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}

// NewBuilder returns an empty Builder, ready for EmitFunction.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{buf: rawbuf.New(), log: noopLogger{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// View returns every byte emitted so far, across every function the
// Builder has built in sequence.
func (b *Builder) View() []byte { return b.buf.View() }

// Len returns the number of bytes emitted so far.
func (b *Builder) Len() int { return b.buf.Len() }

// BuildID returns the identifier minted by the most recent EmitFunction
// call, for diagnostics only.
func (b *Builder) BuildID() uuid.UUID { return b.buildID }

func (b *Builder) allocateValue() Value {
	v := b.nextValue
	b.nextValue++
	return v
}

func (b *Builder) allocateLabel() Label {
	l := b.nextLabel
	b.nextLabel++
	return l
}

func (b *Builder) allocateVariable() Variable {
	v := b.nextVariable
	b.nextVariable++
	return v
}

func (b *Builder) writeTag(tag Tag) {
	bytecursor.PutU8(b.buf.Append(1), byte(tag))
}

func (b *Builder) writeU32(v uint32) {
	bytecursor.PutU32(b.buf.Append(4), v)
}

func (b *Builder) writeU64(v uint64) {
	bytecursor.PutU64(b.buf.Append(8), v)
}

func (b *Builder) writeU8(v uint8) {
	bytecursor.PutU8(b.buf.Append(1), v)
}

// EmitFunction begins a new function: it resets the value counter to 0 and
// the label counter to 1 (label 0 is the header's own implicit label, per
// SPEC_FULL.md §3) and writes the FUNCTION header. The caller must follow
// with exactly nargs calls to EmitParam to supply the parameter types,
// before emitting anything else.
func (b *Builder) EmitFunction(nkonts, nargs uint32) {
	b.nextValue = 0
	b.nextLabel = 1
	b.nextVariable = 0
	b.buildID = uuid.New()
	b.log.Debugf("emit_function nkonts=%d nargs=%d build=%s", nkonts, nargs, b.buildID)

	b.writeTag(TagFunction)
	b.writeU32(nkonts)
	b.writeU32(nargs)
}

// EmitParam appends one parameter-type byte to the in-progress
// Function/Join/Kont header and mints the fresh Value that represents the
// corresponding binding.
func (b *Builder) EmitParam(typ Type) Value {
	b.writeU8(byte(typ))
	return b.allocateValue()
}

// EmitCase mints and writes a new CASE block entry, returning its Label.
func (b *Builder) EmitCase() Label {
	b.writeTag(TagCase)
	return b.allocateLabel()
}

// EmitJoin mints and writes a new JOIN block entry with nargs parameters,
// returning its Label. The caller must follow with exactly nargs calls to
// EmitParam.
func (b *Builder) EmitJoin(nargs uint32) Label {
	b.writeTag(TagJoin)
	b.writeU32(nargs)
	return b.allocateLabel()
}

// EmitConstBool appends a CONST_BOOL record and returns its Value.
func (b *Builder) EmitConstBool(v bool) Value {
	b.writeTag(TagConstBool)
	if v {
		b.writeU8(1)
	} else {
		b.writeU8(0)
	}
	return b.allocateValue()
}

// EmitConstI32 appends a CONST_I32 record and returns its Value.
func (b *Builder) EmitConstI32(v uint32) Value {
	b.writeTag(TagConstI32)
	b.writeU32(v)
	return b.allocateValue()
}

// EmitConstI64 appends a CONST_I64 record and returns its Value.
func (b *Builder) EmitConstI64(v uint64) Value {
	b.writeTag(TagConstI64)
	b.writeU64(v)
	return b.allocateValue()
}

// EmitOp1 appends a unary OP1 record and returns its Value.
func (b *Builder) EmitOp1(op Op1, v Value) Value {
	b.writeTag(TagOp1)
	b.writeU8(byte(op))
	b.writeU32(uint32(v))
	return b.allocateValue()
}

// EmitOp2 appends a binary OP2 record and returns its Value.
func (b *Builder) EmitOp2(op Op2, x, y Value) Value {
	b.writeTag(TagOp2)
	b.writeU8(byte(op))
	b.writeU32(uint32(x))
	b.writeU32(uint32(y))
	return b.allocateValue()
}

// EmitSelect appends a ternary SELECT record and returns its Value.
func (b *Builder) EmitSelect(pred, x, y Value) Value {
	b.writeTag(TagSelect)
	b.writeU32(uint32(pred))
	b.writeU32(uint32(x))
	b.writeU32(uint32(y))
	return b.allocateValue()
}

// EmitLetVariable mints a fresh Variable initialised from value and appends
// a LET_VARIABLE record. It produces no Value of its own.
func (b *Builder) EmitLetVariable(value Value) Variable {
	b.writeTag(TagLetVariable)
	b.writeU32(uint32(value))
	return b.allocateVariable()
}

// EmitGetVariable appends a GET_VARIABLE record reading variable and
// returns the fresh Value it produces.
func (b *Builder) EmitGetVariable(variable Variable) Value {
	b.writeTag(TagGetVariable)
	b.writeU32(uint32(variable))
	return b.allocateValue()
}

// EmitSetVariable appends a SET_VARIABLE record writing value into
// variable. It produces no Value.
func (b *Builder) EmitSetVariable(variable Variable, value Value) {
	b.writeTag(TagSetVariable)
	b.writeU32(uint32(variable))
	b.writeU32(uint32(value))
}

// EmitValue appends a single raw little-endian Value, with no leading tag.
// It is used only for the trailing argument lists of Goto and Return,
// immediately after EmitGoto/EmitReturn writes the record header.
func (b *Builder) EmitValue(v Value) {
	b.writeU32(uint32(v))
}

// EmitIf writes an IF terminator branching on pred to labelA (if pred is
// true/non-zero) or labelB (otherwise), returning the byte offsets of the
// two label fields so that forward targets can be patched in once the
// destination blocks are emitted.
func (b *Builder) EmitIf(pred Value, labelA, labelB Label) (patchA, patchB PatchPoint) {
	b.writeTag(TagIf)
	b.writeU32(uint32(pred))
	patchA = PatchPoint(b.buf.Len())
	b.writeU32(uint32(labelA))
	patchB = PatchPoint(b.buf.Len())
	b.writeU32(uint32(labelB))
	return patchA, patchB
}

// EmitGoto writes a GOTO terminator's header (target label and argument
// count) and returns the byte offset of the label field for later
// patching. The caller must follow with exactly nargs calls to EmitValue.
func (b *Builder) EmitGoto(label Label, nargs uint32) (patch PatchPoint) {
	b.writeTag(TagGoto)
	patch = PatchPoint(b.buf.Len())
	b.writeU32(uint32(label))
	b.writeU32(nargs)
	return patch
}

// EmitReturn writes a RETURN terminator's header. The caller must follow
// with exactly nargs calls to EmitValue.
func (b *Builder) EmitReturn(kontIndex uint32, nargs uint32) {
	b.writeTag(TagReturn)
	b.writeU32(kontIndex)
	b.writeU32(nargs)
}

// PatchLabel overwrites the 4-byte label field at p with label. Calling
// PatchLabel twice for the same p is allowed; the last write wins, and
// patching with the same label value twice is a no-op beyond the first
// (SPEC_FULL.md §8 property 3).
func (b *Builder) PatchLabel(p PatchPoint, label Label) {
	bytecursor.PutU32(b.buf.GetSliceMut(int(p), 4), uint32(label))
	b.log.Debugf("patch_label offset=%d -> %s", p, label)
}

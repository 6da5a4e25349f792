package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gossair/gossair/ssa"
)

// S1: four standalone Op1/Op2 instructions decode back in order and print
// with the documented mnemonics.
func TestS1_OpsRoundTripAndPrint(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitOp1(ssa.Op1NegI64, ssa.Value(10))
	b.EmitOp1(ssa.Op1CtzI64, ssa.Value(11))
	b.EmitOp2(ssa.Op2AddI64, ssa.Value(12), ssa.Value(13))
	b.EmitOp2(ssa.Op2SubI64, ssa.Value(14), ssa.Value(15))

	instrs, err := ssa.ReadAll(b.View())
	require.NoError(t, err)
	require.Len(t, instrs, 4)

	require.Equal(t, ssa.TagOp1, instrs[0].Tag)
	require.Equal(t, ssa.Op1NegI64, instrs[0].Op1Code)
	require.Equal(t, ssa.Value(10), instrs[0].A)

	require.Equal(t, ssa.TagOp2, instrs[2].Tag)
	require.Equal(t, ssa.Op2AddI64, instrs[2].Op2Code)
	require.Equal(t, ssa.Value(12), instrs[2].A)
	require.Equal(t, ssa.Value(13), instrs[2].B)

	out, err := ssa.NewPrinter().Format(b.View())
	require.NoError(t, err)
	require.Equal(t, ""+
		"%0 = neg.i64 %10\n"+
		"%1 = ctz.i64 %11\n"+
		"%2 = add.i64 %12 %13\n"+
		"%3 = sub.i64 %14 %15\n", out)
}

// S6: a stray trailing byte halts decoding without consuming it, and
// everything decoded before it stands.
func TestS6_DecoderStopsOnStrayByte(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitConstI64(7)
	b.EmitConstI64(8)

	stream := append(append([]byte{}, b.View()...), 0xff)

	d := ssa.NewDecoder(stream)
	instr, status := d.Read()
	require.Equal(t, ssa.DecodeOK, status)
	require.Equal(t, uint64(7), instr.ConstI64)

	instr, status = d.Read()
	require.Equal(t, ssa.DecodeOK, status)
	require.Equal(t, uint64(8), instr.ConstI64)

	_, status = d.Read()
	require.Equal(t, ssa.DecodeUnknownTag, status)

	_, err := ssa.ReadAll(stream)
	require.Error(t, err)
	var unknownTag *ssa.UnknownTagError
	require.ErrorAs(t, err, &unknownTag)
	require.Equal(t, len(stream)-1, unknownTag.Offset)
}

// S5: a hand-built loop-shaped stream (param, constants, Goto to a Join,
// comparison, forward If to two Cases, Goto back to the Join) round-trips
// byte-for-byte and decodes to the exact instruction list.
func TestS5_HandBuiltLoopScaffoldRoundTrips(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitFunction(1, 1)
	n := b.EmitParam(ssa.TypeI64) // %0

	zero := b.EmitConstI64(0) // %1
	one := b.EmitConstI64(1)  // %2

	loopPatch := b.EmitGoto(ssa.LabelUnpatched, 3)
	b.EmitValue(n)
	b.EmitValue(zero)
	b.EmitValue(one)

	loopLabel := b.EmitJoin(3)
	b.PatchLabel(loopPatch, loopLabel)
	remaining := b.EmitParam(ssa.TypeI64) // %3
	acc := b.EmitParam(ssa.TypeI64)       // %4
	_ = b.EmitParam(ssa.TypeI64)          // %5 (next, unused downstream)

	isDone := b.EmitOp2(ssa.Op2IsEqI64, remaining, zero) // %6
	patchTrue, patchFalse := b.EmitIf(isDone, ssa.LabelUnpatched, ssa.LabelUnpatched)

	doneLabel := b.EmitCase()
	b.PatchLabel(patchTrue, doneLabel)
	b.EmitReturn(0, 1)
	b.EmitValue(acc)

	bodyLabel := b.EmitCase()
	b.PatchLabel(patchFalse, bodyLabel)
	next := b.EmitOp2(ssa.Op2SubI64, remaining, one)
	nextAcc := b.EmitOp2(ssa.Op2MulI64, acc, remaining)
	backPatch := b.EmitGoto(ssa.LabelUnpatched, 3)
	b.PatchLabel(backPatch, loopLabel)
	b.EmitValue(next)
	b.EmitValue(nextAcc)
	b.EmitValue(one)

	view1 := append([]byte{}, b.View()...)
	instrs, err := ssa.ReadAll(view1)
	require.NoError(t, err)
	require.Equal(t, []ssa.Tag{
		ssa.TagFunction, ssa.TagConstI64, ssa.TagConstI64, ssa.TagGoto,
		ssa.TagJoin, ssa.TagOp2, ssa.TagIf, ssa.TagCase, ssa.TagReturn,
		ssa.TagCase, ssa.TagOp2, ssa.TagOp2, ssa.TagGoto,
	}, tagsOf(instrs))

	label, args := instrs[3].GotoTarget()
	require.Equal(t, loopLabel, label)
	require.Equal(t, []ssa.Value{n, zero, one}, args.Slice())

	// Byte-level stability (property 4): re-running the exact same
	// builder call sequence from scratch produces identical bytes.
	b2 := ssa.NewBuilder()
	b2.EmitFunction(1, 1)
	b2.EmitParam(ssa.TypeI64)
	b2.EmitConstI64(0)
	b2.EmitConstI64(1)
	p := b2.EmitGoto(ssa.LabelUnpatched, 3)
	b2.EmitValue(0)
	b2.EmitValue(1)
	b2.EmitValue(2)
	l := b2.EmitJoin(3)
	b2.PatchLabel(p, l)
	b2.EmitParam(ssa.TypeI64)
	b2.EmitParam(ssa.TypeI64)
	b2.EmitParam(ssa.TypeI64)
	require.Equal(t, view1[:b2.Len()], b2.View())
}

func tagsOf(instrs []ssa.Instruction) []ssa.Tag {
	out := make([]ssa.Tag, len(instrs))
	for i, in := range instrs {
		out[i] = in.Tag
	}
	return out
}

// Property 2: value numbering is monotonic, and label numbering starts at
// 1 after the function header (0 is the header's own implicit label).
func TestValueAndLabelNumberingMonotonic(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitFunction(1, 0)
	v0 := b.EmitConstI64(1)
	v1 := b.EmitConstI64(2)
	require.Equal(t, ssa.Value(0), v0)
	require.Equal(t, ssa.Value(1), v1)

	l1 := b.EmitCase()
	l2 := b.EmitCase()
	require.Equal(t, ssa.Label(1), l1)
	require.Equal(t, ssa.Label(2), l2)
}

// Property 3: patching the same patch point twice with the same label is
// a no-op beyond the first write.
func TestPatchLabelIdempotent(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitFunction(1, 0)
	p, _ := b.EmitIf(b.EmitConstBool(true), ssa.LabelUnpatched, ssa.LabelUnpatched)
	l := b.EmitCase()
	b.PatchLabel(p, l)

	before := append([]byte{}, b.View()...)
	b.PatchLabel(p, l)
	require.Equal(t, before, b.View())
}

// EmitFunction resets all three counters, even mid-stream across multiple
// functions in one buffer.
func TestEmitFunctionResetsCounters(t *testing.T) {
	b := ssa.NewBuilder()
	b.EmitFunction(1, 0)
	b.EmitLetVariable(b.EmitConstI64(1))
	b.EmitCase()

	b.EmitFunction(1, 0)
	v := b.EmitConstI64(2)
	vr := b.EmitLetVariable(v)
	l := b.EmitCase()
	require.Equal(t, ssa.Value(0), v)
	require.Equal(t, ssa.Variable(0), vr)
	require.Equal(t, ssa.Label(1), l)
}

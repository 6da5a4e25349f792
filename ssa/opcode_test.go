package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gossair/gossair/ssa"
)

// Locks down the op-dot-type mnemonic convention (spec.md §9) for every
// opcode in the stable enumeration, so a future addition can't silently
// drift to a different naming style.
func TestOp1Mnemonics(t *testing.T) {
	cases := map[ssa.Op1]string{
		ssa.Op1CastI32I64Sx: "cast_sx.i32.i64",
		ssa.Op1CastI32I64Zx: "cast_zx.i32.i64",
		ssa.Op1CastI64I32:   "cast.i64.i32",
		ssa.Op1BitNotI64:    "bit_not.i64",
		ssa.Op1ClzI64:       "clz.i64",
		ssa.Op1CtzI64:       "ctz.i64",
		ssa.Op1NegI64:       "neg.i64",
	}
	for op, want := range cases {
		require.Equal(t, want, op.String())
	}
	require.Equal(t, "op1(0x04)", ssa.Op1(0x04).String())
}

func TestOp2Mnemonics(t *testing.T) {
	cases := map[ssa.Op2]string{
		ssa.Op2BitAndI64: "bit_and.i64",
		ssa.Op2BitOrI64:  "bit_or.i64",
		ssa.Op2MulI64:    "mul.i64",
		ssa.Op2DivUI64:   "div_u.i64",
		ssa.Op2BitXorI64: "bit_xor.i64",
		ssa.Op2AddI64:    "add.i64",
		ssa.Op2SubI64:    "sub.i64",
		ssa.Op2IsEqI64:   "is_eq.i64",
		ssa.Op2IsNeI64:   "is_ne.i64",
		ssa.Op2IsLtSI64:  "is_lt_s.i64",
		ssa.Op2IsLtUI64:  "is_lt_u.i64",
		ssa.Op2IsLeSI64:  "is_le_s.i64",
		ssa.Op2IsLeUI64:  "is_le_u.i64",
		ssa.Op2ShlI64:    "shl.i64",
		ssa.Op2AsrI64:    "asr.i64",
		ssa.Op2LsrI64:    "lsr.i64",
		ssa.Op2RotI64:    "rot.i64",
	}
	for op, want := range cases {
		require.Equal(t, want, op.String())
	}
	require.True(t, ssa.Op2IsEqI64.IsComparison())
	require.False(t, ssa.Op2AddI64.IsComparison())
}

func TestTagMnemonics(t *testing.T) {
	require.Equal(t, "FUNCTION", ssa.TagFunction.String())
	require.Equal(t, "CONST_BOOL", ssa.TagConstBool.String())
	require.Equal(t, "SET_VARIABLE", ssa.TagSetVariable.String())
	require.Equal(t, "tag(0x13)", ssa.Tag(0x13).String())
}

func TestTypeMnemonics(t *testing.T) {
	cases := map[ssa.Type]string{
		ssa.TypeBool: "bool",
		ssa.TypeI5:   "i5",
		ssa.TypeI6:   "i6",
		ssa.TypeI32:  "i32",
		ssa.TypeI64:  "i64",
		ssa.TypeRef:  "ref",
		ssa.TypeVoid: "void",
	}
	for typ, want := range cases {
		require.Equal(t, want, typ.String())
	}
}

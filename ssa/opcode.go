package ssa

// Tag is the one-byte record discriminant that begins every instruction in
// the stream, per SPEC_FULL.md §4.C. There is no frame length: the body
// that follows a Tag has a fixed, positional layout known only from this
// table, which is why Decoder must recognise every Tag it accepts.
type Tag byte

const (
	TagFunction    Tag = 0x01
	TagCase        Tag = 0x02
	TagJoin        Tag = 0x03
	TagKont        Tag = 0x04
	TagOp1         Tag = 0x05
	TagOp2         Tag = 0x06
	TagSelect      Tag = 0x07
	TagConstI32    Tag = 0x08
	TagConstI64    Tag = 0x09
	TagIf          Tag = 0x0a
	TagGoto        Tag = 0x0b
	TagReturn      Tag = 0x0c
	TagCall        Tag = 0x0d // reserved, see DESIGN.md Open Question 2
	TagTailCall    Tag = 0x0e // reserved, see DESIGN.md Open Question 2
	TagConstBool   Tag = 0x0f
	TagLetVariable Tag = 0x10
	TagGetVariable Tag = 0x11
	TagSetVariable Tag = 0x12
)

// String implements fmt.Stringer.
func (t Tag) String() string {
	switch t {
	case TagFunction:
		return "FUNCTION"
	case TagCase:
		return "CASE"
	case TagJoin:
		return "JOIN"
	case TagKont:
		return "KONT"
	case TagOp1:
		return "OP1"
	case TagOp2:
		return "OP2"
	case TagSelect:
		return "SELECT"
	case TagConstI32:
		return "CONST_I32"
	case TagConstI64:
		return "CONST_I64"
	case TagIf:
		return "IF"
	case TagGoto:
		return "GOTO"
	case TagReturn:
		return "RETURN"
	case TagCall:
		return "CALL"
	case TagTailCall:
		return "TAILCALL"
	case TagConstBool:
		return "CONST_BOOL"
	case TagLetVariable:
		return "LET_VARIABLE"
	case TagGetVariable:
		return "GET_VARIABLE"
	case TagSetVariable:
		return "SET_VARIABLE"
	default:
		return "tag(0x" + hexByte(byte(t)) + ")"
	}
}

// decodable reports whether this tag has a known body layout (TagKont has
// one, though Builder has no entry point that emits it). TagCall/TagTailCall are reserved by the schema (their byte
// values are claimed so nothing else may reuse them) but, per
// DESIGN.md's Open Question 2, have no defined body layout yet: the decoder
// treats them the same as an unrecognised byte rather than guessing one.
func (t Tag) decodable() bool {
	switch t {
	case TagFunction, TagCase, TagJoin, TagKont, TagOp1, TagOp2, TagSelect,
		TagConstI32, TagConstI64, TagIf, TagGoto, TagReturn, TagConstBool,
		TagLetVariable, TagGetVariable, TagSetVariable:
		return true
	default:
		return false
	}
}

// Op1 is a unary opcode, the body of an OP1 record.
type Op1 byte

const (
	Op1CastI32I64Sx Op1 = 0x01
	Op1CastI32I64Zx Op1 = 0x02
	Op1CastI64I32   Op1 = 0x03
	Op1BitNotI64    Op1 = 0x05
	Op1ClzI64       Op1 = 0x06
	Op1CtzI64       Op1 = 0x07
	Op1NegI64       Op1 = 0x08
)

// String implements fmt.Stringer.
func (o Op1) String() string {
	switch o {
	case Op1CastI32I64Sx:
		return "cast_sx.i32.i64"
	case Op1CastI32I64Zx:
		return "cast_zx.i32.i64"
	case Op1CastI64I32:
		return "cast.i64.i32"
	case Op1BitNotI64:
		return "bit_not.i64"
	case Op1ClzI64:
		return "clz.i64"
	case Op1CtzI64:
		return "ctz.i64"
	case Op1NegI64:
		return "neg.i64"
	default:
		return "op1(0x" + hexByte(byte(o)) + ")"
	}
}

// Op2 is a binary opcode, the body of an OP2 record. Codes 0x05-0x08
// (BIT_XOR_I64, ADD_I64, SUB_I64, IS_EQ_I64) are fixed by SPEC_FULL.md §6;
// the rest of this stable enumeration fills in the remaining arithmetic,
// bitwise, shift, and comparison operations SPEC_FULL.md §3 names without
// giving fixed codes to ("remaining ... occupy subsequent codes in a stable
// enumeration").
type Op2 byte

const (
	Op2BitAndI64 Op2 = 0x01
	Op2BitOrI64  Op2 = 0x02
	Op2MulI64    Op2 = 0x03
	Op2DivUI64   Op2 = 0x04
	Op2BitXorI64 Op2 = 0x05
	Op2AddI64    Op2 = 0x06
	Op2SubI64    Op2 = 0x07
	Op2IsEqI64   Op2 = 0x08
	Op2IsNeI64   Op2 = 0x09
	Op2IsLtSI64  Op2 = 0x0a
	Op2IsLtUI64  Op2 = 0x0b
	Op2IsLeSI64  Op2 = 0x0c
	Op2IsLeUI64  Op2 = 0x0d
	Op2ShlI64    Op2 = 0x0e
	Op2AsrI64    Op2 = 0x0f
	Op2LsrI64    Op2 = 0x10
	Op2RotI64    Op2 = 0x11
)

// String implements fmt.Stringer.
func (o Op2) String() string {
	switch o {
	case Op2BitAndI64:
		return "bit_and.i64"
	case Op2BitOrI64:
		return "bit_or.i64"
	case Op2MulI64:
		return "mul.i64"
	case Op2DivUI64:
		return "div_u.i64"
	case Op2BitXorI64:
		return "bit_xor.i64"
	case Op2AddI64:
		return "add.i64"
	case Op2SubI64:
		return "sub.i64"
	case Op2IsEqI64:
		return "is_eq.i64"
	case Op2IsNeI64:
		return "is_ne.i64"
	case Op2IsLtSI64:
		return "is_lt_s.i64"
	case Op2IsLtUI64:
		return "is_lt_u.i64"
	case Op2IsLeSI64:
		return "is_le_s.i64"
	case Op2IsLeUI64:
		return "is_le_u.i64"
	case Op2ShlI64:
		return "shl.i64"
	case Op2AsrI64:
		return "asr.i64"
	case Op2LsrI64:
		return "lsr.i64"
	case Op2RotI64:
		return "rot.i64"
	default:
		return "op2(0x" + hexByte(byte(o)) + ")"
	}
}

// IsComparison reports whether op2 yields TypeBool rather than TypeI64.
// Package mir's lowering pass uses this to pick a Call expression's result
// type without duplicating the opcode table.
func (o Op2) IsComparison() bool {
	switch o {
	case Op2IsEqI64, Op2IsNeI64, Op2IsLtSI64, Op2IsLtUI64, Op2IsLeSI64, Op2IsLeUI64:
		return true
	default:
		return false
	}
}

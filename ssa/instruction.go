package ssa

import "encoding/binary"

// TypeList is a zero-copy view over a contiguous run of one-byte Type
// entries living inside the decoded instruction stream: the param-type
// payload of Function/Join/Kont. It never allocates or copies; it just
// indexes into the bytes the builder already wrote.
type TypeList struct {
	bytes []byte
}

// Len returns the number of types in the list.
func (l TypeList) Len() int { return len(l.bytes) }

// At returns the i-th type.
func (l TypeList) At(i int) Type { return Type(l.bytes[i]) }

// Slice eagerly decodes every element, for callers (like the tests) that
// want an ordinary slice rather than a lazy view.
func (l TypeList) Slice() []Type {
	out := make([]Type, l.Len())
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}

// ValueList is a zero-copy view over a contiguous run of little-endian
// uint32 Value entries: the trailing argument list of Goto/Return.
type ValueList struct {
	bytes []byte
}

// Len returns the number of values in the list.
func (l ValueList) Len() int { return len(l.bytes) / 4 }

// At returns the i-th value.
func (l ValueList) At(i int) Value {
	return Value(binary.LittleEndian.Uint32(l.bytes[i*4:]))
}

// Slice eagerly decodes every element.
func (l ValueList) Slice() []Value {
	out := make([]Value, l.Len())
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}

// Instruction is a decoded record from the stream. Since Go has no sum
// type, this follows the teacher's own flattened-struct idiom
// (ssa.Instruction in the teacher's in-memory IR): one struct for every
// Tag, with the comment on each field saying which Tag(s) populate it.
// Prefer the Tag-specific accessor methods below over touching fields
// directly; they document which fields are meaningful for which Tag.
type Instruction struct {
	Tag Tag

	// Function.
	NKonts uint32

	// Function/Join/Kont: number of params. Goto/Return: number of
	// trailing Values.
	NArgs uint32
	// Function/Join/Kont param types, length NArgs.
	Types TypeList

	// Op1.
	Op1Code Op1
	// Op2.
	Op2Code Op2

	// Op1: the operand. Op2: the first operand. Select: the predicate.
	// If: the predicate.
	A Value
	// Op2: the second operand. Select: the "then" value.
	B Value
	// Select: the "else" value.
	C Value

	// ConstI32.
	ConstI32 uint32
	// ConstI64.
	ConstI64 uint64
	// ConstBool.
	ConstBool bool

	// If: the true-branch target.
	LabelA Label
	// If: the false-branch target. Goto: the target.
	LabelB Label

	// Return.
	KontIndex uint32

	// Goto/Return trailing Value arguments, length NArgs.
	Values ValueList

	// LetVariable: the initial value (same field as A).
	// GetVariable: the variable being read, stored in VarA.
	// SetVariable: the variable being written, stored in VarA, with the
	// new value in A.
	VarA Variable
}

// IfTarget returns the If instruction's branch targets.
func (i *Instruction) IfTarget() (pred Value, onTrue, onFalse Label) {
	return i.A, i.LabelA, i.LabelB
}

// GotoTarget returns the Goto instruction's target label and arguments.
func (i *Instruction) GotoTarget() (label Label, args ValueList) {
	return i.LabelB, i.Values
}

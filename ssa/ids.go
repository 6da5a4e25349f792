package ssa

import "strconv"

// Value is the identifier of an SSA result: an instruction that "produces a
// value" mints the next one in emission order, starting from 0 within a
// function. Like the teacher's own ValueID/Variable/SignatureID, Value is
// its own named integer type rather than a bare uint32, so a Value can never
// be passed where a Label or Variable is expected by accident.
type Value uint32

// String implements fmt.Stringer.
func (v Value) String() string { return "%" + strconv.FormatUint(uint64(v), 10) }

// Label is the identifier of a basic-block entry, numbered from 1 within a
// function; 0 is the unpatched sentinel (SPEC_FULL.md §3) and the function
// header's own implicit label, and is never minted for a Case or Join.
type Label uint32

// LabelUnpatched is the sentinel label value written into an If/Goto target
// field before the real target block is known, to be overwritten later via
// Builder.PatchLabel.
const LabelUnpatched Label = 0

// String implements fmt.Stringer.
func (l Label) String() string { return "L" + strconv.FormatUint(uint64(l), 10) }

// Variable is the identifier of a mutable slot introduced by
// LET_VARIABLE, read by GET_VARIABLE, and written by SET_VARIABLE.
type Variable uint32

// String implements fmt.Stringer.
func (v Variable) String() string { return "var" + strconv.FormatUint(uint64(v), 10) }

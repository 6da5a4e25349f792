package ssa

import (
	"strconv"
	"strings"
)

// Printer walks a decoded instruction stream and renders it as a
// human-readable listing, per SPEC_FULL.md §4.F/§6. Output is line-based
// UTF-8: block entries print "L: kind (params)", value-producing middle
// instructions print "%V = mnemonic operands", and terminators print
// without minting any id. Format strings are stable enough to diff in
// tests, matching SPEC_FULL.md §6, but are not a machine-readable
// interface in their own right.
type Printer struct{}

// NewPrinter returns a Printer. Printer carries no state of its own; all
// per-stream state (function/label/value counters) lives in the call to
// Format.
func NewPrinter() *Printer { return &Printer{} }

// Format decodes b from the start and renders every instruction in it. It
// returns the first decode error encountered (an *UnknownTagError or
// *TruncatedError), if any, along with whatever text was rendered before
// the failure: a corrupt or truncated stream still yields a partial
// listing of everything decoded up to that point, rather than nothing.
func (p *Printer) Format(b []byte) (string, error) {
	var out strings.Builder

	d := NewDecoder(b)
	var labelID Label
	var valueID Value
	var variableID Variable
	functionIndex := -1

	for {
		instr, status := d.Read()
		switch status {
		case DecodeEOF:
			return out.String(), nil
		case DecodeUnknownTag:
			return out.String(), &UnknownTagError{Offset: d.cursor.Pos}
		case DecodeTruncated:
			return out.String(), &TruncatedError{Offset: d.cursor.Pos}
		}

		switch instr.Tag {
		case TagFunction:
			functionIndex++
			if functionIndex > 0 {
				out.WriteByte('\n')
			}
			labelID, valueID, variableID = 0, 0, 0
			params := mintParams(&valueID, instr.Types)
			out.WriteString(formatEntry(labelID, "function", params))
			out.WriteByte('\n')
			labelID++

		case TagCase:
			out.WriteString(formatEntry(labelID, "case", nil))
			out.WriteByte('\n')
			labelID++

		case TagJoin:
			params := mintParams(&valueID, instr.Types)
			out.WriteString(formatEntry(labelID, "join", params))
			out.WriteByte('\n')
			labelID++

		case TagKont:
			params := mintParams(&valueID, instr.Types)
			out.WriteString(formatEntry(labelID, "kont", params))
			out.WriteByte('\n')
			labelID++

		case TagConstBool:
			out.WriteString(formatAssign(valueID, "const.bool", "#"+strconv.FormatBool(instr.ConstBool)))
			valueID++

		case TagConstI32:
			out.WriteString(formatAssign(valueID, "const.i32", "#"+strconv.FormatUint(uint64(instr.ConstI32), 10)))
			valueID++

		case TagConstI64:
			out.WriteString(formatAssign(valueID, "const.i64", "#"+strconv.FormatUint(instr.ConstI64, 10)))
			valueID++

		case TagOp1:
			out.WriteString(formatAssign(valueID, instr.Op1Code.String(), instr.A.String()))
			valueID++

		case TagOp2:
			out.WriteString(formatAssign(valueID, instr.Op2Code.String(), instr.A.String()+" "+instr.B.String()))
			valueID++

		case TagSelect:
			out.WriteString(formatAssign(valueID, "select", instr.A.String()+" "+instr.B.String()+" "+instr.C.String()))
			valueID++

		case TagGetVariable:
			out.WriteString(formatAssign(valueID, "get.variable", instr.VarA.String()))
			valueID++

		case TagLetVariable:
			out.WriteString(variableID.String())
			out.WriteString(" = let.variable ")
			out.WriteString(instr.A.String())
			out.WriteByte('\n')
			variableID++

		case TagSetVariable:
			out.WriteString("set.variable ")
			out.WriteString(instr.VarA.String())
			out.WriteByte(' ')
			out.WriteString(instr.A.String())
			out.WriteByte('\n')

		case TagIf:
			out.WriteString("if ")
			out.WriteString(instr.A.String())
			out.WriteString(" =>")
			out.WriteString(strconv.FormatUint(uint64(instr.LabelA), 10))
			out.WriteString(" =>")
			out.WriteString(strconv.FormatUint(uint64(instr.LabelB), 10))
			out.WriteByte('\n')

		case TagGoto:
			out.WriteString("goto =>")
			out.WriteString(strconv.FormatUint(uint64(instr.LabelB), 10))
			for i := 0; i < instr.Values.Len(); i++ {
				out.WriteByte(' ')
				out.WriteString(instr.Values.At(i).String())
			}
			out.WriteByte('\n')

		case TagReturn:
			out.WriteString("return #")
			out.WriteString(strconv.FormatUint(uint64(instr.KontIndex), 10))
			for i := 0; i < instr.Values.Len(); i++ {
				out.WriteByte(' ')
				out.WriteString(instr.Values.At(i).String())
			}
			out.WriteByte('\n')
		}
	}
}

// mintParams allocates len(types) consecutive Values starting at *valueID,
// advancing it, and returns the "%id:type" pairs for a block-entry line.
func mintParams(valueID *Value, types TypeList) []string {
	params := make([]string, types.Len())
	for i := range params {
		params[i] = Value(*valueID).String() + ":" + types.At(i).String()
		*valueID++
	}
	return params
}

func formatEntry(label Label, kind string, params []string) string {
	return strconv.FormatUint(uint64(label), 10) + ": " + kind + " (" + strings.Join(params, ", ") + ")"
}

func formatAssign(value Value, mnemonic, operands string) string {
	if operands == "" {
		return value.String() + " = " + mnemonic + "\n"
	}
	return value.String() + " = " + mnemonic + " " + operands + "\n"
}

package bytecode

import (
	"github.com/zlang-io/zlang/op"
)

// Instruction is one opcode together with its operand.
type Instruction struct {
	Op      op.Code
	Operand Operand
}

// String returns the instruction in "NAME operand" form.
func (i Instruction) String() string {
	if i.Operand.Kind() == KindNone {
		return i.Op.String()
	}
	return i.Op.String() + " " + i.Operand.String()
}

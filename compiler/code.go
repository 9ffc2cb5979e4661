package compiler

import (
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/op"
)

// placeholder is the operand written for jumps and the frame reservation
// whose value is not known yet. It is always replaced before the function is
// finished; bytecode.Validate rejects any that survive.
var placeholder = bytecode.Target(-1)

// code is the mutable instruction buffer for the function being compiled,
// together with the per-function bookkeeping that is reset for each function.
type code struct {
	name         string
	arity        int
	instructions []bytecode.Instruction
	symbols      *SymbolTable
	breaks       *labelStack
	continues    *labelStack
}

func newCode(name string) *code {
	return &code{
		name:      name,
		symbols:   NewSymbolTable(),
		breaks:    &labelStack{},
		continues: &labelStack{},
	}
}

// emit appends an instruction and returns its index.
func (c *code) emit(opcode op.Code, operand bytecode.Operand) int {
	pos := len(c.instructions)
	c.instructions = append(c.instructions, bytecode.Instruction{Op: opcode, Operand: operand})
	return pos
}

// position returns the index the next emitted instruction will have.
func (c *code) position() int {
	return len(c.instructions)
}

func (c *code) changeOperand(index int, operand bytecode.Operand) {
	c.instructions[index].Operand = operand
}

// patchJump points the jump at index to target.
func (c *code) patchJump(index, target int) {
	c.changeOperand(index, bytecode.Target(target))
}

func (c *code) toFunction() *bytecode.Function {
	return bytecode.NewFunction(bytecode.FunctionParams{
		Name:         c.name,
		Arity:        c.arity,
		FrameSize:    c.symbols.Count(),
		Instructions: c.instructions,
		LocalNames:   c.symbols.Names(),
	})
}

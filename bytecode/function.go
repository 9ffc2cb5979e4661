package bytecode

import (
	"fmt"
	"strconv"

	"github.com/zlang-io/zlang/op"
)

// Function is an immutable compiled function.
type Function struct {
	name         string
	arity        int
	frameSize    int
	instructions []Instruction
	localNames   []string
}

// FunctionParams contains parameters for creating a new Function.
type FunctionParams struct {
	Name         string
	Arity        int
	FrameSize    int
	Instructions []Instruction
	LocalNames   []string // Indexed by slot, optional
}

// NewFunction creates a new immutable Function. The instruction and name
// slices are copied.
func NewFunction(params FunctionParams) *Function {
	instructions := make([]Instruction, len(params.Instructions))
	copy(instructions, params.Instructions)
	var localNames []string
	if len(params.LocalNames) > 0 {
		localNames = make([]string, len(params.LocalNames))
		copy(localNames, params.LocalNames)
	}
	return &Function{
		name:         params.Name,
		arity:        params.Arity,
		frameSize:    params.FrameSize,
		instructions: instructions,
		localNames:   localNames,
	}
}

// FunctionKey returns the registry key of a function, e.g. "add/2".
func FunctionKey(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// Arity returns the number of parameters.
func (f *Function) Arity() int { return f.arity }

// FrameSize returns the number of local variable slots, parameters included.
func (f *Function) FrameSize() int { return f.frameSize }

// Key returns the function's registry key.
func (f *Function) Key() string { return FunctionKey(f.name, f.arity) }

// InstructionCount returns the number of instructions.
func (f *Function) InstructionCount() int { return len(f.instructions) }

// Instruction returns the instruction at the given index.
func (f *Function) Instruction(index int) Instruction { return f.instructions[index] }

// Instructions returns a copy of the instructions.
func (f *Function) Instructions() []Instruction {
	result := make([]Instruction, len(f.instructions))
	copy(result, f.instructions)
	return result
}

// LocalName returns the source name of a slot, or "" when unknown.
func (f *Function) LocalName(slot int) string {
	if slot < 0 || slot >= len(f.localNames) {
		return ""
	}
	return f.localNames[slot]
}

// LocalNames returns a copy of the slot names.
func (f *Function) LocalNames() []string {
	if f.localNames == nil {
		return nil
	}
	result := make([]string, len(f.localNames))
	copy(result, f.localNames)
	return result
}

func (f *Function) String() string {
	return fmt.Sprintf("function %s", f.Key())
}

// Validate checks the structural invariants of a compiled function: every
// jump lands on an instruction of the same function, every slot operand is
// inside the frame, and the last instruction is a return.
func Validate(f *Function) error {
	n := len(f.instructions)
	if n == 0 {
		return fmt.Errorf("%s: no instructions", f.Key())
	}
	if last := f.instructions[n-1].Op; !last.IsReturn() {
		return fmt.Errorf("%s: last instruction is %s, not a return", f.Key(), last)
	}
	for i, instr := range f.instructions {
		info := op.GetInfo(instr.Op)
		if info.Name == "" {
			return fmt.Errorf("%s: invalid opcode %d at %d", f.Key(), instr.Op, i)
		}
		switch info.Operand {
		case op.TargetOperand:
			if instr.Operand.Kind() != KindTarget {
				return fmt.Errorf("%s: %s at %d has no jump target", f.Key(), instr.Op, i)
			}
			if t := instr.Operand.Target(); t < 0 || t >= n {
				return fmt.Errorf("%s: %s at %d jumps to %d, outside [0,%d)", f.Key(), instr.Op, i, t, n)
			}
		case op.SlotOperand:
			if instr.Operand.Kind() != KindSlot {
				return fmt.Errorf("%s: %s at %d has no slot", f.Key(), instr.Op, i)
			}
			if s := instr.Operand.Slot(); s < 0 || s >= f.frameSize {
				return fmt.Errorf("%s: %s at %d uses slot %d, frame size is %d", f.Key(), instr.Op, i, s, f.frameSize)
			}
		case op.CountOperand:
			if instr.Operand.Kind() != KindInt || instr.Operand.Int() != int64(f.frameSize) {
				return fmt.Errorf("%s: %s at %d does not match frame size %d", f.Key(), instr.Op, i, f.frameSize)
			}
		case op.FunctionOperand:
			if instr.Operand.Kind() != KindFunction || instr.Operand.Function() == "" {
				return fmt.Errorf("%s: %s at %d has no callee", f.Key(), instr.Op, i)
			}
		case op.LiteralOperand:
			if !instr.Operand.Kind().IsLiteral() {
				return fmt.Errorf("%s: %s at %d has a non-literal operand", f.Key(), instr.Op, i)
			}
		}
	}
	return nil
}

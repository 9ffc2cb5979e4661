// Package dis supports analysis of zlang bytecode by disassembling it.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/internal/table"
	"github.com/zlang-io/zlang/op"
)

// Instruction is a single disassembled instruction.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operand    string
	Annotation string
	Literal    any
	IsLiteral  bool
}

// Disassemble returns a readable representation of the instructions of fn.
func Disassemble(fn *bytecode.Function) []Instruction {
	instructions := make([]Instruction, 0, fn.InstructionCount())
	for offset, instr := range fn.Instructions() {
		info := op.GetInfo(instr.Op)
		result := Instruction{
			Offset: offset,
			Name:   info.Name,
			Opcode: instr.Op,
		}
		operand := instr.Operand
		switch operand.Kind() {
		case bytecode.KindSlot:
			result.Operand = strconv.Itoa(operand.Slot())
			result.Annotation = fn.LocalName(operand.Slot())
		case bytecode.KindTarget:
			result.Operand = strconv.Itoa(operand.Target())
			if operand.Target() <= offset {
				result.Annotation = "loop"
			}
		case bytecode.KindOperator:
			result.Annotation = operand.Operator().String()
		case bytecode.KindFunction:
			result.Annotation = operand.Function()
		case bytecode.KindNone:
		default:
			if instr.Op == op.Reserve {
				result.Operand = operand.String()
				break
			}
			result.Literal = operand.Value()
			result.IsLiteral = true
			result.Annotation = operand.String()
		}
		instructions = append(instructions, result)
	}
	return instructions
}

var (
	boldText    = color.New(color.Bold).SprintFunc()
	numberText  = color.New(color.FgYellow).SprintFunc()
	stringText  = color.New(color.FgGreen).SprintFunc()
	calleeText  = color.New(color.FgMagenta).SprintFunc()
	commentText = color.New(color.FgHiCyan).SprintFunc()
)

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		values := []string{
			strconv.Itoa(instr.Offset),
			boldText(instr.Name),
			instr.Operand,
		}
		switch {
		case instr.IsLiteral:
			values = append(values, formatLiteral(instr))
		case instr.Opcode == op.Call || instr.Opcode == op.CallDiscard:
			values = append(values, calleeText(instr.Annotation))
		case instr.Annotation != "":
			values = append(values, commentText(instr.Annotation))
		default:
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	return table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// PrintFunction writes a heading for fn followed by its disassembly.
func PrintFunction(fn *bytecode.Function, writer io.Writer) error {
	heading := fmt.Sprintf("function %s (frame size %d)", fn.Key(), fn.FrameSize())
	if _, err := fmt.Fprintln(writer, boldText(heading)); err != nil {
		return err
	}
	return Print(Disassemble(fn), writer)
}

func formatLiteral(instr Instruction) string {
	switch v := instr.Literal.(type) {
	case int64, float64:
		return numberText(instr.Annotation)
	case string:
		if len(v) > 80 {
			return stringText(strconv.Quote(v[:77] + "..."))
		}
		return stringText(instr.Annotation)
	case rune:
		return stringText(instr.Annotation)
	default:
		return boldText(instr.Annotation)
	}
}

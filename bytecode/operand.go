package bytecode

import (
	"fmt"
	"strconv"

	"github.com/zlang-io/zlang/op"
)

// OperandKind identifies the active variant of an Operand.
type OperandKind uint8

const (
	KindNone OperandKind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindText
	KindNull
	KindSlot
	KindTarget
	KindOperator
	KindFunction
)

var kindNames = [...]string{
	KindNone:     "none",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindChar:     "char",
	KindText:     "text",
	KindNull:     "null",
	KindSlot:     "slot",
	KindTarget:   "target",
	KindOperator: "operator",
	KindFunction: "function",
}

func (k OperandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func kindFromString(s string) (OperandKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return OperandKind(k), true
		}
	}
	return KindNone, false
}

// IsLiteral reports whether the kind is a constant value that can be pushed.
func (k OperandKind) IsLiteral() bool {
	switch k {
	case KindInt, KindFloat, KindBool, KindChar, KindText, KindNull:
		return true
	}
	return false
}

// Operand is the single argument of an instruction. The zero value is the
// "none" operand. Operands are comparable with ==.
type Operand struct {
	kind OperandKind
	num  int64
	flt  float64
	str  string
}

// None returns the empty operand of instructions that take no argument.
func None() Operand { return Operand{} }

// Int returns an integer constant operand.
func Int(v int64) Operand { return Operand{kind: KindInt, num: v} }

// Float returns a floating point constant operand.
func Float(v float64) Operand { return Operand{kind: KindFloat, flt: v} }

// Char returns a character constant operand.
func Char(v rune) Operand { return Operand{kind: KindChar, num: int64(v)} }

// Text returns a string constant operand.
func Text(v string) Operand { return Operand{kind: KindText, str: v} }

// Null returns the null constant operand.
func Null() Operand { return Operand{kind: KindNull} }

// Slot returns an operand naming a local variable slot.
func Slot(v int) Operand { return Operand{kind: KindSlot, num: int64(v)} }

// Target returns an operand naming an instruction index as a jump target.
func Target(v int) Operand { return Operand{kind: KindTarget, num: int64(v)} }

// Op returns an operand carrying an operator.
func Op(v op.Operator) Operand { return Operand{kind: KindOperator, num: int64(v)} }

// Func returns an operand naming a callee by function key.
func Func(name string) Operand { return Operand{kind: KindFunction, str: name} }

// Count returns an integer operand holding a count, such as a frame size or
// an argument count.
func Count(v int) Operand { return Int(int64(v)) }

// Bool returns a boolean literal operand.
func Bool(v bool) Operand {
	o := Operand{kind: KindBool}
	if v {
		o.num = 1
	}
	return o
}

// Literal converts a lexer payload into a literal operand.
func Literal(v any) (Operand, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case int64:
		return Int(v), nil
	case int:
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case bool:
		return Bool(v), nil
	case rune:
		return Char(v), nil
	case string:
		return Text(v), nil
	default:
		return Operand{}, fmt.Errorf("unsupported literal type %T", v)
	}
}

// Kind returns the active variant.
func (o Operand) Kind() OperandKind { return o.kind }

// Int returns the integer value of an int operand.
func (o Operand) Int() int64 { return o.num }

// Float returns the value of a float operand.
func (o Operand) Float() float64 { return o.flt }

// Bool returns the value of a bool operand.
func (o Operand) Bool() bool { return o.num != 0 }

// Char returns the value of a char operand.
func (o Operand) Char() rune { return rune(o.num) }

// Text returns the value of a text operand.
func (o Operand) Text() string { return o.str }

// Slot returns the slot index of a slot operand.
func (o Operand) Slot() int { return int(o.num) }

// Target returns the instruction index of a jump operand.
func (o Operand) Target() int { return int(o.num) }

// Operator returns the operator tag of an operator operand.
func (o Operand) Operator() op.Operator { return op.Operator(o.num) }

// Function returns the callee name of a function operand.
func (o Operand) Function() string { return o.str }

// Value returns the Go value of a literal operand, or nil.
func (o Operand) Value() any {
	switch o.kind {
	case KindInt:
		return o.num
	case KindFloat:
		return o.flt
	case KindBool:
		return o.Bool()
	case KindChar:
		return o.Char()
	case KindText:
		return o.str
	}
	return nil
}

func (o Operand) String() string {
	switch o.kind {
	case KindNone:
		return ""
	case KindInt:
		return strconv.FormatInt(o.num, 10)
	case KindFloat:
		return strconv.FormatFloat(o.flt, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(o.Bool())
	case KindChar:
		return strconv.QuoteRune(o.Char())
	case KindText:
		return strconv.Quote(o.str)
	case KindNull:
		return "null"
	case KindSlot:
		return fmt.Sprintf("slot %d", o.num)
	case KindTarget:
		return fmt.Sprintf("-> %d", o.num)
	case KindOperator:
		return o.Operator().String()
	case KindFunction:
		return o.str
	}
	return "?"
}

// Package op defines opcodes emitted by the zlang compiler and consumed by
// an execution engine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Frame
	Reserve Code = 1 // Reserve the local variable frame (operand: slot count)

	// Load / store
	PushLiteral  Code = 10
	LoadSlot     Code = 11
	StoreSlot    Code = 12
	LoadElement  Code = 13 // Operand: slot; dimension count and indices on the stack
	StoreElement Code = 14 // Operand: slot; indices, dimension count and value on the stack

	// Operations
	Operate Code = 20

	// Jump
	Jump            Code = 30
	JumpIfFalse     Code = 31 // Pops the tested value
	JumpIfFalseKeep Code = 32 // Short-circuit: leaves the tested value when jumping
	JumpIfTrueKeep  Code = 33 // Short-circuit: leaves the tested value when jumping

	// Calls
	Call        Code = 40 // Result is pushed
	CallDiscard Code = 41 // Result is dropped
	ReturnValue Code = 42
	ReturnVoid  Code = 43
)

// Operator identifies the arithmetic, relational or boolean operation
// applied by an Operate instruction.
type Operator uint8

const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
	Negate
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	And
	Or
	Not
)

// String returns the source spelling of the operator, e.g. "+" for Add.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Negate:
		return "neg"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	case Not:
		return "!"
	default:
		return ""
	}
}

// OperandType describes what the operand of an instruction refers to.
type OperandType uint8

const (
	NoOperand OperandType = iota
	LiteralOperand
	SlotOperand
	TargetOperand
	OperatorOperand
	FunctionOperand
	CountOperand
)

// Info contains information about an opcode.
type Info struct {
	Code    Code
	Name    string
	Operand OperandType
}

var (
	infos  = make([]Info, 256)
	byName = map[string]Code{}
)

func init() {
	type opInfo struct {
		op      Code
		name    string
		operand OperandType
	}
	ops := []opInfo{
		{Call, "CALL", FunctionOperand},
		{CallDiscard, "CALL_DISCARD", FunctionOperand},
		{Jump, "JUMP", TargetOperand},
		{JumpIfFalse, "JUMP_IF_FALSE", TargetOperand},
		{JumpIfFalseKeep, "JUMP_IF_FALSE_KEEP", TargetOperand},
		{JumpIfTrueKeep, "JUMP_IF_TRUE_KEEP", TargetOperand},
		{LoadElement, "LOAD_ELEMENT", SlotOperand},
		{LoadSlot, "LOAD_SLOT", SlotOperand},
		{Operate, "OPERATE", OperatorOperand},
		{PushLiteral, "PUSH_LITERAL", LiteralOperand},
		{Reserve, "RESERVE", CountOperand},
		{ReturnValue, "RETURN_VALUE", NoOperand},
		{ReturnVoid, "RETURN_VOID", NoOperand},
		{StoreElement, "STORE_ELEMENT", SlotOperand},
		{StoreSlot, "STORE_SLOT", SlotOperand},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:    o.op,
			Name:    o.name,
			Operand: o.operand,
		}
		byName[o.name] = o.op
	}
}

// Lookup returns the opcode with the given name.
func Lookup(name string) (Code, bool) {
	code, ok := byName[name]
	return code, ok
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

// String returns the opcode name, e.g. "LOAD_SLOT".
func (c Code) String() string {
	if name := infos[c].Name; name != "" {
		return name
	}
	return "INVALID"
}

// IsJump reports whether the opcode transfers control to its operand.
func (c Code) IsJump() bool {
	return infos[c].Operand == TargetOperand
}

// IsReturn reports whether the opcode leaves the current function.
func (c Code) IsReturn() bool {
	return c == ReturnValue || c == ReturnVoid
}

package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(LoadSlot)
	require.Equal(t, "LOAD_SLOT", info.Name)
	require.Equal(t, SlotOperand, info.Operand)
	require.Equal(t, LoadSlot, info.Code)
}

func TestGetInfoAllOpcodes(t *testing.T) {
	tests := []struct {
		code    Code
		name    string
		operand OperandType
	}{
		{Reserve, "RESERVE", CountOperand},
		{PushLiteral, "PUSH_LITERAL", LiteralOperand},
		{LoadSlot, "LOAD_SLOT", SlotOperand},
		{StoreSlot, "STORE_SLOT", SlotOperand},
		{LoadElement, "LOAD_ELEMENT", SlotOperand},
		{StoreElement, "STORE_ELEMENT", SlotOperand},
		{Operate, "OPERATE", OperatorOperand},
		{Jump, "JUMP", TargetOperand},
		{JumpIfFalse, "JUMP_IF_FALSE", TargetOperand},
		{JumpIfFalseKeep, "JUMP_IF_FALSE_KEEP", TargetOperand},
		{JumpIfTrueKeep, "JUMP_IF_TRUE_KEEP", TargetOperand},
		{Call, "CALL", FunctionOperand},
		{CallDiscard, "CALL_DISCARD", FunctionOperand},
		{ReturnValue, "RETURN_VALUE", NoOperand},
		{ReturnVoid, "RETURN_VOID", NoOperand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetInfo(tt.code)
			require.Equal(t, tt.name, info.Name)
			require.Equal(t, tt.operand, info.Operand)
			require.Equal(t, tt.name, tt.code.String())
		})
	}
}

func TestInvalid(t *testing.T) {
	require.Equal(t, "INVALID", Invalid.String())
	require.Equal(t, "INVALID", Code(200).String())
	require.False(t, Invalid.IsJump())
}

func TestPredicates(t *testing.T) {
	for _, c := range []Code{Jump, JumpIfFalse, JumpIfFalseKeep, JumpIfTrueKeep} {
		require.True(t, c.IsJump(), c.String())
	}
	require.False(t, Call.IsJump())
	require.True(t, ReturnValue.IsReturn())
	require.True(t, ReturnVoid.IsReturn())
	require.False(t, Jump.IsReturn())
}

func TestOperatorString(t *testing.T) {
	tests := []struct {
		op       Operator
		expected string
	}{
		{Add, "+"}, {Subtract, "-"}, {Multiply, "*"}, {Divide, "/"},
		{Negate, "neg"}, {Equal, "=="}, {NotEqual, "!="}, {Less, "<"},
		{LessEqual, "<="}, {Greater, ">"}, {GreaterEqual, ">="},
		{And, "&&"}, {Or, "||"}, {Not, "!"}, {Operator(0), ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.op.String())
	}
}

func TestLookup(t *testing.T) {
	code, ok := Lookup("JUMP_IF_TRUE_KEEP")
	require.True(t, ok)
	require.Equal(t, JumpIfTrueKeep, code)
	_, ok = Lookup("LOAD_FAST")
	require.False(t, ok)
}

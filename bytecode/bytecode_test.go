package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zlang-io/zlang/op"
)

func addFunction() *Function {
	return NewFunction(FunctionParams{
		Name:      "add",
		Arity:     2,
		FrameSize: 2,
		Instructions: []Instruction{
			{Op: op.Reserve, Operand: Count(2)},
			{Op: op.LoadSlot, Operand: Slot(0)},
			{Op: op.LoadSlot, Operand: Slot(1)},
			{Op: op.Operate, Operand: Op(op.Add)},
			{Op: op.ReturnValue},
			{Op: op.ReturnVoid},
		},
		LocalNames: []string{"a", "b"},
	})
}

func TestOperandLiteral(t *testing.T) {
	tests := []struct {
		input    any
		kind     OperandKind
		expected string
	}{
		{int64(42), KindInt, "42"},
		{1.5, KindFloat, "1.5"},
		{true, KindBool, "true"},
		{'x', KindChar, "'x'"},
		{"hi", KindText, `"hi"`},
		{nil, KindNull, "null"},
	}
	for _, tt := range tests {
		o, err := Literal(tt.input)
		require.NoError(t, err)
		require.Equal(t, tt.kind, o.Kind())
		require.True(t, o.Kind().IsLiteral())
		require.Equal(t, tt.expected, o.String())
	}
	_, err := Literal(struct{}{})
	require.Error(t, err)
}

func TestOperandAccessors(t *testing.T) {
	require.Equal(t, 3, Slot(3).Slot())
	require.Equal(t, 7, Target(7).Target())
	require.Equal(t, op.Less, Op(op.Less).Operator())
	require.Equal(t, "print", Func("print").Function())
	require.Equal(t, 'z', Char('z').Char())
	require.False(t, Bool(false).Bool())
	require.Equal(t, int64(9), Int(9).Value())
	require.Nil(t, Null().Value())
	require.Equal(t, None(), Operand{})
	require.NotEqual(t, Slot(1), Target(1))
	require.Equal(t, "-> 4", Target(4).String())
	require.Equal(t, "slot 0", Slot(0).String())
}

func TestInstructionString(t *testing.T) {
	require.Equal(t, "RETURN_VOID", Instruction{Op: op.ReturnVoid}.String())
	require.Equal(t, "OPERATE +", Instruction{Op: op.Operate, Operand: Op(op.Add)}.String())
	require.Equal(t, "CALL f", Instruction{Op: op.Call, Operand: Func("f")}.String())
}

func TestFunctionImmutable(t *testing.T) {
	instrs := []Instruction{{Op: op.Reserve, Operand: Count(0)}, {Op: op.ReturnVoid}}
	fn := NewFunction(FunctionParams{Name: "f", Instructions: instrs})
	instrs[1] = Instruction{Op: op.Jump, Operand: Target(0)}
	require.Equal(t, op.ReturnVoid, fn.Instruction(1).Op)

	copied := fn.Instructions()
	copied[0] = Instruction{}
	require.Equal(t, op.Reserve, fn.Instruction(0).Op)
	require.Equal(t, "f/0", fn.Key())
	require.Equal(t, "", fn.LocalName(0))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(addFunction()))

	tests := []struct {
		name   string
		instrs []Instruction
		frame  int
		errMsg string
	}{
		{
			name:   "empty",
			errMsg: "f/0: no instructions",
		},
		{
			name:   "no return",
			instrs: []Instruction{{Op: op.Reserve, Operand: Count(0)}},
			errMsg: "f/0: last instruction is RESERVE, not a return",
		},
		{
			name: "jump out of range",
			instrs: []Instruction{
				{Op: op.Reserve, Operand: Count(0)},
				{Op: op.Jump, Operand: Target(3)},
				{Op: op.ReturnVoid},
			},
			errMsg: "f/0: JUMP at 1 jumps to 3, outside [0,3)",
		},
		{
			name: "slot outside frame",
			instrs: []Instruction{
				{Op: op.Reserve, Operand: Count(1)},
				{Op: op.LoadSlot, Operand: Slot(1)},
				{Op: op.ReturnValue},
			},
			frame:  1,
			errMsg: "f/0: LOAD_SLOT at 1 uses slot 1, frame size is 1",
		},
		{
			name: "reserve mismatch",
			instrs: []Instruction{
				{Op: op.Reserve, Operand: Count(0)},
				{Op: op.ReturnVoid},
			},
			frame:  2,
			errMsg: "f/0: RESERVE at 0 does not match frame size 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := NewFunction(FunctionParams{Name: "f", FrameSize: tt.frame, Instructions: tt.instrs})
			err := Validate(fn)
			require.Error(t, err)
			require.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestImageJSON(t *testing.T) {
	img := &Image{
		BuildID:  "b1",
		Source:   "main.z",
		Compiler: "dev",
		Functions: []*Function{
			addFunction(),
			NewFunction(FunctionParams{
				Name:      "greet",
				FrameSize: 0,
				Instructions: []Instruction{
					{Op: op.Reserve, Operand: Count(0)},
					{Op: op.PushLiteral, Operand: Text("hi")},
					{Op: op.PushLiteral, Operand: Float(2.5)},
					{Op: op.PushLiteral, Operand: Null()},
					{Op: op.PushLiteral, Operand: Bool(true)},
					{Op: op.PushLiteral, Operand: Count(4)},
					{Op: op.CallDiscard, Operand: Func("print")},
					{Op: op.ReturnVoid},
				},
			}),
		},
	}
	data, err := Marshal(img)
	require.NoError(t, err)
	require.Contains(t, string(data), `"op":"LOAD_SLOT"`)

	loaded, err := Unmarshal(data)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())
	require.Equal(t, "b1", loaded.BuildID)

	greet, ok := loaded.Function("greet", 0)
	require.True(t, ok)
	require.Equal(t, img.Functions[1].Instructions(), greet.Instructions())
	add, ok := loaded.Function("add", 2)
	require.True(t, ok)
	require.Equal(t, "b", add.LocalName(1))
}

func TestImageCBORDeterministic(t *testing.T) {
	img := &Image{BuildID: "b2", Functions: []*Function{addFunction()}}
	a, err := MarshalCBOR(img)
	require.NoError(t, err)
	b, err := MarshalCBOR(&Image{BuildID: "b2", Functions: []*Function{addFunction()}})
	require.NoError(t, err)
	require.Equal(t, a, b)

	loaded, err := UnmarshalCBOR(a)
	require.NoError(t, err)
	fn, ok := loaded.Function("add", 2)
	require.True(t, ok)
	require.Equal(t, addFunction().Instructions(), fn.Instructions())
	require.Equal(t, 2, fn.FrameSize())

	_, err = UnmarshalCBOR([]byte{0xff})
	require.Error(t, err)
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":9,"functions":[]}`))
	require.EqualError(t, err, "unsupported image version 9")

	_, err = Unmarshal([]byte(`{"version":1,"functions":[{"name":"f","arity":0,"instructions":[{"op":"LOAD_FAST"}]}]}`))
	require.EqualError(t, err, `f/0: unknown opcode "LOAD_FAST" at 0`)

	_, err = Unmarshal([]byte(`{"version":1,"functions":[{"name":"f","arity":0,"instructions":[{"op":"JUMP","operand":{"kind":"label"}}]}]}`))
	require.EqualError(t, err, `f/0: instruction 0: unknown operand kind "label"`)
}

func TestImageValidateAggregates(t *testing.T) {
	bad := NewFunction(FunctionParams{Name: "bad"})
	img := &Image{Functions: []*Function{addFunction(), addFunction(), bad}}
	err := img.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "add/2: duplicate function")
	require.Contains(t, err.Error(), "bad/0: no instructions")
}

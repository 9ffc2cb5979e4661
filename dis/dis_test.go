package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/compiler"
	"github.com/zlang-io/zlang/library"
	"github.com/zlang-io/zlang/op"
)

func disableColor(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func compileFunction(t *testing.T, source, name string, arity int) *bytecode.Function {
	t.Helper()
	lib := library.New(source, library.WithNatives(library.Builtins()...))
	_, err := compiler.CompileRegistry(lib)
	require.NoError(t, err)
	fn, ok := lib.Function(name, arity)
	require.True(t, ok)
	return fn
}

func TestFunctionDisassembly(t *testing.T) {
	disableColor(t)
	src := `
	function countdown(a) {
		while (a > 0) {
			a = a - 1;
		}
		return "done";
	}`
	fn := compileFunction(t, src, "countdown", 1)

	var buf bytes.Buffer
	require.NoError(t, Print(Disassemble(fn), &buf))

	expected := strings.TrimSpace(`
+--------+---------------+----------+--------+
| OFFSET |    OPCODE     | OPERANDS |  INFO  |
+--------+---------------+----------+--------+
|      0 | RESERVE       |        1 |        |
|      1 | LOAD_SLOT     |        0 | a      |
|      2 | PUSH_LITERAL  |          | 0      |
|      3 | OPERATE       |          | >      |
|      4 | JUMP_IF_FALSE |       10 |        |
|      5 | LOAD_SLOT     |        0 | a      |
|      6 | PUSH_LITERAL  |          | 1      |
|      7 | OPERATE       |          | -      |
|      8 | STORE_SLOT    |        0 | a      |
|      9 | JUMP          |        1 | loop   |
|     10 | PUSH_LITERAL  |          | "done" |
|     11 | RETURN_VALUE  |          |        |
|     12 | RETURN_VOID   |          |        |
+--------+---------------+----------+--------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestDisassembleCalls(t *testing.T) {
	fn := compileFunction(t, `function main() { print('x', null, true); }`, "main", 0)
	instructions := Disassemble(fn)

	var call Instruction
	var literals []any
	for _, instr := range instructions {
		if instr.IsLiteral {
			literals = append(literals, instr.Literal)
		}
		if instr.Opcode == op.CallDiscard {
			call = instr
		}
	}
	require.Equal(t, "CALL_DISCARD", call.Name)
	require.Equal(t, "print", call.Annotation)
	require.Equal(t, []any{'x', nil, true, int64(3)}, literals)
}

func TestPrintFunction(t *testing.T) {
	disableColor(t)
	fn := compileFunction(t, `function f() { }`, "f", 0)
	var buf bytes.Buffer
	require.NoError(t, PrintFunction(fn, &buf))
	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "function f/0 (frame size 0)", lines[0])
	require.Contains(t, buf.String(), "RETURN_VOID")
}

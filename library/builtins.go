package library

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Builtins returns the default natives: print, len, array and str.
func Builtins() []NativeFunction {
	return []NativeFunction{
		Print(os.Stdout),
		NewNative("len", 1, Len),
		NewVarArgsNative("array", Array),
		NewNative("str", 1, Str),
	}
}

// Print returns a variable-argument "print" native writing its arguments,
// separated by spaces, as one line to w.
func Print(w io.Writer) NativeFunction {
	return NewVarArgsNative("print", func(args []any) (any, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = format(arg)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return nil, fmt.Errorf("print: %w", err)
		}
		return nil, nil
	})
}

// Len returns the length of a string in characters, or of an array.
func Len(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len: expected 1 argument, got %d", len(args))
	}
	switch arg := args[0].(type) {
	case string:
		return int64(utf8.RuneCountInString(arg)), nil
	case []any:
		return int64(len(arg)), nil
	default:
		return nil, fmt.Errorf("type error: len() unsupported argument (%s given)", typeName(arg))
	}
}

// Array allocates a multi-dimensional array of nulls. Each argument is the
// size of one dimension.
func Array(args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("array: expected at least 1 argument, got 0")
	}
	dims := make([]int, len(args))
	for i, arg := range args {
		n, ok := arg.(int64)
		if !ok {
			return nil, fmt.Errorf("type error: array() dimension %d must be an int (%s given)", i+1, typeName(arg))
		}
		if n < 0 {
			return nil, fmt.Errorf("value error: array() dimension %d is negative", i+1)
		}
		dims[i] = int(n)
	}
	return allocate(dims), nil
}

func allocate(dims []int) []any {
	arr := make([]any, dims[0])
	if len(dims) > 1 {
		for i := range arr {
			arr[i] = allocate(dims[1:])
		}
	}
	return arr
}

// Str converts a value to its string form.
func Str(args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str: expected 1 argument, got %d", len(args))
	}
	return format(args[0]), nil
}

func format(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case rune:
		return string(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = format(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case int64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case rune:
		return "char"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

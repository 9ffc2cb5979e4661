package library

import "fmt"

// NativeFunction is a function implemented by the host program and callable
// from zlang code.
type NativeFunction interface {
	// IsVarArgs reports whether the function accepts any number of
	// arguments. ParameterCount is ignored when it does.
	IsVarArgs() bool

	ParameterCount() int

	Name() string

	// Call invokes the function with arguments in source order.
	Call(args []any) (any, error)
}

// NativeFunc is the Go signature backing a NativeFunction.
type NativeFunc func(args []any) (any, error)

type native struct {
	name    string
	arity   int
	varArgs bool
	fn      NativeFunc
}

// NewNative returns a native function taking exactly arity arguments.
func NewNative(name string, arity int, fn NativeFunc) NativeFunction {
	return &native{name: name, arity: arity, fn: fn}
}

// NewVarArgsNative returns a native function taking any number of arguments.
func NewVarArgsNative(name string, fn NativeFunc) NativeFunction {
	return &native{name: name, varArgs: true, fn: fn}
}

func (n *native) IsVarArgs() bool     { return n.varArgs }
func (n *native) ParameterCount() int { return n.arity }
func (n *native) Name() string        { return n.name }

func (n *native) Call(args []any) (any, error) {
	if !n.varArgs && len(args) != n.arity {
		return nil, fmt.Errorf("%s: expected %d %s, got %d",
			n.name, n.arity, plural(n.arity, "argument"), len(args))
	}
	return n.fn(args)
}

func (n *native) String() string {
	if n.varArgs {
		return fmt.Sprintf("native %s/...", n.name)
	}
	return fmt.Sprintf("native %s/%d", n.name, n.arity)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

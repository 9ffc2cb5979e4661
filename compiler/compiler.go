// Package compiler turns zlang source text into bytecode in a single pass.
//
// There is no syntax tree. The recursive-descent parser pulls tokens from the
// lexer one at a time and emits instructions as soon as each construct is
// recognized. Jumps whose targets are not known yet are emitted with a
// placeholder operand and patched once the target is reached:
//
//   - if/else patches its conditional jump past the then-branch, or past the
//     extra jump that skips the else-branch
//   - && and || chains patch every short-circuit jump to the instruction
//     following the last operator of the chain
//   - break and continue jumps are collected per loop and patched when the
//     loop is finished
//
// # Function Calls
//
// Calls are resolved by name and argument count. A call may reference a
// function defined later in the same program, so call sites are only
// recorded while compiling. Once every function has compiled, each recorded
// call must match a function of this program or a function already known to
// the registry (compiled earlier or native).
//
// # Committing
//
// By default compiled functions are handed to the registry only after the
// whole program, including call validation, has succeeded. A failed
// compilation leaves the registry untouched. WithPartialCommit registers each
// function as soon as it compiles instead.
package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/lexer"
	"github.com/zlang-io/zlang/internal/token"
	"github.com/zlang-io/zlang/library"
	"github.com/zlang-io/zlang/op"
)

// Dependency is a call site recorded during compilation, identified by the
// callee name and argument count. Pos is the first call site.
type Dependency struct {
	Name  string
	Arity int
	Pos   token.Position
}

// Key returns the registry key of the callee, e.g. "print/1".
func (d Dependency) Key() string {
	return bytecode.FunctionKey(d.Name, d.Arity)
}

// Result describes a successful compilation.
type Result struct {
	// Functions in source order.
	Functions []*bytecode.Function

	// Dependencies in the order their first call site appeared.
	Dependencies []Dependency
}

// Compiler compiles zlang programs into a registry. A Compiler is not safe
// for concurrent use; it may be reused for several programs in sequence.
type Compiler struct {
	registry      library.Registry
	filename      string
	logger        zerolog.Logger
	partialCommit bool

	// Program state, reset by Compile
	source       string
	lexer        *lexer.Lexer
	tok          token.Token
	functions    []*bytecode.Function
	defined      map[string]token.Position
	dependencies []Dependency
	depIndex     map[string]int

	// The function being compiled
	current *code
}

// New returns a Compiler that registers functions into registry.
func New(registry library.Registry, opts ...Option) *Compiler {
	cfg := &config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Compiler{
		registry:      registry,
		filename:      cfg.filename,
		logger:        cfg.logger,
		partialCommit: cfg.partialCommit,
	}
}

// Compile compiles source into registry.
func Compile(registry library.Registry, source string, opts ...Option) (*Result, error) {
	return New(registry, opts...).Compile(source)
}

// CompileRegistry compiles the source text held by the registry itself.
func CompileRegistry(registry library.Registry, opts ...Option) (*Result, error) {
	return New(registry, opts...).Compile(registry.SourceText())
}

// Compile compiles every function in source. Compilation stops at the first
// error, which is an *errors.CompileError for any problem in the source.
func (c *Compiler) Compile(source string) (*Result, error) {
	c.source = source
	c.lexer = lexer.New(source)
	c.functions = nil
	c.defined = map[string]token.Position{}
	c.dependencies = nil
	c.depIndex = map[string]int{}
	c.current = nil

	if err := c.next(); err != nil {
		return nil, err
	}
	for {
		fn, err := c.compileFunction()
		if err != nil {
			return nil, err
		}
		c.functions = append(c.functions, fn)
		if c.partialCommit {
			if err := c.register(fn); err != nil {
				return nil, err
			}
		}
		if c.tok.Type == token.END {
			break
		}
		if c.tok.Type != token.FUNCTION {
			return nil, c.errorAt(errors.MissingSymbol, c.tok.Pos, "function")
		}
	}
	if err := c.checkDependencies(); err != nil {
		return nil, err
	}
	if !c.partialCommit {
		for _, fn := range c.functions {
			if err := c.register(fn); err != nil {
				return nil, err
			}
		}
	}
	c.logger.Debug().
		Str("filename", c.filename).
		Int("functions", len(c.functions)).
		Int("dependencies", len(c.dependencies)).
		Msg("compiled program")

	functions := make([]*bytecode.Function, len(c.functions))
	copy(functions, c.functions)
	dependencies := make([]Dependency, len(c.dependencies))
	copy(dependencies, c.dependencies)
	return &Result{Functions: functions, Dependencies: dependencies}, nil
}

func (c *Compiler) register(fn *bytecode.Function) error {
	if err := c.registry.Register(fn); err != nil {
		return fmt.Errorf("registering %s: %w", fn.Key(), err)
	}
	return nil
}

// compileFunction compiles "function name ( params ) { body }".
func (c *Compiler) compileFunction() (*bytecode.Function, error) {
	if err := c.expect(token.FUNCTION, "function"); err != nil {
		return nil, err
	}
	if c.tok.Type != token.IDENT {
		return nil, c.errorAt(errors.IllegalSymbol, c.tok.Pos, c.tok.String())
	}
	name, namePos := c.tok.Ident(), c.tok.Pos
	c.current = newCode(name)
	if err := c.next(); err != nil {
		return nil, err
	}
	if err := c.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	if err := c.compileParameters(); err != nil {
		return nil, err
	}

	key := bytecode.FunctionKey(name, c.current.arity)
	if _, ok := c.defined[key]; ok {
		return nil, c.errorAt(errors.SemanticError, namePos,
			fmt.Sprintf("function '%s' is defined more than once", key))
	}
	c.defined[key] = namePos

	reserve := c.current.emit(op.Reserve, placeholder)
	if c.tok.Type != token.LBRACE {
		return nil, c.errorAt(errors.MissingSymbol, c.tok.Pos, "{")
	}
	if err := c.compileBlock(false); err != nil {
		return nil, err
	}
	c.current.emit(op.ReturnVoid, bytecode.None())
	c.current.changeOperand(reserve, bytecode.Count(c.current.symbols.Count()))
	if c.current.breaks.depth() != 0 || c.current.continues.depth() != 0 {
		return nil, fmt.Errorf("internal compiler error: %s: loop scopes left open", key)
	}

	fn := c.current.toFunction()
	if err := bytecode.Validate(fn); err != nil {
		return nil, fmt.Errorf("internal compiler error: %w", err)
	}
	c.logger.Debug().
		Str("function", fn.Key()).
		Int("frame_size", fn.FrameSize()).
		Int("instructions", fn.InstructionCount()).
		Msg("compiled function")
	return fn, nil
}

// compileParameters reads the parameter list after "(" through ")". Each
// parameter takes the next slot.
func (c *Compiler) compileParameters() error {
	for c.tok.Type != token.RPAREN {
		if c.tok.Type != token.IDENT {
			return c.errorAt(errors.IllegalSymbol, c.tok.Pos, c.tok.String())
		}
		name := c.tok.Ident()
		if _, isNew := c.current.symbols.Insert(name); !isNew {
			return c.errorAt(errors.SemanticError, c.tok.Pos,
				fmt.Sprintf("duplicate parameter '%s'", name))
		}
		c.current.arity++
		if err := c.next(); err != nil {
			return err
		}
		switch c.tok.Type {
		case token.COMMA:
			if err := c.next(); err != nil {
				return err
			}
		case token.RPAREN:
		default:
			return c.errorAt(errors.MissingSymbol, c.tok.Pos, ") or ,")
		}
	}
	return c.next()
}

// depend records a call site. Only the first site of each name and arity is
// kept.
func (c *Compiler) depend(name string, arity int, pos token.Position) {
	key := bytecode.FunctionKey(name, arity)
	if _, ok := c.depIndex[key]; ok {
		return
	}
	c.depIndex[key] = len(c.dependencies)
	c.dependencies = append(c.dependencies, Dependency{Name: name, Arity: arity, Pos: pos})
}

func (c *Compiler) checkDependencies() error {
	for _, dep := range c.dependencies {
		if _, ok := c.defined[dep.Key()]; ok {
			continue
		}
		if c.registry.HasFunction(dep.Name, dep.Arity) {
			continue
		}
		err := c.newError(errors.UndefinedFunction, dep.Pos, dep.Key())
		err.Suggestions = errors.SuggestSimilar(dep.Name, c.knownFunctionNames())
		if defined := c.definedArities(dep.Name); len(defined) > 0 {
			err.Note = fmt.Sprintf("%s is defined as %s", dep.Name, strings.Join(defined, ", "))
		}
		return err
	}
	return nil
}

// definedArities lists the keys of program functions named name.
func (c *Compiler) definedArities(name string) []string {
	var keys []string
	for _, fn := range c.functions {
		if fn.Name() == name {
			keys = append(keys, fn.Key())
		}
	}
	return keys
}

// knownFunctionNames lists the function names visible to this program, for
// suggestions.
func (c *Compiler) knownFunctionNames() []string {
	seen := map[string]bool{}
	for _, fn := range c.functions {
		seen[fn.Name()] = true
	}
	if lister, ok := c.registry.(interface{ Names() []string }); ok {
		for _, name := range lister.Names() {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// next advances to the next token.
func (c *Compiler) next() error {
	tok, err := c.lexer.Next()
	if err != nil {
		if compileErr, ok := err.(*errors.CompileError); ok {
			return compileErr.WithSource(c.filename, c.source)
		}
		return err
	}
	c.tok = tok
	return nil
}

// expect consumes a token of the given type or fails with MissingSymbol.
func (c *Compiler) expect(typ token.Type, symbol string) error {
	if c.tok.Type != typ {
		return c.errorAt(errors.MissingSymbol, c.tok.Pos, symbol)
	}
	return c.next()
}

func (c *Compiler) newError(kind errors.Kind, pos token.Position, detail string) *errors.CompileError {
	return errors.New(kind, pos.Line, pos.Column, detail).WithSource(c.filename, c.source)
}

func (c *Compiler) errorAt(kind errors.Kind, pos token.Position, detail string) error {
	return c.newError(kind, pos, detail)
}

// uninitialized reports use of a name that has no slot, suggesting similar
// names from the current function.
func (c *Compiler) uninitialized(kind errors.Kind, name string, pos token.Position) error {
	err := c.newError(kind, pos, name)
	err.Suggestions = errors.SuggestSimilar(name, c.current.symbols.Names())
	return err
}

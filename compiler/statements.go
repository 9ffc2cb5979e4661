package compiler

import (
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/token"
	"github.com/zlang-io/zlang/op"
)

// startsStatement reports whether a statement may begin with the token type.
func startsStatement(typ token.Type) bool {
	switch typ {
	case token.SEMICOLON, token.IDENT, token.LBRACE, token.IF, token.WHILE,
		token.FOR, token.BREAK, token.CONTINUE, token.RETURN:
		return true
	}
	return false
}

// compileStatement compiles one statement. inLoop controls whether break and
// continue are accepted.
func (c *Compiler) compileStatement(inLoop bool) error {
	switch c.tok.Type {
	case token.SEMICOLON:
		return c.next()
	case token.IDENT:
		return c.compileIdentStatement()
	case token.LBRACE:
		return c.compileBlock(inLoop)
	case token.IF:
		return c.compileIf(inLoop)
	case token.WHILE:
		return c.compileWhile()
	case token.FOR:
		return c.compileFor()
	case token.BREAK:
		return c.compileBreak(inLoop)
	case token.CONTINUE:
		return c.compileContinue(inLoop)
	case token.RETURN:
		return c.compileReturn()
	default:
		return c.errorAt(errors.IllegalSymbol, c.tok.Pos, c.tok.String())
	}
}

// compileBlock compiles "{ stmt* }".
func (c *Compiler) compileBlock(inLoop bool) error {
	if err := c.next(); err != nil {
		return err
	}
	for startsStatement(c.tok.Type) {
		if err := c.compileStatement(inLoop); err != nil {
			return err
		}
	}
	return c.expect(token.RBRACE, "}")
}

// compileIdentStatement compiles an assignment, an array element assignment
// or a call whose result is discarded.
func (c *Compiler) compileIdentStatement() error {
	name, pos := c.tok.Ident(), c.tok.Pos
	if err := c.next(); err != nil {
		return err
	}
	switch c.tok.Type {
	case token.ASSIGN:
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileDisjunction(); err != nil {
			return err
		}
		// The slot is allocated after the right-hand side so that "x = x"
		// still reports x as uninitialized.
		slot, _ := c.current.symbols.Insert(name)
		c.current.emit(op.StoreSlot, bytecode.Slot(slot))
	case token.LPAREN:
		argc, err := c.compileArguments()
		if err != nil {
			return err
		}
		c.current.emit(op.CallDiscard, bytecode.Func(name))
		c.depend(name, argc, pos)
	case token.LBRACKET:
		slot, ok := c.current.symbols.Resolve(name)
		if !ok {
			return c.uninitialized(errors.UninitializedArray, name, pos)
		}
		dims, err := c.compileIndices()
		if err != nil {
			return err
		}
		c.current.emit(op.PushLiteral, bytecode.Count(dims))
		if err := c.expect(token.ASSIGN, "="); err != nil {
			return err
		}
		if err := c.compileDisjunction(); err != nil {
			return err
		}
		c.current.emit(op.StoreElement, bytecode.Slot(slot))
	default:
		return c.errorAt(errors.MissingSymbol, c.tok.Pos, "= or (")
	}
	return c.expect(token.SEMICOLON, ";")
}

// compileCondition compiles "( expr )".
func (c *Compiler) compileCondition() error {
	if err := c.expect(token.LPAREN, "("); err != nil {
		return err
	}
	if err := c.compileDisjunction(); err != nil {
		return err
	}
	return c.expect(token.RPAREN, ")")
}

func (c *Compiler) compileIf(inLoop bool) error {
	if err := c.next(); err != nil {
		return err
	}
	if err := c.compileCondition(); err != nil {
		return err
	}
	jumpIfFalse := c.current.emit(op.JumpIfFalse, placeholder)
	if err := c.compileStatement(inLoop); err != nil {
		return err
	}
	if c.tok.Type != token.ELSE {
		c.current.patchJump(jumpIfFalse, c.current.position())
		return nil
	}
	jumpOverElse := c.current.emit(op.Jump, placeholder)
	c.current.patchJump(jumpIfFalse, c.current.position())
	if err := c.next(); err != nil {
		return err
	}
	if err := c.compileStatement(inLoop); err != nil {
		return err
	}
	c.current.patchJump(jumpOverElse, c.current.position())
	return nil
}

// compileWhile compiles "while ( cond ) stmt":
//
//	top:  <cond>; JumpIfFalse exit
//	      <stmt>; Jump top
//	exit:
//
// continue jumps to top and break jumps to exit.
func (c *Compiler) compileWhile() error {
	top := c.current.position()
	if err := c.next(); err != nil {
		return err
	}
	if err := c.compileCondition(); err != nil {
		return err
	}
	exitJump := c.current.emit(op.JumpIfFalse, placeholder)
	c.current.breaks.push()
	c.current.continues.push()
	if err := c.compileStatement(true); err != nil {
		return err
	}
	c.current.emit(op.Jump, bytecode.Target(top))
	exit := c.current.position()
	c.current.patchJump(exitJump, exit)
	c.current.breaks.patch(c.current, exit)
	c.current.breaks.pop()
	c.current.continues.patch(c.current, top)
	c.current.continues.pop()
	return nil
}

// compileFor compiles "for id = start to end step delta stmt":
//
//	      <start>; StoreSlot id
//	top:  <end>; LoadSlot id; Operate >=; JumpIfFalse exit; Jump body
//	step: <delta>; LoadSlot id; Operate +; StoreSlot id; Jump top
//	body: <stmt>; Jump step
//	exit:
//
// continue jumps to step so the increment runs before the next test, and
// break jumps to exit.
func (c *Compiler) compileFor() error {
	if err := c.next(); err != nil {
		return err
	}
	if c.tok.Type != token.IDENT {
		return c.errorAt(errors.IllegalSymbol, c.tok.Pos, c.tok.String())
	}
	name := c.tok.Ident()
	if err := c.next(); err != nil {
		return err
	}
	if err := c.expect(token.ASSIGN, "="); err != nil {
		return err
	}
	if err := c.compileNumeric(); err != nil {
		return err
	}
	slot, _ := c.current.symbols.Insert(name)
	c.current.emit(op.StoreSlot, bytecode.Slot(slot))

	top := c.current.position()
	if err := c.expect(token.TO, "to"); err != nil {
		return err
	}
	if err := c.compileNumeric(); err != nil {
		return err
	}
	c.current.emit(op.LoadSlot, bytecode.Slot(slot))
	c.current.emit(op.Operate, bytecode.Op(op.GreaterEqual))
	exitJump := c.current.emit(op.JumpIfFalse, placeholder)
	bodyJump := c.current.emit(op.Jump, placeholder)

	step := c.current.position()
	if err := c.expect(token.STEP, "step"); err != nil {
		return err
	}
	if err := c.compileNumeric(); err != nil {
		return err
	}
	c.current.emit(op.LoadSlot, bytecode.Slot(slot))
	c.current.emit(op.Operate, bytecode.Op(op.Add))
	c.current.emit(op.StoreSlot, bytecode.Slot(slot))
	c.current.emit(op.Jump, bytecode.Target(top))

	c.current.patchJump(bodyJump, c.current.position())
	c.current.breaks.push()
	c.current.continues.push()
	if err := c.compileStatement(true); err != nil {
		return err
	}
	c.current.emit(op.Jump, bytecode.Target(step))
	exit := c.current.position()
	c.current.patchJump(exitJump, exit)
	c.current.breaks.patch(c.current, exit)
	c.current.breaks.pop()
	c.current.continues.patch(c.current, step)
	c.current.continues.pop()
	return nil
}

func (c *Compiler) compileBreak(inLoop bool) error {
	if !inLoop {
		return c.errorAt(errors.SemanticError, c.tok.Pos, "'break' appears outside a loop")
	}
	c.current.breaks.record(c.current.emit(op.Jump, placeholder))
	if err := c.next(); err != nil {
		return err
	}
	return c.expect(token.SEMICOLON, ";")
}

func (c *Compiler) compileContinue(inLoop bool) error {
	if !inLoop {
		return c.errorAt(errors.SemanticError, c.tok.Pos, "'continue' appears outside a loop")
	}
	c.current.continues.record(c.current.emit(op.Jump, placeholder))
	if err := c.next(); err != nil {
		return err
	}
	return c.expect(token.SEMICOLON, ";")
}

func (c *Compiler) compileReturn() error {
	if err := c.next(); err != nil {
		return err
	}
	if c.tok.Type == token.SEMICOLON {
		c.current.emit(op.ReturnVoid, bytecode.None())
	} else {
		if err := c.compileDisjunction(); err != nil {
			return err
		}
		c.current.emit(op.ReturnValue, bytecode.None())
	}
	return c.expect(token.SEMICOLON, ";")
}

package compiler

import (
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/token"
	"github.com/zlang-io/zlang/op"
)

var relationalOperators = map[token.Type]op.Operator{
	token.EQ:        op.Equal,
	token.NOT_EQ:    op.NotEqual,
	token.LT:        op.Less,
	token.LT_EQUALS: op.LessEqual,
	token.GT:        op.Greater,
	token.GT_EQUALS: op.GreaterEqual,
}

// compileDisjunction compiles "a || b || ...". Every short-circuit jump lands
// on the instruction after the last Or.
func (c *Compiler) compileDisjunction() error {
	if err := c.compileConjunction(); err != nil {
		return err
	}
	var exits []int
	for c.tok.Type == token.OR {
		exits = append(exits, c.current.emit(op.JumpIfTrueKeep, placeholder))
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileConjunction(); err != nil {
			return err
		}
		c.current.emit(op.Operate, bytecode.Op(op.Or))
	}
	end := c.current.position()
	for _, index := range exits {
		c.current.patchJump(index, end)
	}
	return nil
}

// compileConjunction compiles "a && b && ...". Every short-circuit jump lands
// on the instruction after the last And.
func (c *Compiler) compileConjunction() error {
	if err := c.compileComparison(); err != nil {
		return err
	}
	var exits []int
	for c.tok.Type == token.AND {
		exits = append(exits, c.current.emit(op.JumpIfFalseKeep, placeholder))
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileComparison(); err != nil {
			return err
		}
		c.current.emit(op.Operate, bytecode.Op(op.And))
	}
	end := c.current.position()
	for _, index := range exits {
		c.current.patchJump(index, end)
	}
	return nil
}

// compileComparison compiles at most one relational operator between two
// numeric expressions. Comparisons do not chain.
func (c *Compiler) compileComparison() error {
	if err := c.compileNumeric(); err != nil {
		return err
	}
	if !c.tok.Type.IsRelational() {
		return nil
	}
	operator := relationalOperators[c.tok.Type]
	if err := c.next(); err != nil {
		return err
	}
	if err := c.compileNumeric(); err != nil {
		return err
	}
	c.current.emit(op.Operate, bytecode.Op(operator))
	return nil
}

// compileNumeric compiles an optionally signed sum of terms.
func (c *Compiler) compileNumeric() error {
	switch c.tok.Type {
	case token.PLUS, token.MINUS:
		negate := c.tok.Type == token.MINUS
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}
		if negate {
			c.current.emit(op.Operate, bytecode.Op(op.Negate))
		}
	default:
		if err := c.compileTerm(); err != nil {
			return err
		}
	}
	for c.tok.Type == token.PLUS || c.tok.Type == token.MINUS {
		operator := op.Add
		if c.tok.Type == token.MINUS {
			operator = op.Subtract
		}
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.current.emit(op.Operate, bytecode.Op(operator))
	}
	return nil
}

func (c *Compiler) compileTerm() error {
	if err := c.compileFactor(); err != nil {
		return err
	}
	for c.tok.Type == token.ASTERISK || c.tok.Type == token.SLASH {
		operator := op.Multiply
		if c.tok.Type == token.SLASH {
			operator = op.Divide
		}
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileFactor(); err != nil {
			return err
		}
		c.current.emit(op.Operate, bytecode.Op(operator))
	}
	return nil
}

func (c *Compiler) compileFactor() error {
	tok := c.tok
	switch {
	case tok.Type == token.IDENT:
		return c.compileIdentFactor()
	case tok.Type.IsLiteral():
		operand, err := bytecode.Literal(tok.Value)
		if err != nil {
			return c.errorAt(errors.IllegalSymbol, tok.Pos, tok.String())
		}
		c.current.emit(op.PushLiteral, operand)
		return c.next()
	case tok.Type == token.LPAREN:
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileDisjunction(); err != nil {
			return err
		}
		return c.expect(token.RPAREN, ")")
	case tok.Type == token.BANG:
		if err := c.next(); err != nil {
			return err
		}
		if err := c.compileFactor(); err != nil {
			return err
		}
		c.current.emit(op.Operate, bytecode.Op(op.Not))
		return nil
	default:
		return c.errorAt(errors.IllegalSymbol, tok.Pos, tok.String())
	}
}

// compileIdentFactor compiles a call, an array element load or a variable
// load.
func (c *Compiler) compileIdentFactor() error {
	name, pos := c.tok.Ident(), c.tok.Pos
	if err := c.next(); err != nil {
		return err
	}
	switch c.tok.Type {
	case token.LPAREN:
		argc, err := c.compileArguments()
		if err != nil {
			return err
		}
		c.current.emit(op.Call, bytecode.Func(name))
		c.depend(name, argc, pos)
		return nil
	case token.LBRACKET:
		slot, ok := c.current.symbols.Resolve(name)
		if !ok {
			return c.uninitialized(errors.UninitializedVariable, name, pos)
		}
		dims, err := c.compileIndices()
		if err != nil {
			return err
		}
		c.current.emit(op.PushLiteral, bytecode.Count(dims))
		c.current.emit(op.LoadElement, bytecode.Slot(slot))
		return nil
	default:
		slot, ok := c.current.symbols.Resolve(name)
		if !ok {
			return c.uninitialized(errors.UninitializedVariable, name, pos)
		}
		c.current.emit(op.LoadSlot, bytecode.Slot(slot))
		return nil
	}
}

// compileArguments compiles "( arg, ... )" followed by the argument count and
// returns the count.
func (c *Compiler) compileArguments() (int, error) {
	if err := c.next(); err != nil {
		return 0, err
	}
	argc := 0
	for c.tok.Type != token.RPAREN {
		if err := c.compileDisjunction(); err != nil {
			return 0, err
		}
		argc++
		switch c.tok.Type {
		case token.COMMA:
			if err := c.next(); err != nil {
				return 0, err
			}
		case token.RPAREN:
		default:
			return 0, c.errorAt(errors.MissingSymbol, c.tok.Pos, ") or ,")
		}
	}
	if err := c.next(); err != nil {
		return 0, err
	}
	c.current.emit(op.PushLiteral, bytecode.Count(argc))
	return argc, nil
}

// compileIndices compiles one or more "[ expr ]" and returns the number of
// dimensions.
func (c *Compiler) compileIndices() (int, error) {
	dims := 0
	for c.tok.Type == token.LBRACKET {
		if err := c.next(); err != nil {
			return 0, err
		}
		if err := c.compileNumeric(); err != nil {
			return 0, err
		}
		if err := c.expect(token.RBRACKET, "]"); err != nil {
			return 0, err
		}
		dims++
	}
	return dims, nil
}

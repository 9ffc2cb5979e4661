// Package lexer converts zlang source text into a stream of tokens, one token
// per call to Next.
package lexer

import (
	"math"
	"strings"

	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/token"
)

// endOfText is appended to every source so that scanning always stops on a
// character the language does not otherwise accept.
const endOfText = '\x00'

// Lexer scans source text one character at a time, tracking line and
// column. It is not safe for concurrent use.
type Lexer struct {
	input  []rune
	pos    int  // index of ch in input
	ch     rune // current character
	line   int
	column int
	start  token.Position // position of the token being scanned
}

// New returns a Lexer for the given source text.
func New(source string) *Lexer {
	input := []rune(source)
	input = append(input, endOfText)
	return &Lexer{
		input:  input,
		ch:     input[0],
		line:   1,
		column: 1,
	}
}

// Position returns the position of the next unread character.
func (l *Lexer) Position() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// Next scans and returns the next token. Once the end of the text is
// reached every call returns an END token.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return token.Token{}, err
	}
	l.start = l.Position()

	ch := l.ch
	switch {
	case ch == endOfText:
		return l.token(token.END, nil), nil
	case isLetter(ch):
		return l.readIdentifier()
	case isDigit(ch):
		return l.readNumber()
	case ch == '\'':
		return l.readChar()
	case ch == '"':
		return l.readString()
	}

	switch ch {
	case '<':
		return l.twoChar('=', token.LT_EQUALS, token.LT)
	case '>':
		return l.twoChar('=', token.GT_EQUALS, token.GT)
	case '=':
		return l.twoChar('=', token.EQ, token.ASSIGN)
	case '!':
		return l.twoChar('=', token.NOT_EQ, token.BANG)
	case '&':
		return l.doubled(token.AND)
	case '|':
		return l.doubled(token.OR)
	}

	if typ, ok := token.LookupChar(ch); ok {
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
		return l.token(typ, nil), nil
	}
	return token.Token{}, l.errorf(errors.IllegalSymbol, string(ch))
}

// Tokenize scans the whole source and returns every token including the
// trailing END token.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.END {
			return tokens, nil
		}
	}
}

func (l *Lexer) token(typ token.Type, value any) token.Token {
	return token.Token{Type: typ, Value: value, Pos: l.start}
}

func (l *Lexer) errorf(kind errors.Kind, detail string) *errors.CompileError {
	return errors.New(kind, l.start.Line, l.start.Column, detail)
}

// advance moves to the next character. Moving past the end of the text
// means a token or comment was left unfinished.
func (l *Lexer) advance() error {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	if l.pos >= len(l.input) {
		l.pos = len(l.input) - 1
		return l.errorf(errors.IncompleteProgram, "")
	}
	l.ch = l.input[l.pos]
	return nil
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return endOfText
	}
	return l.input[l.pos+1]
}

func (l *Lexer) skipWhitespace() error {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			if err := l.advance(); err != nil {
				return err
			}
		case l.ch == '/' && l.peek() == '*':
			if err := l.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) skipComment() error {
	l.start = l.Position()
	// Consume the opening "/*".
	if err := l.advance(); err != nil {
		return err
	}
	if err := l.advance(); err != nil {
		return err
	}
	for !(l.ch == '*' && l.peek() == '/') {
		if err := l.advance(); err != nil {
			return l.errorf(errors.IncompleteProgram, "unterminated comment")
		}
	}
	if err := l.advance(); err != nil {
		return err
	}
	return l.advance()
}

func (l *Lexer) readIdentifier() (token.Token, error) {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		sb.WriteRune(l.ch)
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
	}
	word := sb.String()
	switch typ := token.LookupIdentifier(word); typ {
	case token.IDENT:
		return l.token(typ, word), nil
	case token.BOOL:
		return l.token(typ, word == "true"), nil
	default:
		return l.token(typ, nil), nil
	}
}

func (l *Lexer) readNumber() (token.Token, error) {
	var value int64
	var sb strings.Builder
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		d := int64(l.ch - '0')
		if value > (math.MaxInt64-d)/10 {
			return token.Token{}, l.errorf(errors.IllegalSymbol, sb.String())
		}
		value = value*10 + d
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
	}
	if l.ch != '.' {
		return l.token(token.INT, value), nil
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	// The fraction is accumulated digit by digit with a shrinking scale,
	// not parsed with strconv; the two can differ in the last bit.
	result := float64(value)
	scale := 1.0
	for isDigit(l.ch) {
		scale /= 10
		result += float64(l.ch-'0') * scale
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
	}
	return l.token(token.FLOAT, result), nil
}

func (l *Lexer) readChar() (token.Token, error) {
	// Opening quote.
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	if l.ch == '\\' {
		if err := l.advance(); err != nil {
			return token.Token{}, err
		}
	}
	value := l.ch
	if err := l.advance(); err != nil {
		return token.Token{}, l.errorf(errors.IncompleteProgram, "unterminated character literal")
	}
	if l.ch != '\'' {
		if l.ch == endOfText && l.pos == len(l.input)-1 {
			return token.Token{}, l.errorf(errors.IncompleteProgram, "unterminated character literal")
		}
		return token.Token{}, l.errorf(errors.MissingSymbol, "'")
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	return l.token(token.CHAR, value), nil
}

func (l *Lexer) readString() (token.Token, error) {
	var sb strings.Builder
	// Opening quote.
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	for l.ch != '"' {
		if l.ch == '\\' {
			if err := l.advance(); err != nil {
				return token.Token{}, err
			}
		}
		if l.ch == '\n' {
			return token.Token{}, l.errorf(errors.IllegalSymbol, "\n")
		}
		sb.WriteRune(l.ch)
		if err := l.advance(); err != nil {
			return token.Token{}, l.errorf(errors.IncompleteProgram, "unterminated string literal")
		}
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	return l.token(token.STRING, sb.String()), nil
}

// twoChar scans an operator that may be followed by next to form a longer
// operator.
func (l *Lexer) twoChar(next rune, long, short token.Type) (token.Token, error) {
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	if l.ch != next {
		return l.token(short, nil), nil
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	return l.token(long, nil), nil
}

// doubled scans "&&" or "||". A single character is illegal.
func (l *Lexer) doubled(typ token.Type) (token.Token, error) {
	first := l.ch
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	if l.ch != first {
		return token.Token{}, l.errorf(errors.IllegalSymbol, string(first))
	}
	if err := l.advance(); err != nil {
		return token.Token{}, err
	}
	return l.token(typ, nil), nil
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Package token defines language keywords and tokens used when lexing source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in the input. Both fields are
// 1-indexed, matching what is reported to users.
type Position struct {
	Line   int
	Column int
}

// String returns the position in "line:column" form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}


// Token represents one token lexed from the input source code. Value holds
// the literal payload: int64 for INT, float64 for FLOAT, bool for BOOL, rune
// for CHAR, string for STRING and IDENT, and nil otherwise.
type Token struct {
	Type  Type
	Value any
	Pos   Position
}

// Token types
const (
	AND       Type = "&&"
	ASSIGN    Type = "="
	ASTERISK  Type = "*"
	BANG      Type = "!"
	BOOL      Type = "BOOL"
	BREAK     Type = "BREAK"
	CHAR      Type = "CHAR"
	COMMA     Type = ","
	CONTINUE  Type = "CONTINUE"
	ELSE      Type = "ELSE"
	END       Type = "END"
	EQ        Type = "=="
	FLOAT     Type = "FLOAT"
	FOR       Type = "FOR"
	FUNCTION  Type = "FUNCTION"
	GT        Type = ">"
	GT_EQUALS Type = ">="
	IDENT     Type = "IDENT"
	IF        Type = "IF"
	INT       Type = "INT"
	LBRACE    Type = "{"
	LBRACKET  Type = "["
	LPAREN    Type = "("
	LT        Type = "<"
	LT_EQUALS Type = "<="
	MINUS     Type = "-"
	NOT_EQ    Type = "!="
	NULL      Type = "NULL"
	OR        Type = "||"
	PLUS      Type = "+"
	RBRACE    Type = "}"
	RBRACKET  Type = "]"
	RETURN    Type = "RETURN"
	RPAREN    Type = ")"
	SEMICOLON Type = ";"
	SLASH     Type = "/"
	STEP      Type = "STEP"
	STRING    Type = "STRING"
	TO        Type = "TO"
	WHILE     Type = "WHILE"
)

// Reserved keywords. Read-only after package initialization.
var keywords = map[string]Type{
	"break":    BREAK,
	"continue": CONTINUE,
	"else":     ELSE,
	"for":      FOR,
	"function": FUNCTION,
	"if":       IF,
	"return":   RETURN,
	"step":     STEP,
	"to":       TO,
	"while":    WHILE,
}

// Literal spellings that look like identifiers.
var literals = map[string]Type{
	"true":  BOOL,
	"false": BOOL,
	"null":  NULL,
}

// Single-character punctuation and operators that need no lookahead.
var singles = map[rune]Type{
	',': COMMA,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
}

// LookupIdentifier classifies a scanned word as a keyword, a boolean or null
// literal, or a plain identifier.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	if tok, ok := literals[identifier]; ok {
		return tok
	}
	return IDENT
}

// LookupChar returns the token type for a single-character token.
func LookupChar(ch rune) (Type, bool) {
	tok, ok := singles[ch]
	return tok, ok
}

// IsKeyword reports whether the given word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for k := range keywords {
		words = append(words, k)
	}
	return words
}

// IsLiteral reports whether tokens of this type carry a constant value.
func (t Type) IsLiteral() bool {
	switch t {
	case INT, FLOAT, BOOL, CHAR, STRING, NULL:
		return true
	}
	return false
}

// IsRelational reports whether the type is one of the comparison operators.
func (t Type) IsRelational() bool {
	switch t {
	case EQ, NOT_EQ, LT, LT_EQUALS, GT, GT_EQUALS:
		return true
	}
	return false
}

// Ident returns the identifier name, or "" for other token types.
func (t Token) Ident() string {
	if t.Type != IDENT {
		return ""
	}
	s, _ := t.Value.(string)
	return s
}

// String describes the token the way it should appear in diagnostics.
func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return t.Ident()
	case INT, FLOAT, BOOL:
		return fmt.Sprintf("%v", t.Value)
	case CHAR:
		if r, ok := t.Value.(rune); ok {
			return fmt.Sprintf("%q", r)
		}
	case STRING:
		return fmt.Sprintf("%q", t.Value)
	case NULL:
		return "null"
	case END:
		return "end of program"
	}
	return string(t.Type)
}

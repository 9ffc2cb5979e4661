package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/token"
)

func TestNextToken(t *testing.T) {
	input := "<=<>=>= ==!=!&&||,;(){}[]+-*/"

	tests := []struct {
		expectedType token.Type
	}{
		{token.LT_EQUALS},
		{token.LT},
		{token.GT_EQUALS},
		{token.GT},
		{token.ASSIGN},
		{token.EQ},
		{token.NOT_EQ},
		{token.BANG},
		{token.AND},
		{token.OR},
		{token.COMMA},
		{token.SEMICOLON},
		{token.LPAREN},
		{token.RPAREN},
		{token.LBRACE},
		{token.RBRACE},
		{token.LBRACKET},
		{token.RBRACKET},
		{token.PLUS},
		{token.MINUS},
		{token.ASTERISK},
		{token.SLASH},
		{token.END},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d]", i)
		require.Nil(t, tok.Value, "tests[%d]", i)
	}
}

func TestKeywordsAndLiterals(t *testing.T) {
	input := `function if else while for to step break continue return
foo _bar9 true false null 42 3.5 7. 'c' '\'' "hi" "a\"b"`

	tests := []struct {
		expectedType  token.Type
		expectedValue any
	}{
		{token.FUNCTION, nil},
		{token.IF, nil},
		{token.ELSE, nil},
		{token.WHILE, nil},
		{token.FOR, nil},
		{token.TO, nil},
		{token.STEP, nil},
		{token.BREAK, nil},
		{token.CONTINUE, nil},
		{token.RETURN, nil},
		{token.IDENT, "foo"},
		{token.IDENT, "_bar9"},
		{token.BOOL, true},
		{token.BOOL, false},
		{token.NULL, nil},
		{token.INT, int64(42)},
		{token.FLOAT, 3.5},
		{token.FLOAT, 7.0},
		{token.CHAR, 'c'},
		{token.CHAR, '\''},
		{token.STRING, "hi"},
		{token.STRING, `a"b`},
		{token.END, nil},
	}
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d]", i)
		require.Equal(t, tt.expectedValue, tok.Value, "tests[%d]", i)
	}
}

func TestFractions(t *testing.T) {
	// Fractions accumulate d*scale with scale divided by ten per digit. These
	// results differ from strconv.ParseFloat in the last bit.
	tests := []struct {
		input    string
		expected float64
	}{
		{"0.3", 0.30000000000000004},
		{"1.7", 1.7000000000000002},
		{"0.0000001", 1.0000000000000002e-07},
		{"2.25", 2.25},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := New(tt.input).Next()
			require.NoError(t, err)
			require.Equal(t, token.FLOAT, tok.Type)
			require.Equal(t, tt.expected, tok.Value)
		})
	}
}

func TestPositions(t *testing.T) {
	input := "function f() {\n\treturn 1; /* note\n */ x\n}"
	tokens, err := Tokenize(input)
	require.NoError(t, err)

	expected := []struct {
		typ  token.Type
		line int
		col  int
	}{
		{token.FUNCTION, 1, 1},
		{token.IDENT, 1, 10},
		{token.LPAREN, 1, 11},
		{token.RPAREN, 1, 12},
		{token.LBRACE, 1, 14},
		{token.RETURN, 2, 2},
		{token.INT, 2, 9},
		{token.SEMICOLON, 2, 10},
		{token.IDENT, 3, 5},
		{token.RBRACE, 4, 1},
		{token.END, 4, 2},
	}
	require.Len(t, tokens, len(expected))
	for i, tt := range expected {
		require.Equal(t, tt.typ, tokens[i].Type, "tokens[%d]", i)
		require.Equal(t, token.Position{Line: tt.line, Column: tt.col}, tokens[i].Pos, "tokens[%d]", i)
	}
}

func TestEndIsSticky(t *testing.T) {
	l := New("  ")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, token.END, tok.Type)
	}
}

func TestEndIsNotReserved(t *testing.T) {
	tokens, err := Tokenize("END")
	require.NoError(t, err)
	require.Equal(t, token.IDENT, tokens[0].Type)
	require.Equal(t, "END", tokens[0].Value)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input  string
		kind   errors.Kind
		detail string
		line   int
		col    int
	}{
		{"a & b", errors.IllegalSymbol, "&", 1, 3},
		{"a | b", errors.IllegalSymbol, "|", 1, 3},
		{"x\n  #", errors.IllegalSymbol, "#", 2, 3},
		{"'ab'", errors.MissingSymbol, "'", 1, 1},
		{"'a", errors.IncompleteProgram, "unterminated character literal", 1, 1},
		{`"abc`, errors.IncompleteProgram, "unterminated string literal", 1, 1},
		{"\"ab\ncd\"", errors.IllegalSymbol, "\n", 1, 1},
		{"x /* never closed", errors.IncompleteProgram, "unterminated comment", 1, 3},
		{"99999999999999999999", errors.IllegalSymbol, "9999999999999999999", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			compileErr, ok := err.(*errors.CompileError)
			require.True(t, ok)
			require.Equal(t, tt.kind, compileErr.Kind)
			require.Equal(t, tt.detail, compileErr.Detail)
			require.Equal(t, tt.line, compileErr.Line)
			require.Equal(t, tt.col, compileErr.Column)
		})
	}
}

func TestTokenizeStopsAtError(t *testing.T) {
	tokens, err := Tokenize("a = 1 @")
	require.Error(t, err)
	require.Len(t, tokens, 3)
}

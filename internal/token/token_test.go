package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {
		require.Equal(t, val, LookupIdentifier(key))
		// Keywords are case sensitive
		require.Equal(t, IDENT, LookupIdentifier(strings.ToUpper(key)))
	}
	require.Equal(t, BOOL, LookupIdentifier("true"))
	require.Equal(t, BOOL, LookupIdentifier("false"))
	require.Equal(t, NULL, LookupIdentifier("null"))
	require.Equal(t, IDENT, LookupIdentifier("END"))
	require.Equal(t, IDENT, LookupIdentifier("_x1"))
}

func TestLookupChar(t *testing.T) {
	typ, ok := LookupChar(';')
	require.True(t, ok)
	require.Equal(t, SEMICOLON, typ)

	_, ok = LookupChar('&')
	require.False(t, ok)
	_, ok = LookupChar('<')
	require.False(t, ok)
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: IDENT, Value: "foo"}, "foo"},
		{Token{Type: INT, Value: int64(42)}, "42"},
		{Token{Type: STRING, Value: "hi"}, `"hi"`},
		{Token{Type: CHAR, Value: 'x'}, `'x'`},
		{Token{Type: NULL}, "null"},
		{Token{Type: SEMICOLON}, ";"},
		{Token{Type: WHILE}, "WHILE"},
		{Token{Type: END}, "end of program"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.tok.String())
	}
}

func TestPosition(t *testing.T) {
	pos := Position{Line: 3, Column: 7}
	require.Equal(t, "3:7", pos.String())
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		typ        Type
		literal    bool
		relational bool
	}{
		{INT, true, false},
		{STRING, true, false},
		{NULL, true, false},
		{EQ, false, true},
		{NOT_EQ, false, true},
		{LT_EQUALS, false, true},
		{GT, false, true},
		{ASSIGN, false, false},
		{IDENT, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			require.Equal(t, tt.literal, tt.typ.IsLiteral())
			require.Equal(t, tt.relational, tt.typ.IsRelational())
		})
	}
}

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind     Kind
		code     ErrorCode
		name     string
		category string
	}{
		{IllegalSymbol, E1001, "illegal symbol", "syntax"},
		{MissingSymbol, E1002, "missing symbol", "syntax"},
		{IncompleteProgram, E1003, "incomplete program", "syntax"},
		{UninitializedVariable, E2001, "uninitialized variable", "semantic"},
		{UninitializedArray, E2002, "uninitialized array", "semantic"},
		{SemanticError, E2003, "semantic error", "semantic"},
		{UndefinedFunction, E2004, "undefined function", "semantic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.kind.Code())
			require.Equal(t, tt.name, tt.kind.String())
			require.Equal(t, tt.category, tt.code.Category())
		})
	}
	require.Equal(t, "unknown error", Kind(99).String())
}

func TestCompileErrorMessage(t *testing.T) {
	tests := []struct {
		err      *CompileError
		expected string
	}{
		{New(MissingSymbol, 2, 5, ";"), "compile error: missing symbol \";\"\n\nlocation: 2:5 (line 2, column 5)"},
		{New(IllegalSymbol, 1, 3, "&"), "compile error: illegal symbol \"&\"\n\nlocation: 1:3 (line 1, column 3)"},
		{New(SemanticError, 4, 9, "'break' appears outside a loop"), "compile error: semantic error: 'break' appears outside a loop\n\nlocation: 4:9 (line 4, column 9)"},
		{New(IncompleteProgram, 0, 0, ""), "compile error: incomplete program"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, tt.err.Error())
	}
}

func TestWithSource(t *testing.T) {
	err := New(UninitializedVariable, 2, 12, "cout").WithSource("main.z", "function f() {\n  return 1 + cout;\n}")
	require.Equal(t, "main.z", err.Filename)
	require.Equal(t, "  return 1 + cout;", err.SourceLine)
	require.Equal(t, "compile error: uninitialized variable \"cout\"\n\nlocation: main.z:2:12 (line 2, column 12)", err.Error())
}

func TestFriendlyErrorMessage(t *testing.T) {
	err := New(UninitializedVariable, 2, 14, "cout").WithSource("main.z", "function f() {\n  return 1 + cout;\n}")
	err.Suggestions = SuggestSimilar("cout", []string{"count", "x"})
	expected := "error[E2001]: uninitialized variable \"cout\"\n" +
		"  --> main.z:2:14\n" +
		"   |\n" +
		" 2 |   return 1 + cout;\n" +
		"   |              ^\n" +
		"   |\n" +
		"   = hint: Did you mean 'count'?\n"
	require.Equal(t, expected, err.FriendlyErrorMessage())
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("compiling main.z: %w", New(UndefinedFunction, 1, 1, "g/1"))
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, UndefinedFunction, kind)

	_, ok = KindOf(fmt.Errorf("plain"))
	require.False(t, ok)
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	a := New(MissingSymbol, 1, 1, ";").ToFormatted()
	b := New(IllegalSymbol, 2, 1, "#").ToFormatted()
	out := f.FormatMultiple([]*FormattedError{a, b})
	require.Contains(t, out, "error[E1002]: missing symbol \";\"")
	require.Contains(t, out, "error[E1001]: illegal symbol \"#\"")
	require.Contains(t, out, "found 2 errors")
	require.Equal(t, "", f.FormatMultiple(nil))
}

func TestSuggestSimilar(t *testing.T) {
	suggestions := SuggestSimilar("prnt", []string{"print", "printf", "len", "print"})
	require.Len(t, suggestions, 2)
	require.Equal(t, "print", suggestions[0].Value)
	require.Equal(t, 1, suggestions[0].Distance)
	require.Equal(t, "printf", suggestions[1].Value)

	require.Nil(t, SuggestSimilar("", []string{"a"}))
	require.Empty(t, SuggestSimilar("abc", []string{"ABC"}))
	require.Equal(t, "Did you mean one of: 'a', 'b'?", FormatSuggestions([]Suggestion{{Value: "a"}, {Value: "b"}}))
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 0, editDistance("same", "same"))
	require.Equal(t, 3, editDistance("kitten", "sitting"))
	require.Equal(t, 4, editDistance("", "four"))
	require.Equal(t, 1, editDistance("ab", "b"))
}

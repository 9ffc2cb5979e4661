// Package errors defines the structured compile error reported by the zlang
// compiler, along with helpers for formatting it for humans.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// CompileError represents a compilation error with rich context. Line and
// Column are 1-based. Detail holds the expected token, the offending
// identifier or symbol, or a description of the unresolved dependency.
type CompileError struct {
	Kind        Kind
	Code        ErrorCode
	Detail      string
	Filename    string
	Line        int
	Column      int
	SourceLine  string
	Suggestions []Suggestion
	Note        string
}

// New creates a CompileError of the given kind at a position.
func New(kind Kind, line, column int, detail string) *CompileError {
	return &CompileError{
		Kind:   kind,
		Code:   kind.Code(),
		Detail: detail,
		Line:   line,
		Column: column,
	}
}

// Message returns the error message without location information.
func (e *CompileError) Message() string {
	switch e.Kind {
	case IncompleteProgram:
		if e.Detail == "" {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case SemanticError:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	default:
		return fmt.Sprintf("%s %q", e.Kind, e.Detail)
	}
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString("compile error: ")
	b.WriteString(e.Message())
	if e.Filename != "" || e.Line > 0 {
		b.WriteString("\n\nlocation: ")
		if e.Filename != "" {
			b.WriteString(e.Filename)
			b.WriteString(":")
		}
		fmt.Fprintf(&b, "%d:%d", e.Line, e.Column)
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	return b.String()
}

// FriendlyErrorMessage returns a human-friendly error message.
func (e *CompileError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts to the FormattedError type for display.
func (e *CompileError) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     e.Code,
		Kind:     "error",
		Message:  e.Message(),
		Filename: e.Filename,
		Line:     e.Line,
		Column:   e.Column,
		Note:     e.Note,
	}
	if e.SourceLine != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: e.Line, Text: e.SourceLine, IsMain: true},
		}
	}
	if len(e.Suggestions) > 0 {
		fe.Hint = FormatSuggestions(e.Suggestions)
	}
	return fe
}

// WithSource fills in the filename and the offending source line.
func (e *CompileError) WithSource(filename, source string) *CompileError {
	e.Filename = filename
	if e.Line < 1 {
		return e
	}
	lines := strings.Split(source, "\n")
	if e.Line <= len(lines) {
		e.SourceLine = strings.TrimRight(lines[e.Line-1], "\r")
	}
	return e
}

// KindOf returns the kind of the first CompileError in err's chain.
func KindOf(err error) (Kind, bool) {
	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Lexical and syntax errors
//   - E2xxx: Semantic errors
type ErrorCode string

const (
	// Lexical and syntax errors (E1xxx)
	E1001 ErrorCode = "E1001" // Illegal symbol
	E1002 ErrorCode = "E1002" // Missing symbol
	E1003 ErrorCode = "E1003" // Incomplete program

	// Semantic errors (E2xxx)
	E2001 ErrorCode = "E2001" // Uninitialized variable
	E2002 ErrorCode = "E2002" // Uninitialized array
	E2003 ErrorCode = "E2003" // Semantic error
	E2004 ErrorCode = "E2004" // Undefined function
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "illegal symbol",
	E1002: "missing symbol",
	E1003: "incomplete program",

	E2001: "uninitialized variable",
	E2002: "uninitialized array",
	E2003: "semantic error",
	E2004: "undefined function",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "syntax"
	case '2':
		return "semantic"
	default:
		return "unknown"
	}
}

// Kind identifies which class of compile failure occurred.
type Kind int

const (
	// IllegalSymbol is an unrecognized character or a token that cannot
	// start the construct being parsed.
	IllegalSymbol Kind = iota + 1
	// MissingSymbol is an expected token that is absent.
	MissingSymbol
	// IncompleteProgram means the scanner ran out of text inside a token
	// or a comment.
	IncompleteProgram
	// UninitializedVariable is a scalar read before any assignment.
	UninitializedVariable
	// UninitializedArray is an element access on an unknown identifier.
	UninitializedArray
	// SemanticError covers structural misuse such as break outside a loop.
	SemanticError
	// UndefinedFunction is a call dependency nothing in the program or
	// the host provides.
	UndefinedFunction
)

var kindCodes = map[Kind]ErrorCode{
	IllegalSymbol:         E1001,
	MissingSymbol:         E1002,
	IncompleteProgram:     E1003,
	UninitializedVariable: E2001,
	UninitializedArray:    E2002,
	SemanticError:         E2003,
	UndefinedFunction:     E2004,
}

// Code returns the error code associated with the kind.
func (k Kind) Code() ErrorCode {
	return kindCodes[k]
}

// String returns a human readable name such as "missing symbol".
func (k Kind) String() string {
	if code, ok := kindCodes[k]; ok {
		return code.Description()
	}
	return "unknown error"
}

package sample

import "errors"

// Parser rejection errors. A rejection is permanent for the parse session:
// the branch that produced it can never match the input it has seen.
var (
	// ErrLiteralMismatch is returned when input diverges from a literal.
	ErrLiteralMismatch = errors.New("input does not match literal")

	// ErrBlankLine is returned when a line parser sees a terminator before
	// any non-whitespace content, or is called with no bytes before any
	// content exists.
	ErrBlankLine = errors.New("blank line")
)

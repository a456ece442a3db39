package script

import (
	"errors"
	"fmt"
)

// ErrMalformed marks a script that cannot be parsed.
var ErrMalformed = errors.New("malformed script")

// ParseError reports a malformed instruction.
type ParseError struct {
	// Path is the script file, when known.
	Path string

	// Line is the 1-based line of the offending node.
	Line int

	// Message describes the problem.
	Message string
}

func newParseError(line int, message string) *ParseError {
	return &ParseError{Line: line, Message: message}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Unwrap returns ErrMalformed.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLiteral is returned when a data token is not a numeric
	// literal.
	ErrMalformedLiteral = errors.New("malformed numeric literal")

	// ErrUnterminated is returned in strict mode when a section reaches end
	// of file without its terminator.
	ErrUnterminated = errors.New("section not terminated")
)

// LiteralError locates a token that failed numeric parsing.
type LiteralError struct {
	Source  string
	Line    int // 1-based
	Keyword string
	Token   string
	Err     error
}

func (e *LiteralError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Source != "" {
		loc = fmt.Sprintf("%s:%d", e.Source, e.Line)
	}
	return fmt.Sprintf("%s: %s: %v", loc, e.Keyword, e.Err)
}

func (e *LiteralError) Unwrap() error {
	return e.Err
}

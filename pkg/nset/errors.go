package nset

import (
	"errors"
	"fmt"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("nset: parse error")

// ParseError describes malformed brace-grammar input.
type ParseError struct {
	// Offset is the byte offset in the input where parsing failed.
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nset: parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

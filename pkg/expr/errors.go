package expr

import (
	"errors"
	"fmt"
)

var ErrUnknownSet = errors.New("unknown set")
var ErrUnknownFunction = errors.New("unknown function")
var ErrPowersetTooLarge = errors.New("powerset too large")
var ErrReadOnlyEnv = errors.New("environment does not accept assignments")

// SyntaxError reports malformed expression text, including malformed set
// literals inside it.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

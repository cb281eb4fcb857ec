package models

import (
	"errors"
	"fmt"
)

// ErrInvalidOptionType is returned when Type is neither Call nor Put.
var ErrInvalidOptionType = errors.New("invalid option type, must be call or put")

// DegenerateInputError reports an input that would divide by zero or take
// the log of a nonpositive number inside the closed form.
type DegenerateInputError struct {
	Field string
	Value float64
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: %s = %g, must be positive", e.Field, e.Value)
}

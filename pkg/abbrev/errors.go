package abbrev

import (
	"errors"
	"fmt"
)

// ErrInvalidAbbreviation is returned when a node name contains characters that
// are not allowed in element or snippet names.
var ErrInvalidAbbreviation = errors.New("invalid abbreviation")

// InvalidAbbreviationError carries the offending token.
type InvalidAbbreviationError struct {
	Token string
	Name  string
}

func (e *InvalidAbbreviationError) Error() string {
	return fmt.Sprintf("%v: %q has invalid name %q", ErrInvalidAbbreviation, e.Token, e.Name)
}

func (e *InvalidAbbreviationError) Unwrap() error {
	return ErrInvalidAbbreviation
}

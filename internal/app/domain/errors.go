package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSearchTerm is returned when the search term fails validation.
var ErrInvalidSearchTerm = errors.New("invalid search term")

// MissingFieldError reports a record that lacks a required field.
type MissingFieldError struct {
	Field string
	Uniq  any
}

func (e *MissingFieldError) Error() string {
	if e.Uniq == nil {
		return fmt.Sprintf("record is missing field %q", e.Field)
	}
	return fmt.Sprintf("record %v is missing field %q", e.Uniq, e.Field)
}

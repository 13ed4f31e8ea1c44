package checkout

import (
	"errors"
	"strings"
)

// ErrIncompleteContact is matched by every IncompleteContactError.
var ErrIncompleteContact = errors.New("name, phone and address are required")

// IncompleteContactError names the contact fields that blocked checkout.
type IncompleteContactError struct {
	Missing []string
}

func (e *IncompleteContactError) Error() string {
	return "incomplete contact: missing " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteContactError) Unwrap() error {
	return ErrIncompleteContact
}

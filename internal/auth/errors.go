package auth

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected registration input. It is never persisted
// and never retried automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrInvalidCredentials is returned when no stored account matches the
// supplied email and password.
var ErrInvalidCredentials = errors.New("invalid email or password")

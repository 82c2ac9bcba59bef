package domain

import (
	"errors"
	"strings"
)

// Unknown-user and wrong-password failures both collapse to
// ErrInvalidCredentials so responses cannot be used to enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidationError reports every violated signup constraint, not just the
// first. It is always raised before any store access.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

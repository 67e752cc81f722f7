package auth

import (
	"errors"
)

var (
	// ErrInvalidToken is returned when a session token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid session token")
)

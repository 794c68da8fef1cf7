// Package common defines sentinel errors and small crypto/rand helpers
// shared by the client and server layers of gophtasks. Callers match the
// sentinels with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrorEmailExists = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorInvalidInput       = errors.New("invalid input")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token errors (invalid, forged or malformed vs. well-formed but expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

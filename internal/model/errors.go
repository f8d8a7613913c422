package model

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist or is
	// invisible to the caller. The two cases are deliberately the same error.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned on registration against an existing email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidInput is returned for malformed or missing registration fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed covers both unknown email and wrong password,
	// so callers cannot enumerate accounts.
	ErrAuthenticationFailed = errors.New("invalid email or password")

	// ErrInvalidToken covers expired, tampered and malformed capabilities
	// without distinguishing the reason.
	ErrInvalidToken = errors.New("invalid token")

	// ErrDataIntegrity indicates a stored password hash that fails to parse.
	ErrDataIntegrity = errors.New("stored credential is corrupted")
)

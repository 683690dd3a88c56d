// Package common holds sentinel errors shared across layers.
package common

import "errors"

var (
	// repository specific errors
	ErrNotFound = errors.New("not found")

	// registration conflict on the unique username
	ErrDuplicateUsername = errors.New("username already taken")

	// session identity does not match the resource owner
	ErrUnauthorized = errors.New("unauthorized")

	// missing or malformed input fields
	ErrValidation = errors.New("validation error")
)

// Package service holds the quote, document, staff and logging business logic.
package service

import "errors"

var (
	// ErrQuoteNotFound is returned when no quote has the requested id.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInvalidStatus is returned for a status outside the known lifecycle states.
	ErrInvalidStatus = errors.New("invalid quote status")
	// ErrStoreUnavailable wraps storage failures caused by an open circuit.
	ErrStoreUnavailable = errors.New("quote store unavailable")
	// ErrRenderFailed wraps document rendering failures.
	ErrRenderFailed = errors.New("quote document could not be rendered")
	// ErrInvalidCredentials is returned when a staff email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for a malformed, forged or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")
)

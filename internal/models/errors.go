package models

import "errors"

// Domain errors. Services wrap these with context; handlers map them to HTTP
// status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrForbidden         = errors.New("only the session host may do that")
	ErrValidation        = errors.New("invalid request")
	ErrConflict          = errors.New("balance changed concurrently")
	ErrCodeExhausted     = errors.New("could not allocate a unique session code")
)

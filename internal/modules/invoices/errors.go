package invoices

import "errors"

var (
	ErrValidation     = errors.New("invalid invoice data")
	ErrNoItems        = errors.New("invoice needs at least one item")
	ErrNotFound       = errors.New("invoice not found")
	ErrCancelled      = errors.New("invoice is cancelled")
	ErrInvalidPayment = errors.New("payment amount must be positive")
)

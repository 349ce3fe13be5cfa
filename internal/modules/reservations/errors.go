package reservations

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidRange        = errors.New("end date must be strictly after start date")
	ErrUnavailable         = errors.New("vehicle is not available for the requested dates")
	ErrClientIneligible    = errors.New("client is blocked or blacklisted")
	ErrInvalidTransition   = errors.New("illegal reservation status transition")
	ErrConcurrencyConflict = errors.New("a concurrent booking took the dates; re-check availability")
	ErrNotFound            = errors.New("reservation not found")
	ErrNotDeletable        = errors.New("only pending reservations can be deleted")
)

package fleet

import "errors"

var (
	ErrValidation = errors.New("invalid vehicle data")
	ErrNotFound   = errors.New("vehicle not found")
	ErrInUse      = errors.New("vehicle has active rentals")
)

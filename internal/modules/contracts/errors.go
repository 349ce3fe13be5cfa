package contracts

import "errors"

var (
	ErrValidation        = errors.New("invalid contract data")
	ErrInvalidRange      = errors.New("end date must be after start date")
	ErrClientIneligible  = errors.New("client is not eligible to rent")
	ErrNotFound          = errors.New("contract not found")
	ErrInvalidTransition = errors.New("invalid contract status transition")
	ErrNotEditable       = errors.New("contract terms can no longer be edited")
	ErrMileageRequired   = errors.New("mileage reading is required")
)

package maintenance

import "errors"

var (
	ErrValidation = errors.New("invalid maintenance data")
	ErrNotFound   = errors.New("maintenance record not found")
)

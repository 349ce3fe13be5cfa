package clients

import "errors"

var (
	ErrValidation = errors.New("invalid client data")
	ErrNotFound   = errors.New("client not found")
)

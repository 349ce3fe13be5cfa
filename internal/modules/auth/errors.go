package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("invalid user data")
)

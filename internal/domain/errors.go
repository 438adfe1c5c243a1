package domain

import "errors"

var (
	ErrRateNotFound       = errors.New("rate not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid exchange credentials")
	ErrNegativeQuantity   = errors.New("holding quantity must not be negative")
)

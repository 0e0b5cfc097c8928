package service

import "errors"

var (
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("username or email exists")
	ErrNotFound           = errors.New("request not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

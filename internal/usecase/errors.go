package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrIntegrity    = errors.New("integrity gate rejected the result")
)

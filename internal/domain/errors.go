package domain

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("todo not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

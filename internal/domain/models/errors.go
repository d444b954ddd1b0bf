package models

import "errors"

// ErrInvalidInput marks a request rejected by validation.
var ErrInvalidInput = errors.New("invalid input")

package services

import "errors"

// ErrInvalidInput marks requests rejected before any store access.
// Entry points map it to a 400-equivalent response.
var ErrInvalidInput = errors.New("invalid input")

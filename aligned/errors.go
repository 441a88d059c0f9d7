package aligned

import "errors"

// Errors returned by buffer allocation.
var (
	ErrInvalidLength = errors.New("aligned: buffer length must be positive")
	ErrAllocation    = errors.New("aligned: allocation failed")
)

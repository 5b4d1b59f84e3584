package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest is wrapped by every validation failure so handlers can
// map them to 400 with one errors.Is check.
var ErrInvalidRequest = errors.New("invalid request")

// Sentinel errors for validation.
var (
	ErrMissingMotif  = fmt.Errorf("%w: motif must have at least one node", ErrInvalidRequest)
	ErrMissingNodeID = fmt.Errorf("%w: node id is required", ErrInvalidRequest)
	ErrMissingSource = fmt.Errorf("%w: edge source is required", ErrInvalidRequest)
	ErrMissingTarget = fmt.Errorf("%w: edge target is required", ErrInvalidRequest)
)

// ErrHostTooLarge means the tenant's graph exceeds the size the service
// will load into memory.
var ErrHostTooLarge = errors.New("host graph too large")

// ErrTenantNotFound means no tenant matches the presented credentials.
var ErrTenantNotFound = errors.New("tenant not found")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%w: %s exceeds maximum length of %d", ErrInvalidRequest, field, maxLen)
}

// ErrOutOfRange returns an error indicating a numeric field is outside [lo, hi].
func ErrOutOfRange(field string, lo, hi int) error {
	return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidRequest, field, lo, hi)
}

package denylist

import "errors"

var (
	// ErrEmptyID is returned for operations on an empty token identifier.
	ErrEmptyID = errors.New("denylist.empty_id")

	// ErrUnavailable indicates the backing store could not be reached or
	// failed to complete the operation.
	ErrUnavailable = errors.New("denylist.unavailable")
)

package repositories

import "errors"

// Sentinel errors shared by the Mongo and in-memory implementations so that
// handlers can branch on them regardless of the injected adapter.
var (
	// ErrNotFound is returned when a document lookup by key matches nothing
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRequest is returned when a friend request for the same
	// ordered (from, to) pair already exists, whatever its status
	ErrDuplicateRequest = errors.New("friend request already sent")
)

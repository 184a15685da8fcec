package service

import (
	"errors"
	"fmt"
)

// --- Error Kinds ---
// Every error a service returns on purpose wraps exactly one of these, so the
// API layer can map it with errors.Is. Store failures are returned wrapped and
// match none of them.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)

// kindError returns an error with msg that wraps kind.
func kindError(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// --- Shared sentinels ---
var (
	ErrNoCaller        = kindError(ErrUnauthenticated, "user is not authenticated")
	ErrWorkoutNotFound = kindError(ErrNotFound, "workout not found")
)

package service

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a status mutation names a value outside
// the entity's enumeration.
var ErrInvalidStatus = errors.New("invalid status value")

// RemoteError wraps any transport/backend failure from a gateway operation,
// carrying the operation and entity names for user-facing notifications.
// Callers never retry automatically.
type RemoteError struct {
	Op     string
	Entity string
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Entity, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// remoteErr wraps err unless it is nil or a domain sentinel that callers
// match on directly (ErrNotFound stays unwrapped).
func remoteErr(op, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Entity: entity, Err: err}
}

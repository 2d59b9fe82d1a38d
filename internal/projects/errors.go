package projects

import "errors"

var (
	// ErrNotFound is returned when no project matches the given id or path.
	ErrNotFound = errors.New("project not found")

	// ErrInvalidTransition is returned when an archive operation targets a
	// project that is not in the required status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrLocked is returned when the database lock cannot be acquired.
	ErrLocked = errors.New("project database is locked by another process")
)

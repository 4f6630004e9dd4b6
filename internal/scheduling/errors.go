package scheduling

import "errors"

var (
	// ErrNotFound is returned by a Store when the requested display does not
	// exist. The engine turns it into an empty result.
	ErrNotFound = errors.New("scheduling: not found")

	// ErrInvalidTarget is returned when a target type is neither display nor group.
	ErrInvalidTarget = errors.New("scheduling: invalid target type")

	// ErrTimelineTooLarge is returned when a preview would take more steps
	// than the engine allows.
	ErrTimelineTooLarge = errors.New("scheduling: timeline too large")
)

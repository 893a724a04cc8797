package room

import "errors"

var (
	// ErrInvalidInput marks requests missing a required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPhase marks operations that are illegal in the room's
	// current phase.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrNotFound marks references to unknown players or missing
	// snapshots.
	ErrNotFound = errors.New("not found")
)

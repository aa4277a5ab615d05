package bridge

import "errors"

// Sentinel errors for event validation. Callers match these with errors.Is.
var (
	// ErrUnknownCommand indicates a client command event name outside the
	// fixed command vocabulary.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidCommand indicates a command whose value is outside the
	// target actuator's enum.
	ErrInvalidCommand = errors.New("invalid command")
)

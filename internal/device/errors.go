package device

import "errors"

// Sentinel errors for state store operations.
var (
	// ErrInvalidValue is returned when an actuator value is outside the
	// device's fixed enum. The stored value is left untouched.
	ErrInvalidValue = errors.New("device: value not in actuator enum")

	// ErrUnknownKey is returned for a key outside the fixed sensor/actuator sets.
	ErrUnknownKey = errors.New("device: unknown key")
)

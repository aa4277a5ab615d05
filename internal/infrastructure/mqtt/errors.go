package mqtt

import "errors"

// Sentinel errors for broker transport operations, matched with
// errors.Is. The bridge treats most of these as degraded-but-alive: a
// failed command publish is logged and the optimistic update proceeds.
var (
	// ErrNotConnected: the broker link is down. Device commands and
	// status traffic resume automatically once reconnection succeeds.
	ErrNotConnected = errors.New("mqtt: client not connected")

	// ErrConnectionFailed: the initial broker connection could not be
	// established. Fatal at startup; reconnects afterwards are automatic.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrPublishFailed: the broker did not acknowledge a publish in time.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrSubscribeFailed: a device topic subscription was not confirmed.
	ErrSubscribeFailed = errors.New("mqtt: subscribe failed")

	// ErrUnsubscribeFailed: an unsubscribe was not confirmed.
	ErrUnsubscribeFailed = errors.New("mqtt: unsubscribe failed")

	// ErrInvalidQoS: QoS outside 0..2.
	ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")

	// ErrInvalidTopic: empty topic string.
	ErrInvalidTopic = errors.New("mqtt: topic cannot be empty")
)

package bridge

import "github.com/utcsmart/homelink-core/internal/device"

// Event is the tagged variant dispatched through the controller. The three
// implementations cover every inbound stimulus the bridge reacts to.
type Event interface {
	isEvent()
}

// SensorEvent is a telemetry reading arriving from the broker.
type SensorEvent struct {
	Key   device.SensorKey
	Value string
}

// ActuatorStatusEvent is an authoritative device status echo from the
// broker. It always overrides any optimistic value for the same key.
type ActuatorStatusEvent struct {
	Key   device.ActuatorKey
	Value string
}

// ClientCommandEvent is a command issued by an authenticated dashboard
// client, to be published to the broker and applied optimistically.
type ClientCommandEvent struct {
	Key   device.ActuatorKey
	Value string
}

func (SensorEvent) isEvent()         {}
func (ActuatorStatusEvent) isEvent() {}
func (ClientCommandEvent) isEvent()  {}

// commandEvents maps client command event names to their events. The
// vocabulary is closed; the dashboard sends exactly these six.
var commandEvents = map[string]ClientCommandEvent{
	"light-on":   {Key: device.ActuatorLight, Value: device.ValueOn},
	"light-off":  {Key: device.ActuatorLight, Value: device.ValueOff},
	"fan-on":     {Key: device.ActuatorFan, Value: device.ValueOn},
	"fan-off":    {Key: device.ActuatorFan, Value: device.ValueOff},
	"door-open":  {Key: device.ActuatorDoor, Value: device.ValueOpen},
	"door-close": {Key: device.ActuatorDoor, Value: device.ValueClose},
}

// CommandEvent translates a client command event name into its tagged
// event. The second return is false for names outside the vocabulary.
func CommandEvent(name string) (ClientCommandEvent, bool) {
	ev, ok := commandEvents[name]
	return ev, ok
}

package bridge

import (
	"github.com/utcsmart/homelink-core/internal/device"
)

// Wire topics, fixed at deployment. Actuators use a cmd/status topic pair;
// sensors publish telemetry on a bare topic.
const (
	TopicLightCmd    = "home/light/cmd"
	TopicLightStatus = "home/light/status"
	TopicFanCmd      = "home/fan/cmd"
	TopicFanStatus   = "home/fan/status"
	TopicDoorCmd     = "home/door/cmd"
	TopicDoorStatus  = "home/door/status"
	TopicTemp        = "home/temp"
	TopicHumidity    = "home/humidity"
	TopicGas         = "home/gas"
)

// RouteKind classifies what a wire topic carries.
type RouteKind int

const (
	// RouteSensor is a telemetry reading topic.
	RouteSensor RouteKind = iota
	// RouteActuatorStatus is a device status echo topic.
	RouteActuatorStatus
)

// Route is the logical destination a wire topic resolves to. Exactly one
// of Sensor or Actuator is meaningful, selected by Kind.
type Route struct {
	Kind     RouteKind
	Sensor   device.SensorKey
	Actuator device.ActuatorKey
}

// Registry is the static mapping between logical device keys and wire
// topic strings. It is a pure lookup table with no state.
type Registry struct {
	commands map[device.ActuatorKey]string
	routes   map[string]Route
}

// NewRegistry builds the registry for the fixed home topic layout.
func NewRegistry() *Registry {
	return &Registry{
		commands: map[device.ActuatorKey]string{
			device.ActuatorLight: TopicLightCmd,
			device.ActuatorFan:   TopicFanCmd,
			device.ActuatorDoor:  TopicDoorCmd,
		},
		routes: map[string]Route{
			TopicLightStatus: {Kind: RouteActuatorStatus, Actuator: device.ActuatorLight},
			TopicFanStatus:   {Kind: RouteActuatorStatus, Actuator: device.ActuatorFan},
			TopicDoorStatus:  {Kind: RouteActuatorStatus, Actuator: device.ActuatorDoor},
			TopicTemp:        {Kind: RouteSensor, Sensor: device.SensorTemperature},
			TopicHumidity:    {Kind: RouteSensor, Sensor: device.SensorHumidity},
			TopicGas:         {Kind: RouteSensor, Sensor: device.SensorGas},
		},
	}
}

// CommandTopic returns the broker topic commands for the actuator are
// published on. The second return is false for unknown actuators.
func (r *Registry) CommandTopic(key device.ActuatorKey) (string, bool) {
	topic, ok := r.commands[key]
	return topic, ok
}

// Resolve maps an inbound wire topic to its logical route. Unknown topics
// return false; the caller decides whether that is worth logging.
func (r *Registry) Resolve(topic string) (Route, bool) {
	route, ok := r.routes[topic]
	return route, ok
}

// Subscriptions lists every inbound topic the bridge must subscribe to:
// all status echo topics and all telemetry topics. Command topics are
// outbound only and excluded.
func (r *Registry) Subscriptions() []string {
	topics := make([]string, 0, len(r.routes))
	for topic := range r.routes {
		topics = append(topics, topic)
	}
	return topics
}

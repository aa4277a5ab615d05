package device

import "time"

// SensorKey identifies one of the fixed telemetry channels.
type SensorKey string

// Sensor keys. The set is closed: the dashboard shows exactly these three.
const (
	SensorTemperature SensorKey = "temperature"
	SensorHumidity    SensorKey = "humidity"
	SensorGas         SensorKey = "gas"
)

// ActuatorKey identifies one of the fixed controllable devices.
type ActuatorKey string

// Actuator keys.
const (
	ActuatorLight ActuatorKey = "light"
	ActuatorFan   ActuatorKey = "fan"
	ActuatorDoor  ActuatorKey = "door"
)

// Actuator wire values. Payloads on the broker are these plain strings.
const (
	ValueOn    = "ON"
	ValueOff   = "OFF"
	ValueOpen  = "OPEN"
	ValueClose = "CLOSE"
)

// ValueUnknown is the sentinel shown for a sensor before its first reading.
const ValueUnknown = "--"

// actuatorValues maps each actuator to its closed value enum.
var actuatorValues = map[ActuatorKey][]string{
	ActuatorLight: {ValueOn, ValueOff},
	ActuatorFan:   {ValueOn, ValueOff},
	ActuatorDoor:  {ValueOpen, ValueClose},
}

// IsValidActuatorValue reports whether value is a member of the actuator's
// fixed enum. Unknown actuator keys are never valid.
func IsValidActuatorValue(key ActuatorKey, value string) bool {
	for _, v := range actuatorValues[key] {
		if v == value {
			return true
		}
	}
	return false
}

// SensorSnapshot is the last-known sensor view pushed to clients.
// Field names match the original dashboard wire format.
type SensorSnapshot struct {
	Temp       string     `json:"temp"`
	Humidity   string     `json:"humidity"`
	Gas        string     `json:"gas"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// ActuatorSnapshot is the last-known actuator view pushed to clients.
type ActuatorSnapshot struct {
	Light string `json:"light"`
	Fan   string `json:"fan"`
	Door  string `json:"door"`
}

package device

import (
	"sync"
	"time"
)

// Store is the canonical, in-memory, last-known-value snapshot of every
// sensor reading and every actuator's commanded state. It is the single
// source of truth for what the dashboard shows right now.
//
// Values follow last-write-wins semantics: the transport provides no
// ordering token, so wall-clock arrival order is authoritative. A broker
// status echo and an optimistic command update are applied independently
// and the later write wins regardless of origin.
//
// All mutation is funnelled through the bridge controller; the store's
// internal mutex exists so Snapshot() can be called from HTTP/WebSocket
// goroutines, not to support concurrent writers.
type Store struct {
	mu         sync.RWMutex
	sensors    map[SensorKey]string
	actuators  map[ActuatorKey]string
	lastUpdate time.Time
	now        func() time.Time
}

// NewStore creates a store with every sensor at the unknown sentinel and
// every actuator at its resting value (lights and fan off, door closed).
func NewStore() *Store {
	return &Store{
		sensors: map[SensorKey]string{
			SensorTemperature: ValueUnknown,
			SensorHumidity:    ValueUnknown,
			SensorGas:         ValueUnknown,
		},
		actuators: map[ActuatorKey]string{
			ActuatorLight: ValueOff,
			ActuatorFan:   ValueOff,
			ActuatorDoor:  ValueClose,
		},
		now: time.Now,
	}
}

// UpdateSensor overwrites the reading and the shared lastUpdate timestamp
// unconditionally (last-write-wins). Readings are never deleted.
func (s *Store) UpdateSensor(key SensorKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sensors[key]; !ok {
		return ErrUnknownKey
	}

	s.sensors[key] = value
	s.lastUpdate = s.now().UTC()
	return nil
}

// UpdateActuator validates value against the key's fixed enum and stores it.
// On ErrInvalidValue the previous value is left unchanged.
func (s *Store) UpdateActuator(key ActuatorKey, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actuators[key]; !ok {
		return ErrUnknownKey
	}
	if !IsValidActuatorValue(key, value) {
		return ErrInvalidValue
	}

	s.actuators[key] = value
	return nil
}

// Actuator returns the current value for an actuator key.
func (s *Store) Actuator(key ActuatorKey) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actuators[key]
}

// Snapshot returns an immutable copy of the current state, used to hydrate
// a newly connected client and to build broadcasts.
func (s *Store) Snapshot() (SensorSnapshot, ActuatorSnapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sensors := SensorSnapshot{
		Temp:     s.sensors[SensorTemperature],
		Humidity: s.sensors[SensorHumidity],
		Gas:      s.sensors[SensorGas],
	}
	if !s.lastUpdate.IsZero() {
		t := s.lastUpdate
		sensors.LastUpdate = &t
	}

	actuators := ActuatorSnapshot{
		Light: s.actuators[ActuatorLight],
		Fan:   s.actuators[ActuatorFan],
		Door:  s.actuators[ActuatorDoor],
	}

	return sensors, actuators
}

package bridge

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/utcsmart/homelink-core/internal/device"
	"github.com/utcsmart/homelink-core/internal/infrastructure/config"
)

// Publisher is the outbound broker capability the controller needs.
// Satisfied by mqtt.Client.
type Publisher interface {
	PublishString(topic, payload string) error
}

// Broadcaster fans events out to every connected dashboard client.
// Satisfied by the API layer's WebSocket hub. Delivery is best-effort;
// implementations must not block the caller on slow clients.
type Broadcaster interface {
	BroadcastSensorUpdate(update SensorUpdate)
	BroadcastDeviceStatus(status device.ActuatorSnapshot)
}

// Logger is the subset of logging the controller uses.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Alerts marks which environment thresholds the latest readings exceed.
// Computed server-side so every client applies the same limits.
type Alerts struct {
	Gas      bool `json:"gas"`
	Temp     bool `json:"temp"`
	Humidity bool `json:"humidity"`
}

// SensorUpdate is the sensor-update broadcast payload: the full sensor
// snapshot (never a diff) plus the computed alert flags.
type SensorUpdate struct {
	device.SensorSnapshot
	Alerts Alerts `json:"alerts"`
}

// Controller reconciles broker events and client commands against the
// device store and decides what to publish and what to broadcast.
//
// Handlers are serialized: Dispatch holds a mutex for the full handler
// execution, so no two mutations of the store interleave. Publishes and
// broadcasts are fire-and-forget relative to handler completion.
type Controller struct {
	mu sync.Mutex

	registry    *Registry
	store       *device.Store
	publisher   Publisher
	broadcaster Broadcaster
	thresholds  config.ThresholdConfig
	logger      Logger
}

// NewController wires the reconciliation core to its collaborators.
func NewController(
	registry *Registry,
	store *device.Store,
	publisher Publisher,
	broadcaster Broadcaster,
	thresholds config.ThresholdConfig,
	logger Logger,
) *Controller {
	return &Controller{
		registry:    registry,
		store:       store,
		publisher:   publisher,
		broadcaster: broadcaster,
		thresholds:  thresholds,
		logger:      logger,
	}
}

// HandleBrokerMessage adapts raw broker deliveries into tagged events.
// Its signature matches mqtt.MessageHandler so it can be subscribed
// directly. Unknown topics are ignored, not errors.
func (c *Controller) HandleBrokerMessage(topic string, payload []byte) error {
	route, ok := c.registry.Resolve(topic)
	if !ok {
		c.logger.Debug("ignoring message on unknown topic", "topic", topic)
		return nil
	}

	value := string(payload)
	switch route.Kind {
	case RouteSensor:
		return c.Dispatch(SensorEvent{Key: route.Sensor, Value: value})
	case RouteActuatorStatus:
		return c.Dispatch(ActuatorStatusEvent{Key: route.Actuator, Value: value})
	default:
		return nil
	}
}

// HandleCommand translates a client command event name and dispatches it.
// Returns ErrUnknownCommand for names outside the fixed vocabulary.
func (c *Controller) HandleCommand(name string) error {
	ev, ok := CommandEvent(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return c.Dispatch(ev)
}

// Dispatch runs one event handler to completion under the controller
// mutex. This is the single entry point for all state mutation.
func (c *Controller) Dispatch(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := event.(type) {
	case SensorEvent:
		return c.handleSensor(ev)
	case ActuatorStatusEvent:
		return c.handleActuatorStatus(ev)
	case ClientCommandEvent:
		return c.handleClientCommand(ev)
	default:
		c.logger.Warn("dropping event of unknown type", "event", fmt.Sprintf("%T", event))
		return nil
	}
}

// handleSensor applies a telemetry reading and fans out the full sensor
// snapshot with recomputed alert flags.
func (c *Controller) handleSensor(ev SensorEvent) error {
	if err := c.store.UpdateSensor(ev.Key, ev.Value); err != nil {
		c.logger.Warn("dropping sensor reading", "key", ev.Key, "error", err)
		return nil
	}

	c.broadcastSensors()
	return nil
}

// handleActuatorStatus applies an authoritative status echo. Values
// outside the actuator's enum are dropped. An echo that matches the
// current value is absorbed without a broadcast to avoid redundant
// fan-out.
func (c *Controller) handleActuatorStatus(ev ActuatorStatusEvent) error {
	previous := c.store.Actuator(ev.Key)

	if err := c.store.UpdateActuator(ev.Key, ev.Value); err != nil {
		c.logger.Warn("dropping actuator status",
			"key", ev.Key,
			"value", ev.Value,
			"error", err,
		)
		return nil
	}

	if ev.Value == previous {
		return nil
	}

	c.broadcastActuators()
	return nil
}

// handleClientCommand publishes the command to the broker and applies the
// optimistic local update without waiting for an echo. A publish failure
// is logged and the optimistic update still proceeds; the dashboard
// degrades to stale-state display rather than failing the command.
func (c *Controller) handleClientCommand(ev ClientCommandEvent) error {
	if !device.IsValidActuatorValue(ev.Key, ev.Value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidCommand, ev.Key, ev.Value)
	}

	topic, ok := c.registry.CommandTopic(ev.Key)
	if !ok {
		return fmt.Errorf("%w: no command topic for %s", ErrInvalidCommand, ev.Key)
	}

	if err := c.publisher.PublishString(topic, ev.Value); err != nil {
		c.logger.Warn("command publish failed",
			"topic", topic,
			"value", ev.Value,
			"error", err,
		)
	}

	if err := c.store.UpdateActuator(ev.Key, ev.Value); err != nil {
		// Unreachable after the validation above; keep the guard anyway.
		return fmt.Errorf("%w: %s=%q", ErrInvalidCommand, ev.Key, ev.Value)
	}

	c.broadcastActuators()
	return nil
}

// SensorUpdatePayload builds the current sensor-update payload, used both
// for broadcasts and to hydrate a newly connected client.
func (c *Controller) SensorUpdatePayload() SensorUpdate {
	sensors, _ := c.store.Snapshot()
	return SensorUpdate{
		SensorSnapshot: sensors,
		Alerts:         c.computeAlerts(sensors),
	}
}

// DeviceStatusPayload builds the current device-status payload.
func (c *Controller) DeviceStatusPayload() device.ActuatorSnapshot {
	_, actuators := c.store.Snapshot()
	return actuators
}

func (c *Controller) broadcastSensors() {
	c.broadcaster.BroadcastSensorUpdate(c.SensorUpdatePayload())
}

func (c *Controller) broadcastActuators() {
	c.broadcaster.BroadcastDeviceStatus(c.DeviceStatusPayload())
}

// computeAlerts compares the latest readings against the configured
// thresholds. Readings that do not parse as numbers (including the
// unknown sentinel before the first message) never alert.
func (c *Controller) computeAlerts(sensors device.SensorSnapshot) Alerts {
	return Alerts{
		Gas:      exceeds(sensors.Gas, c.thresholds.GasWarning),
		Temp:     exceeds(sensors.Temp, c.thresholds.TempHigh),
		Humidity: exceeds(sensors.Humidity, c.thresholds.HumidityHigh),
	}
}

func exceeds(reading string, threshold float64) bool {
	value, err := strconv.ParseFloat(reading, 64)
	if err != nil {
		return false
	}
	return value >= threshold
}

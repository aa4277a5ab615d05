// Package bridge is the reconciliation core between the MQTT broker and
// connected dashboard clients.
//
// All inbound activity is expressed as a tagged event (SensorEvent,
// ActuatorStatusEvent, ClientCommandEvent) and dispatched through a single
// function on the Controller, which serializes handler executions behind a
// mutex. Broker events mutate the device store and fan out full snapshots;
// client commands publish to the broker and apply an optimistic local
// update without waiting for the device to acknowledge.
//
// There is no correlation between a published command and its eventual
// status echo. A command that is never echoed leaves the optimistic value
// in place until the next authoritative status message corrects it. This
// is an accepted trade-off: actuators are slow and unreliable, and
// blocking the dashboard on an acknowledgment would hurt responsiveness
// more than an occasional stale flicker.
package bridge

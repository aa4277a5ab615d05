// Package device defines the fixed sensor/actuator model and the canonical
// in-memory state store for the HomeLink bridge.
//
// The device set is closed by design: three sensors (temperature, humidity,
// gas) and three actuators (light, fan, door), each actuator with a fixed
// two-value enum. Unrecognised actuator values are rejected, never stored.
//
// State is a single shared global for the whole home, independent of any
// user session. The store deliberately has no concept of a pending command:
// an optimistic update and the eventual status echo are just two writes,
// and the later one wins.
package device

// Package api provides the HTTP REST API and WebSocket push channel for
// HomeLink Core.
//
// It exposes the session endpoints (register, login, logout, verify), a
// health check, and the WebSocket endpoint that streams sensor-update and
// device-status events to the dashboard and accepts device command events
// from authenticated clients.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

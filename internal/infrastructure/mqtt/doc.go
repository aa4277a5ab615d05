// Package mqtt provides the broker transport for HomeLink Core.
//
// It wraps the Eclipse Paho client with connection lifecycle management:
// automatic reconnection with exponential backoff, subscription restoration
// after reconnect, Last Will and Testament for offline detection, and panic
// recovery around message handlers.
//
// The package is transport only. Topic names and payload semantics belong
// to the bridge package; this package never inspects payloads.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil { ... }
//	defer client.Close()
//
//	client.Subscribe("home/temp", 1, func(topic string, payload []byte) error {
//	    ...
//	    return nil
//	})
//	client.PublishString("home/light/cmd", "ON")
package mqtt

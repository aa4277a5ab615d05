package mqtt

import (
	"errors"
	"strings"
	"testing"

	"github.com/utcsmart/homelink-core/internal/infrastructure/config"
)

// newDisconnectedClient returns a Client that has never connected.
// Validation paths run before any broker I/O, so these tests need no broker.
func newDisconnectedClient() *Client {
	return &Client{
		subscriptions: make(map[string]subscription),
	}
}

func TestPublish_Validation(t *testing.T) {
	c := newDisconnectedClient()

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("home/light/cmd", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("qos 3: error = %v, want ErrInvalidQoS", err)
	}

	big := make([]byte, maxPayloadSize+1)
	if err := c.Publish("home/light/cmd", big, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("oversized payload: error = %v, want ErrPublishFailed", err)
	}

	if err := c.Publish("home/light/cmd", []byte("ON"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish: error = %v, want ErrNotConnected", err)
	}
}

func TestSubscribe_Validation(t *testing.T) {
	c := newDisconnectedClient()
	handler := func(string, []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe("home/temp", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("nil handler: error = %v, want ErrSubscribeFailed", err)
	}
	if err := c.Subscribe("home/temp", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected subscribe: error = %v, want ErrNotConnected", err)
	}
	if c.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d after failed subscribes, want 0", c.SubscriptionCount())
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "broker.local",
			Port:     8883,
			TLS:      true,
			ClientID: "homelink-test",
		},
		Auth: config.MQTTAuthConfig{Username: "user", Password: "pass"},
		QoS:  1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}

	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker URL, got %d", len(opts.Servers))
	}
	url := opts.Servers[0].String()
	if !strings.HasPrefix(url, "ssl://") {
		t.Errorf("broker URL = %q, want ssl:// scheme for TLS config", url)
	}
	if opts.ClientID != "homelink-test" {
		t.Errorf("ClientID = %q, want homelink-test", opts.ClientID)
	}
	if opts.Username != "user" {
		t.Errorf("Username = %q, want user", opts.Username)
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig should be set when TLS is enabled")
	}
}

func TestBuildClientOptions_PlainTCP(t *testing.T) {
	opts := buildClientOptions(config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{Host: "localhost", Port: 1883, ClientID: "c"},
	})

	if url := opts.Servers[0].String(); !strings.HasPrefix(url, "tcp://") {
		t.Errorf("broker URL = %q, want tcp:// scheme without TLS", url)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestConfig writes a YAML config file into a temp dir and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

const minimalYAML = `
auth:
  jwt_secret: "test-secret"
`

func TestLoad_Defaults(t *testing.T) {
	path := writeTestConfig(t, minimalYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("Server.Port = %d, want 3001", cfg.Server.Port)
	}
	if cfg.MQTT.Broker.Host != "localhost" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "localhost")
	}
	if cfg.Auth.TokenTTLHours != 168 {
		t.Errorf("Auth.TokenTTLHours = %d, want 168", cfg.Auth.TokenTTLHours)
	}
	if cfg.Thresholds.GasWarning != 300 {
		t.Errorf("Thresholds.GasWarning = %v, want 300", cfg.Thresholds.GasWarning)
	}
	if got := cfg.Auth.TokenTTL(); got != 7*24*time.Hour {
		t.Errorf("TokenTTL() = %v, want 168h", got)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeTestConfig(t, `
server:
  port: 8080
mqtt:
  broker:
    host: broker.example.com
    port: 8883
    tls: true
auth:
  jwt_secret: "test-secret"
  token_ttl_hours: 24
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.MQTT.Broker.TLS {
		t.Error("MQTT.Broker.TLS = false, want true")
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("Auth.TokenTTLHours = %d, want 24", cfg.Auth.TokenTTLHours)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, `
server:
  port: 8080
auth:
  jwt_secret: "file-secret"
`)

	t.Setenv("HOMELINK_SERVER_PORT", "9090")
	t.Setenv("HOMELINK_JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Auth.JWTSecret = %q, want env override", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() with missing file should error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"bad server port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad mqtt port", func(c *Config) { c.MQTT.Broker.Port = 70000 }, true},
		{"bad qos", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTLHours = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

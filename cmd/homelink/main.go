// HomeLink Core - Smart Home State Synchronization Bridge
//
// This is the main entry point for the HomeLink Core application.
// HomeLink bridges an MQTT sensor-and-actuator network to browser
// dashboards over WebSocket, with JWT session authentication gating
// device commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/utcsmart/homelink-core/migrations"

	"github.com/utcsmart/homelink-core/internal/api"
	"github.com/utcsmart/homelink-core/internal/auth"
	"github.com/utcsmart/homelink-core/internal/bridge"
	"github.com/utcsmart/homelink-core/internal/device"
	"github.com/utcsmart/homelink-core/internal/infrastructure/config"
	"github.com/utcsmart/homelink-core/internal/infrastructure/database"
	"github.com/utcsmart/homelink-core/internal/infrastructure/logging"
	"github.com/utcsmart/homelink-core/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Convenience for local development; a missing .env is not an error.
	//nolint:errcheck // .env is optional
	godotenv.Load()

	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HomeLink Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// User store and session authority
	userRepo := auth.NewUserRepository(db.DB)
	if seedErr := auth.SeedDefaultAdmin(ctx, userRepo, log); seedErr != nil {
		return fmt.Errorf("seeding default admin: %w", seedErr)
	}
	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log)
	log.Info("session authority initialised", "token_ttl", cfg.Auth.TokenTTL())

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT connected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Reconciliation core: the hub is created first because the controller
	// broadcasts through it, and the API server reuses the same hub.
	hub := api.NewHub(cfg.WebSocket, log)
	registry := bridge.NewRegistry()
	store := device.NewStore()
	controller := bridge.NewController(
		registry,
		store,
		mqttClient,
		hub,
		cfg.Thresholds,
		log.With("component", "bridge"),
	)

	// Subscribe the controller to every inbound device topic
	for _, topic := range registry.Subscriptions() {
		if subErr := mqttClient.Subscribe(topic, byte(cfg.MQTT.QoS), controller.HandleBrokerMessage); subErr != nil {
			return fmt.Errorf("subscribing to %s: %w", topic, subErr)
		}
	}
	log.Info("device topics subscribed", "topics", len(registry.Subscriptions()))

	// Start the API server
	server, err := api.New(api.Deps{
		Config:      cfg.Server,
		WS:          cfg.WebSocket,
		Logger:      log,
		Auth:        authService,
		Bridge:      controller,
		MQTT:        mqttClient,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server (stops accepting requests, disconnects clients)
	// 2. MQTT (publishes graceful offline status)
	// 3. Database

	log.Info("HomeLink Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HOMELINK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMELINK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, server *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

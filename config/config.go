package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"auctioneer/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string // Guild the /mybids command is registered in, global when empty

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP configuration
	HTTPAddr          string
	SessionCookieName string
	AdminAPIKeys      []string
	SessionTTL        time.Duration // Lifetime of sessions issued by create-session

	// Winner notification sweep
	SweepInterval           time.Duration
	SweepRequireActiveEvent bool // Also skip auctions of deactivated events

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), bridge disabled when empty

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"

	// OpenTelemetry metrics
	OTelEnabled        bool
	OTelServiceName    string
	OTelExporterType   string // "console", "otlp" or "none"
	OTelOTLPEndpoint   string
	OTelExportInterval time.Duration

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() (string, error) {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsAdminKey reports whether key is one of the configured admin API keys
func (c *Config) IsAdminKey(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range c.AdminAPIKeys {
		if k == key {
			return true
		}
	}
	return false
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// HTTP
		HTTPAddr:          getEnvWithDefault("HTTP_ADDR", ":8080"),
		SessionCookieName: getEnvWithDefault("SESSION_COOKIE_NAME", "auction_session"),
		AdminAPIKeys:      splitList(os.Getenv("ADMIN_API_KEYS")),
		SessionTTL:        30 * 24 * time.Hour,

		// Sweep
		SweepInterval:           time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
		SweepRequireActiveEvent: getEnvBool("SWEEP_REQUIRE_ACTIVE_EVENT", false),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Logging
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: os.Getenv("LOG_FORMAT"),

		// OpenTelemetry
		OTelEnabled:        getEnvBool("OTEL_ENABLED", false),
		OTelServiceName:    getEnvWithDefault("OTEL_SERVICE_NAME", "auctioneer"),
		OTelExporterType:   getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:   getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportInterval: time.Duration(getEnvInt("OTEL_EXPORT_INTERVAL_MS", 30000)) * time.Millisecond,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	// Production logs are shipped as JSON, local runs stay readable
	if config.LogFormat == "" {
		if config.Environment == "production" {
			config.LogFormat = "json"
		} else {
			config.LogFormat = "text"
		}
	}

	if config.SweepInterval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL_SECONDS must be positive")
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		HTTPAddr:          ":0",
		SessionCookieName: "auction_session",
		AdminAPIKeys:      []string{"test-admin-key"},
		SessionTTL:        time.Hour,
		SweepInterval:     time.Minute,
		LogLevel:          "debug",
		LogFormat:         "text",
		OTelServiceName:   "auctioneer-test",
		OTelExporterType:  "none",
	}
}

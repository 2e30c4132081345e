package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cluesbot/database"
	"cluesbot/models"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendWorkbook = "workbook"

	defaultReportingTimezone = "Europe/London"
	defaultWorkbookSheet     = "Submissions"
	defaultLedgerCacheSize   = 4096
	defaultOpenAIModel       = "gpt-4o-mini"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken      string
	GuildID           string
	CluesChannelID    string // only share cards from this channel are read when set
	AnnounceChannelID string // scheduled leaderboards are disabled when empty

	// Record store configuration
	StoreBackend  string
	DatabaseURL   string
	DatabaseName  string
	WorkbookPath  string
	WorkbookSheet string

	// Scoring and reporting
	ReportingTimezone  string
	ScoringMultipliers string // "scoring" or "published"
	LedgerCacheSize    int

	// Commentary
	OpenAIAPIKey string
	OpenAIModel  string

	// Infrastructure
	NATSServers string // event forwarding is disabled when empty
	MetricsAddr string // metrics endpoint is disabled when empty
	LogLevel    string

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

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = Load()
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
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Location resolves the reporting timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ReportingTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTING_TIMEZONE %q: %w", c.ReportingTimezone, err)
	}
	return loc, nil
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		GuildID:           os.Getenv("GUILD_ID"),
		CluesChannelID:    os.Getenv("CLUES_CHANNEL_ID"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),

		// Record store
		StoreBackend:  strings.ToLower(getEnvWithDefault("STORE_BACKEND", StoreBackendPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseName:  os.Getenv("DATABASE_NAME"),
		WorkbookPath:  os.Getenv("WORKBOOK_PATH"),
		WorkbookSheet: getEnvWithDefault("WORKBOOK_SHEET", defaultWorkbookSheet),

		// Scoring
		ReportingTimezone:  getEnvWithDefault("REPORTING_TIMEZONE", defaultReportingTimezone),
		ScoringMultipliers: strings.ToLower(os.Getenv("SCORING_MULTIPLIERS")),
		LedgerCacheSize:    defaultLedgerCacheSize,

		// Commentary
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnvWithDefault("OPENAI_MODEL", defaultOpenAIModel),

		// Infrastructure
		NATSServers: os.Getenv("NATS_SERVERS"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if size := os.Getenv("LEDGER_CACHE_SIZE"); size != "" {
		parsed, err := strconv.Atoi(size)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("LEDGER_CACHE_SIZE must be a positive integer, got %q", size)
		}
		config.LedgerCacheSize = parsed
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the configuration is usable. Store and token checks are
// skipped in the test environment.
func (c *Config) Validate() error {
	switch c.ScoringMultipliers {
	case "", "scoring", "published":
	default:
		return fmt.Errorf("SCORING_MULTIPLIERS must be \"scoring\" or \"published\", got %q", c.ScoringMultipliers)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Environment == "test" {
		return nil
	}

	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}

	switch c.StoreBackend {
	case StoreBackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return &models.ConfigError{
				Store:  StoreBackendPostgres,
				Detail: "DATABASE_URL is required when STORE_BACKEND is " + StoreBackendPostgres,
				Err:    models.ErrStoreNotConfigured,
			}
		}
	case StoreBackendWorkbook:
		if strings.TrimSpace(c.WorkbookPath) == "" {
			return &models.ConfigError{
				Store:  StoreBackendWorkbook,
				Detail: "WORKBOOK_PATH is required when STORE_BACKEND is " + StoreBackendWorkbook,
				Err:    models.ErrStoreNotConfigured,
			}
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendWorkbook, c.StoreBackend)
	}

	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
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
		StoreBackend:      StoreBackendWorkbook,
		WorkbookSheet:     defaultWorkbookSheet,
		ReportingTimezone: defaultReportingTimezone,
		LedgerCacheSize:   defaultLedgerCacheSize,
		OpenAIModel:       defaultOpenAIModel,
		LogLevel:          "info",
	}
}

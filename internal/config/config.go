package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Tracker TrackerConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// OpenAIConfig holds the AI coach configuration. All fields are optional;
// without an API key the coach runs in deterministic fallback mode.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// TrackerConfig holds engine tuning knobs.
type TrackerConfig struct {
	// MealsPerDay is how many logged meals count as a full nutrition day
	// for streaks and challenges.
	MealsPerDay int
	// StreakLookbackDays bounds the backward streak walk.
	StreakLookbackDays int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// AI defaults
	v.SetDefault("openai.model", "gpt-4o-mini")

	// Tracker defaults
	v.SetDefault("tracker.mealsperday", 3)
	v.SetDefault("tracker.streaklookbackdays", 365)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// OpenAI
	v.BindEnv("openai.apikey", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")

	// Tracker
	v.BindEnv("tracker.mealsperday", "TRACKER_MEALS_PER_DAY")
	v.BindEnv("tracker.streaklookbackdays", "TRACKER_STREAK_LOOKBACK_DAYS")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	if c.Tracker.MealsPerDay < 1 || c.Tracker.MealsPerDay > 6 {
		return fmt.Errorf("tracker.mealsperday must be between 1 and 6")
	}

	if c.Tracker.StreakLookbackDays < 1 {
		return fmt.Errorf("tracker.streaklookbackdays must be positive")
	}

	// An API key without a model cannot produce completions
	if c.OpenAI.APIKey != "" && c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model is required when openai.apikey is set")
	}

	return nil
}

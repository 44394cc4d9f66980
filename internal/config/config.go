// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() with defaults and Load(ctx) layering file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DatabaseURL selects the Postgres store. Empty runs on the in-memory
	// demo store.
	DatabaseURL string `koanf:"database_url"`

	// DatabaseSchema holds the coaching tables.
	DatabaseSchema string `koanf:"database_schema"`

	// InsightEndpoint and InsightAPIKey configure the external generator.
	InsightEndpoint string `koanf:"insight_endpoint"`
	InsightAPIKey   string `koanf:"insight_api_key"`

	// RefreshMinutes sets the background snapshot refresh cadence.
	// Zero disables the refresher.
	RefreshMinutes int `koanf:"refresh_minutes"`

	// HiddenIDs lists person identifiers excluded from every rollup.
	HiddenIDs []string `koanf:"hidden_ids"`

	// DefaultSessionsPerPerson is the fallback session budget per person
	// when no configuration row matches the account.
	DefaultSessionsPerPerson int `koanf:"default_sessions_per_person"`

	// CompletionThreshold is the minimum number of assessed people before
	// a specific cohort counts as completed.
	CompletionThreshold int `koanf:"completion_threshold"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":8090",
		DatabaseSchema:           "coaching",
		RefreshMinutes:           15,
		DefaultSessionsPerPerson: 12,
		CompletionThreshold:      5,
	}
}

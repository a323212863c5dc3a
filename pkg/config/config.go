package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yair/eventscout/pkg/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig       `json:"server" yaml:"server"`
	Database     DatabaseConfig     `json:"database" yaml:"database"`
	Ticketmaster TicketmasterConfig `json:"ticketmaster" yaml:"ticketmaster"`
	Listing      ListingConfig      `json:"listing" yaml:"listing"`
	Log          LogConfig          `json:"log" yaml:"log"`
}

// ServerConfig for the local HTTP API
type ServerConfig struct {
	Port         string `json:"port" yaml:"port"`
	ReadTimeout  int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
}

// DatabaseConfig for the SQLite file holding favorites
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// TicketmasterConfig for Ticketmaster Discovery API.
// RequestsPerSecond is a pointer so an explicit 0, which disables pacing,
// is distinguishable from an unset value.
type TicketmasterConfig struct {
	APIKey            string   `json:"api_key" yaml:"api_key"`
	BaseURL           string   `json:"base_url" yaml:"base_url"`
	Timeout           int      `json:"timeout_seconds" yaml:"timeout_seconds"`
	RequestsPerSecond *float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

const defaultRequestsPerSecond = 5

// ListingConfig tunes the event list controller
type ListingConfig struct {
	DebounceMillis int  `json:"debounce_ms" yaml:"debounce_ms"`
	DedupePages    bool `json:"dedupe_pages" yaml:"dedupe_pages"`
}

// LogConfig for the structured logger
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// Load reads configuration from file and environment variables.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
// Environment variables override file values using the pattern EVENTSCOUT_SECTION_KEY
func Load(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := decode(configPath, data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyDefaults(config)

	applyEnvOverrides(config)

	return config, nil
}

func decode(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 30
	}
	if config.Database.Path == "" {
		config.Database.Path = "eventscout.db"
	}
	if config.Ticketmaster.BaseURL == "" {
		config.Ticketmaster.BaseURL = "https://app.ticketmaster.com/discovery/v2"
	}
	if config.Ticketmaster.Timeout == 0 {
		config.Ticketmaster.Timeout = 10
	}
	if config.Ticketmaster.RequestsPerSecond == nil {
		rps := float64(defaultRequestsPerSecond)
		config.Ticketmaster.RequestsPerSecond = &rps
	}
	if config.Listing.DebounceMillis == 0 {
		config.Listing.DebounceMillis = 700
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("EVENTSCOUT_SERVER_PORT"); v != "" {
		config.Server.Port = v
	}

	if v := os.Getenv("EVENTSCOUT_DATABASE_PATH"); v != "" {
		config.Database.Path = v
	}

	if v := os.Getenv("EVENTSCOUT_TICKETMASTER_API_KEY"); v != "" {
		config.Ticketmaster.APIKey = v
	}
	if v := os.Getenv("EVENTSCOUT_TICKETMASTER_BASE_URL"); v != "" {
		config.Ticketmaster.BaseURL = v
	}
	if v := os.Getenv("EVENTSCOUT_TICKETMASTER_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.Ticketmaster.Timeout = secs
		}
	}
	if v := os.Getenv("EVENTSCOUT_TICKETMASTER_REQUESTS_PER_SECOND"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps >= 0 {
			config.Ticketmaster.RequestsPerSecond = &rps
		}
	}

	if v := os.Getenv("EVENTSCOUT_LISTING_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			config.Listing.DebounceMillis = ms
		}
	}
	if v := os.Getenv("EVENTSCOUT_LISTING_DEDUPE_PAGES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Listing.DedupePages = b
		}
	}

	if v := os.Getenv("EVENTSCOUT_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("EVENTSCOUT_LOG_FILE"); v != "" {
		config.Log.File = v
	}
}

// Debounce returns the listing quiet period as a duration
func (c *ListingConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// RequestRate returns the catalog pacing in requests per second; zero
// means unpaced.
func (c *TicketmasterConfig) RequestRate() float64 {
	if c.RequestsPerSecond == nil {
		return 0
	}
	return *c.RequestsPerSecond
}

// RequestTimeout returns the catalog HTTP timeout as a duration
func (c *TicketmasterConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Validate checks if required configurations are present
func (c *Config) Validate() error {
	if c.Ticketmaster.APIKey == "" {
		return domain.ValidationError{Field: "ticketmaster.api_key", Message: "is required"}
	}
	if c.Ticketmaster.RequestRate() < 0 {
		return domain.ValidationError{Field: "ticketmaster.requests_per_second", Message: "must not be negative"}
	}
	if c.Listing.DebounceMillis < 0 {
		return domain.ValidationError{Field: "listing.debounce_ms", Message: "must not be negative"}
	}
	return nil
}

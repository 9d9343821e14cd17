package config

import (
	"fmt"
	"time"
)

// Store kinds accepted by StoreKind.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Output formats accepted by OutputFormat.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds runtime settings for the smartmeet CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values;
// on the command line they are given in whole seconds.
type Config struct {
	APIBaseURL          string
	StoreKind           string
	DatabasePath        string
	SessionFile         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	OutputFormat        string
	LogLevel            string
	LogFile             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.StoreKind = StoreSQLite
	c.DatabasePath = "smartmeet.db"
	c.SessionFile = "smartmeet-session.json"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.OutputFormat = OutputTable
	c.LogLevel = "warn"
	c.LogFile = ""
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is empty")
	}
	switch c.StoreKind {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("unknown store kind %q (want %s or %s)", c.StoreKind, StoreSQLite, StoreFile)
	}
	switch c.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	return nil
}

// LoadConfig constructs a Config from args (without the program name):
// defaults first, then the JSON file named by -c/-config if any, then the
// remaining flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

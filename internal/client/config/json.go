package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/smartmeet/internal/flagx"
	"github.com/dmitrijs2005/smartmeet/internal/timex"
)

// JSONConfig is the on-disk shape of the client configuration. Durations
// use timex.Duration, so "15s" and integer nanoseconds both work. Absent
// fields keep their current value.
type JSONConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	StoreKind           string         `json:"store"`
	DatabasePath        string         `json:"database_path"`
	SessionFile         string         `json:"session_file"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	OutputFormat        string         `json:"output"`
	LogLevel            string         `json:"log_level"`
	LogFile             string         `json:"log_file"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc *JSONConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.StoreKind, jc.StoreKind)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.SessionFile, jc.SessionFile)
	setString(&cfg.OutputFormat, jc.OutputFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

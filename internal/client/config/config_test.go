package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000", c.APIBaseURL)
	assert.Equal(t, StoreSQLite, c.StoreKind)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, OutputTable, c.OutputFormat)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoArgs(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoadConfig_Flags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://api:9000", "-s", "file", "-d", "x.db", "-f", "s.json", "-t", "3", "-i", "10", "-o", "json", "-l", "debug", "-L", "cli.log"},
			mutate: func(c *Config) {
				c.APIBaseURL = "http://api:9000"
				c.StoreKind = StoreFile
				c.DatabasePath = "x.db"
				c.SessionFile = "s.json"
				c.RequestTimeout = 3 * time.Second
				c.OnlineCheckInterval = 10 * time.Second
				c.OutputFormat = OutputJSON
				c.LogLevel = "debug"
				c.LogFile = "cli.log"
			},
		},
		{
			name:   "equals form and unknown flags ignored",
			args:   []string{"-o=yaml", "-verbose", "-x", "1"},
			mutate: func(c *Config) { c.OutputFormat = OutputYAML },
		},
		{name: "bad interval", args: []string{"-i", "abc"}, wantErr: true},
		{name: "zero interval", args: []string{"-i", "0"}, wantErr: true},
		{name: "bad store", args: []string{"-s", "redis"}, wantErr: true},
		{name: "bad output", args: []string{"-o", "xml"}, wantErr: true},
		{name: "empty url", args: []string{"-a="}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := defaults()
			tt.mutate(&want)
			if diff := cmp.Diff(want, *cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smartmeet.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_JSONThenFlags(t *testing.T) {
	path := writeConfig(t, `{
		"api_base_url": "http://json:8000",
		"store": "file",
		"request_timeout": "30s",
		"online_check_interval": 2000000000
	}`)

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag:8000"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:8000", cfg.APIBaseURL, "flags override JSON")
	assert.Equal(t, StoreFile, cfg.StoreKind)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, "smartmeet.db", cfg.DatabasePath, "absent JSON fields keep defaults")
}

func TestLoadConfig_JSONErrors(t *testing.T) {
	_, err := LoadConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	_, err = LoadConfig([]string{"-c", writeConfig(t, `{"request_timeout": true}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

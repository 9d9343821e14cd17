package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/smartmeet/internal/flagx"
)

var clientFlags = []string{"-a", "-s", "-d", "-f", "-t", "-i", "-o", "-l", "-L"}

// parseFlags overlays cfg with command-line flags.
//
//	-a string   backend base URL
//	-s string   session store: sqlite or file
//	-d string   SQLite database path
//	-f string   session file path (file store)
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
//	-o string   output format: table, json or yaml
//	-l string   log level
//	-L string   log file (rotated); empty logs to stderr
//
// Flags other than these are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("smartmeet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.StoreKind, "s", cfg.StoreKind, "session store (sqlite|file)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session file path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.OutputFormat, "o", cfg.OutputFormat, "output format (table|json|yaml)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFile, "L", cfg.LogFile, "log file")

	if err := fs.Parse(flagx.FilterArgs(args, clientFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations are only touched when given, so sub-second JSON values survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}

// Package config loads runtime configuration for the smartmeet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "store": "sqlite",
//	  "database_path": "smartmeet.db",
//	  "session_file": "smartmeet-session.json",
//	  "request_timeout": "15s",
//	  "online_check_interval": "5s",
//	  "output": "table",
//	  "log_level": "warn",
//	  "log_file": ""
//	}
//
// Environment variables are not read.
package config

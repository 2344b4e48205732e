package config

import (
	"os"
	"strings"

	"wafer-histogram/internal/logger"
)

const (
	AppName    = "Wafer Data Analysis"
	AppID      = "com.waferdata.histogram"
	AppVersion = "1.0.0"

	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// Config holds the settings read from the environment at startup
type Config struct {
	LogLevel     logger.LogLevel
	JSONLogs     bool
	WindowWidth  float32
	WindowHeight float32
}

// Load builds a Config from the process environment
func Load() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup for environment access
func FromLookup(lookup func(string) (string, bool)) Config {
	cfg := Config{
		LogLevel:     logger.InfoLevel,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = logger.ParseLevel(v)
	} else if v, ok := lookup("DEBUG"); ok && v == "1" {
		cfg.LogLevel = logger.DebugLevel
	}

	if v, ok := lookup("WAFERHIST_JSON_LOGS"); ok {
		cfg.JSONLogs = strings.EqualFold(v, "true") || v == "1"
	}

	return cfg
}

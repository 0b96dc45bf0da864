package config

import (
	"log/slog"
	"strings"
	"time"
)

// Defaults match the behavior of the control panel with no config file.
const (
	DefaultEndpoint = "http://localhost:8080/mcp"
	DefaultLogLevel = "warn"
)

// Transports.
const (
	TransportJSONRPC    = "jsonrpc"
	TransportStreamable = "streamable"
)

// Output modes.
const (
	OutputRaw  = "raw"
	OutputText = "text"
)

// Config is the top-level phase3ctl configuration.
type Config struct {
	Endpoint  string            `toml:"endpoint"`
	Transport string            `toml:"transport"`
	Timeout   string            `toml:"timeout"`
	Output    string            `toml:"output"`
	LogLevel  string            `toml:"log_level"`
	Headers   map[string]string `toml:"headers"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Transport: TransportJSONRPC,
		Output:    OutputRaw,
		LogLevel:  DefaultLogLevel,
	}
}

// IsStreamable returns true if tool calls go over the MCP streamable HTTP transport.
func (c *Config) IsStreamable() bool {
	return strings.EqualFold(strings.TrimSpace(c.Transport), TransportStreamable)
}

// IsTextOutput returns true if responses are unwrapped before printing.
func (c *Config) IsTextOutput() bool {
	return strings.EqualFold(strings.TrimSpace(c.Output), OutputText)
}

// CallTimeout returns the per-call timeout. Zero means wait indefinitely.
// Invalid values are reported by Validate and read as zero here.
func (c *Config) CallTimeout() time.Duration {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// SlogLevel maps log_level to a slog.Level, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	level, ok := parseLogLevel(c.LogLevel)
	if !ok {
		return slog.LevelWarn
	}
	return level
}

func parseLogLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return slog.LevelWarn, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

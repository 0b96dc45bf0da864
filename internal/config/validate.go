package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		errs = append(errs, errors.New("endpoint: must not be empty"))
	} else if u, err := url.ParseRequestURI(endpoint); err != nil {
		errs = append(errs, fmt.Errorf("endpoint: invalid URL %q: %w", cfg.Endpoint, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("endpoint: unsupported scheme %q, want http or https", u.Scheme))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "", TransportJSONRPC, TransportStreamable:
	default:
		errs = append(errs, fmt.Errorf("transport: unknown value %q, want %q or %q", cfg.Transport, TransportJSONRPC, TransportStreamable))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", OutputRaw, OutputText:
	default:
		errs = append(errs, fmt.Errorf("output: unknown value %q, want %q or %q", cfg.Output, OutputRaw, OutputText))
	}

	if strings.TrimSpace(cfg.Timeout) != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("timeout: invalid duration %q: %w", cfg.Timeout, err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("timeout: must be >= 0, got %q", cfg.Timeout))
		}
	}

	if _, ok := parseLogLevel(cfg.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", cfg.LogLevel))
	}

	for name := range cfg.Headers {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("headers: empty header name"))
		}
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/leapstack-labs/askql/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log.format: unknown format %q (want text|json)", c.Log.Format)
	}

	return ValidateBaseURL(c.BaseURL)
}

// ValidateBaseURL checks that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url %q: missing host", raw)
	}
	return nil
}

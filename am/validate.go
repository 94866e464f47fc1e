package am

import (
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Convert.BreakdownMaxChars < 0 {
		return errors.Newf("convert.breakdown_max_chars must be >= 0, got %d", c.Convert.BreakdownMaxChars)
	}

	if c.History.Limit < 0 {
		return errors.Newf("history.limit must be >= 0, got %d", c.History.Limit)
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.WithHint(
			errors.New("history.path cannot be empty when history is enabled"),
			"set history.enabled = false to turn history off")
	}

	// Port 0 would mean "any free port", which clients cannot find
	if c.Server.Port <= 0 || c.Server.Port > MaxServerPort {
		return errors.Newf("server.port must be between 1 and %d, got %d", MaxServerPort, c.Server.Port)
	}
	if c.Server.RequestsPerSecond < 0 {
		return errors.Newf("server.requests_per_second must be >= 0, got %g", c.Server.RequestsPerSecond)
	}
	if c.Server.RequestsPerSecond > 0 && c.Server.Burst < 1 {
		return errors.Newf("server.burst must be >= 1 when rate limiting is on, got %d", c.Server.Burst)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.Newf("server.max_body_bytes must be > 0, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.LogTheme != "" && !logger.HasTheme(c.Server.LogTheme) {
		return errors.WithHintf(
			errors.Newf("server.log_theme %q is not a known theme", c.Server.LogTheme),
			"use one of: %v", logger.Themes())
	}

	return nil
}

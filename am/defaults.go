package am

import (
	"fmt"

	"github.com/spf13/viper"
)

var defaultAllowedOrigins = []string{
	"http://localhost",
	"https://localhost",
	"http://127.0.0.1",
	"https://127.0.0.1",
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("convert.breakdown_max_chars", 20)
	v.SetDefault("convert.warn_unsupported", true)

	v.SetDefault("batch.tolerant", false)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "hiero.db")
	v.SetDefault("history.limit", 20)

	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", defaultAllowedOrigins)
	v.SetDefault("server.requests_per_second", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.log_theme", "everforest")

	v.SetDefault("mcp.name", "hiero")
}

// BindEnvVars binds settings whose env names do not follow the
// HIERO_SECTION_KEY pattern.
func BindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("history.path", "HIERO_HISTORY_PATH", "HIERO_DB_PATH")
	_ = v.BindEnv("server.log_theme", "HIERO_SERVER_LOG_THEME", "HIERO_LOG_THEME")
}

// GetServerPort returns the configured port, or DefaultServerPort
func (c *Config) GetServerPort() int {
	if c.Server.Port == 0 {
		return DefaultServerPort
	}
	return c.Server.Port
}

// GetServerAllowedOrigins returns the allowed CORS origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return append([]string(nil), defaultAllowedOrigins...)
	}
	return c.Server.AllowedOrigins
}

// GetServerLogTheme returns the log theme (default: everforest)
func (c *Config) GetServerLogTheme() string {
	if c.Server.LogTheme == "" {
		return "everforest"
	}
	return c.Server.LogTheme
}

// GetHistoryPath returns the history database path (default: hiero.db)
func (c *Config) GetHistoryPath() string {
	if c.History.Path == "" {
		return "hiero.db"
	}
	return c.History.Path
}

// GetMCPName returns the advertised MCP server name
func (c *Config) GetMCPName() string {
	if c.MCP.Name == "" {
		return "hiero"
	}
	return c.MCP.Name
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{History: {Enabled: %t, Path: %s}, Server: {Port: %d, LogTheme: %s}}",
		c.History.Enabled, c.History.Path, c.Server.Port, c.Server.LogTheme)
}

// Package am holds hiero's configuration ("as meant"): defaults, the TOML
// file cascade, HIERO_* environment overrides, validation and live reload.
package am

// Config represents the hiero configuration
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Batch   BatchConfig   `mapstructure:"batch"`
	History HistoryConfig `mapstructure:"history"`
	Server  ServerConfig  `mapstructure:"server"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

// ConvertConfig configures interactive conversion output
type ConvertConfig struct {
	BreakdownMaxChars int  `mapstructure:"breakdown_max_chars"` // Show per-character breakdown up to N runes (0 = never)
	WarnUnsupported   bool `mapstructure:"warn_unsupported"`    // Warn about unsupported characters before converting
}

// BatchConfig configures batch conversion
type BatchConfig struct {
	Tolerant bool `mapstructure:"tolerant"` // Collect per-element results instead of failing fast
}

// HistoryConfig configures the conversion history database
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`  // SQLite file (default: hiero.db)
	Limit   int    `mapstructure:"limit"` // Default rows for `hiero history`
}

// ServerConfig configures the HTTP/websocket server
type ServerConfig struct {
	Port              int      `mapstructure:"port"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	RequestsPerSecond float64  `mapstructure:"requests_per_second"` // Per client; 0 disables rate limiting
	Burst             int      `mapstructure:"burst"`
	MaxBodyBytes      int64    `mapstructure:"max_body_bytes"`
	LogTheme          string   `mapstructure:"log_theme"` // Color theme: gruvbox, everforest
}

// MCPConfig configures the Model Context Protocol server
type MCPConfig struct {
	Name string `mapstructure:"name"` // Server name advertised to clients
}

// Server port constants
const (
	DefaultServerPort = 8877
	MaxServerPort     = 65535
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the name searched for at every level of the cascade.
const ConfigFileName = "am.toml"

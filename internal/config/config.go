package config

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Source   SourceConfig   `toml:"source"`
	Redis    RedisConfig    `toml:"redis"`
	Search   SearchConfig   `toml:"search"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains the local SQLite store settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SourceConfig selects where universities are fetched from
type SourceConfig struct {
	Backend         string `toml:"backend"`   // builtin, file, sqlite, redis
	FilePath        string `toml:"file_path"` // JSON document export, for backend=file
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	BreakerFailures int    `toml:"breaker_failures"` // consecutive failures before the breaker opens, 0 disables
}

// Timeout returns the fetch timeout as a duration
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RedisConfig contains Redis document store settings
type RedisConfig struct {
	URL string `toml:"url"`
	Key string `toml:"key"` // hash holding one JSON document per university
}

// SearchConfig contains scoring and presentation constants
type SearchConfig struct {
	DefaultSort        string  `toml:"default_sort"`
	ScoreFloor         float64 `toml:"score_floor"`
	RecommendThreshold float64 `toml:"recommend_threshold"`
	PerPage            int     `toml:"per_page"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr              string   `toml:"addr"`
	CORSOrigins       []string `toml:"cors_origins"`
	RateLimitRequests int      `toml:"rate_limit_requests"`
	RateLimitWindow   string   `toml:"rate_limit_window"`
}

// Window parses the rate limit window, defaulting to one minute
func (s ServerConfig) Window() time.Duration {
	d, err := time.ParseDuration(s.RateLimitWindow)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/unimatch/unimatch.db",
		},
		Source: SourceConfig{
			Backend:         "builtin",
			FilePath:        "~/.local/share/unimatch/universities.json",
			TimeoutSeconds:  10,
			BreakerFailures: 5,
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
			Key: "unimatch:universities",
		},
		Search: SearchConfig{
			DefaultSort:        "grade",
			ScoreFloor:         0.5,
			RecommendThreshold: 0.8,
			PerPage:            10,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			CORSOrigins:       []string{"http://localhost:5173"},
			RateLimitRequests: 100,
			RateLimitWindow:   "1m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment overrides, applied after the file is parsed
const (
	EnvSource   = "UNIMATCH_SOURCE"
	EnvRedisURL = "UNIMATCH_REDIS_URL"
	EnvLogLevel = "UNIMATCH_LOG_LEVEL"
)

// Load reads and parses the configuration file.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	if expandedPath != "" {
		data, err := os.ReadFile(expandedPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// run 'unimatch config init' to create one
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source.Backend = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Source.FilePath, err = expandPath(c.Source.FilePath)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	validBackends := map[string]bool{"builtin": true, "file": true, "sqlite": true, "redis": true}
	if !validBackends[c.Source.Backend] {
		errs = append(errs, fmt.Errorf("source.backend must be builtin, file, sqlite or redis, got '%s'", c.Source.Backend))
	}
	if c.Source.Backend == "file" && c.Source.FilePath == "" {
		errs = append(errs, errors.New("source.file_path is required for the file backend"))
	}
	if c.Source.Backend == "sqlite" && c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required for the sqlite backend"))
	}
	if c.Source.Backend == "redis" && (c.Redis.URL == "" || c.Redis.Key == "") {
		errs = append(errs, errors.New("redis.url and redis.key are required for the redis backend"))
	}
	if c.Source.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("source.timeout_seconds must not be negative"))
	}
	if c.Source.BreakerFailures < 0 {
		errs = append(errs, errors.New("source.breaker_failures must not be negative"))
	}

	validSorts := map[string]bool{"grade": true, "name": true, "region": true, "match": true}
	if !validSorts[c.Search.DefaultSort] {
		errs = append(errs, fmt.Errorf("search.default_sort must be grade, name, region or match, got '%s'", c.Search.DefaultSort))
	}
	if c.Search.ScoreFloor < 0 || c.Search.ScoreFloor > 1 {
		errs = append(errs, errors.New("search.score_floor must be between 0 and 1"))
	}
	if c.Search.RecommendThreshold < 0 || c.Search.RecommendThreshold > 1 {
		errs = append(errs, errors.New("search.recommend_threshold must be between 0 and 1"))
	}
	if c.Search.PerPage < 1 || c.Search.PerPage > 100 {
		errs = append(errs, errors.New("search.per_page must be between 1 and 100"))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimitRequests < 0 {
		errs = append(errs, errors.New("server.rate_limit_requests must not be negative"))
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Errorf("logging.format must be 'json' or 'console', got '%s'", c.Logging.Format))
	}

	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates the data directory for the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Source.Backend != "builtin" {
		t.Errorf("expected Backend=builtin, got %s", cfg.Source.Backend)
	}

	if cfg.Search.ScoreFloor != 0.5 {
		t.Errorf("expected ScoreFloor=0.5, got %v", cfg.Search.ScoreFloor)
	}

	if cfg.Search.RecommendThreshold != 0.8 {
		t.Errorf("expected RecommendThreshold=0.8, got %v", cfg.Search.RecommendThreshold)
	}

	if cfg.Search.DefaultSort != "grade" {
		t.Errorf("expected DefaultSort=grade, got %s", cfg.Search.DefaultSort)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid backend",
			modify: func(c *Config) {
				c.Source.Backend = "firestore"
			},
			wantErr: true,
		},
		{
			name: "file backend without path",
			modify: func(c *Config) {
				c.Source.Backend = "file"
				c.Source.FilePath = ""
			},
			wantErr: true,
		},
		{
			name: "redis backend without key",
			modify: func(c *Config) {
				c.Source.Backend = "redis"
				c.Redis.Key = ""
			},
			wantErr: true,
		},
		{
			name: "invalid default sort",
			modify: func(c *Config) {
				c.Search.DefaultSort = "popularity"
			},
			wantErr: true,
		},
		{
			name: "score floor above one",
			modify: func(c *Config) {
				c.Search.ScoreFloor = 1.5
			},
			wantErr: true,
		},
		{
			name: "invalid per page",
			modify: func(c *Config) {
				c.Search.PerPage = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	data := `
[source]
backend = "file"
file_path = "/tmp/universities.json"

[search]
default_sort = "match"
recommend_threshold = 0.7
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Source.Backend != "file" {
		t.Errorf("expected Backend=file, got %s", cfg.Source.Backend)
	}
	if cfg.Search.DefaultSort != "match" {
		t.Errorf("expected DefaultSort=match, got %s", cfg.Search.DefaultSort)
	}
	if cfg.Search.RecommendThreshold != 0.7 {
		t.Errorf("expected RecommendThreshold=0.7, got %v", cfg.Search.RecommendThreshold)
	}
	// Untouched sections keep their defaults
	if cfg.Search.ScoreFloor != 0.5 {
		t.Errorf("expected ScoreFloor=0.5, got %v", cfg.Search.ScoreFloor)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.Backend != "builtin" {
		t.Errorf("expected Backend=builtin, got %s", cfg.Source.Backend)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvSource, "redis")
	t.Setenv(EnvRedisURL, "redis://cache:6379/1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.Backend != "redis" {
		t.Errorf("expected Backend=redis, got %s", cfg.Source.Backend)
	}
	if cfg.Redis.URL != "redis://cache:6379/1" {
		t.Errorf("unexpected Redis.URL %s", cfg.Redis.URL)
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Default()

	if got := cfg.Source.Timeout(); got != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", got)
	}
	if got := cfg.Server.Window(); got != time.Minute {
		t.Errorf("Window() = %v, want 1m", got)
	}

	cfg.Server.RateLimitWindow = "bogus"
	if got := cfg.Server.Window(); got != time.Minute {
		t.Errorf("Window() with bad value = %v, want 1m", got)
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "unimatch")
	dataDir := filepath.Join(home, ".local", "share", "unimatch")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'unimatch config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Try a search on the built-in dataset: unimatch search --grade 2.0")
	fmt.Println("  2. Load your own export into SQLite:     unimatch load universities.json")
	fmt.Println("  3. Set backend = \"sqlite\" under [source] to search it")
	fmt.Println()
	fmt.Println("For a shared Redis store set UNIMATCH_REDIS_URL or [redis] url, then:")
	fmt.Println("  unimatch load --target redis universities.json")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'unimatch config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# unimatch configuration

[database]
path = "~/.local/share/unimatch/unimatch.db"

[source]
backend = "builtin"    # builtin, file, sqlite, redis
file_path = "~/.local/share/unimatch/universities.json"
timeout_seconds = 10
breaker_failures = 5   # consecutive fetch failures before failing fast, 0 disables

[redis]
url = "redis://localhost:6379/0"
key = "unimatch:universities"

[search]
default_sort = "grade"       # grade, name, region, match
score_floor = 0.5            # lowest score an eligible department gets
recommend_threshold = 0.8    # score at or above which a result is recommended
per_page = 10

[server]
addr = ":8080"
cors_origins = ["http://localhost:5173"]
rate_limit_requests = 100
rate_limit_window = "1m"

[logging]
level = "info"      # debug, info, warn, error
format = "console"  # console, json

[mcp]
enabled = true
transport = "stdio"
`

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/config"
	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/source"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "unimatch",
	Short: "Match a student's grade to university departments",
	Long: `unimatch finds Korean university departments whose admission grade
range contains a student's average grade (1.0 best, 9.0 worst).

It provides:
  - Grade matching with a score and a recommended flag
  - Region, track, university type and department filters
  - A local SQLite or Redis document store
  - An HTTP API and an MCP server for AI assistant integration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/unimatch/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "unimatch", "config.toml")
	}
}

// loadConfig loads the config file and configures logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	return cfg, nil
}

// openSource loads config and opens the configured backend
func openSource() (*config.Config, *source.Source, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	src, err := source.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s source: %w", cfg.Source.Backend, err)
	}
	return cfg, src, nil
}

// newSearcher builds a Searcher with the configured scoring constants
func newSearcher(cfg *config.Config, g match.Gateway) *match.Searcher {
	return match.NewSearcher(g,
		match.WithScorer(match.ScorerConfig{
			Floor:              cfg.Search.ScoreFloor,
			RecommendThreshold: cfg.Search.RecommendThreshold,
		}),
		match.WithDefaultSort(match.SortKey(cfg.Search.DefaultSort)),
	)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unimatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}

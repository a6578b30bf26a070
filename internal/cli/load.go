package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/database"
	"github.com/vijay-prabhu/unimatch/internal/output"
	"github.com/vijay-prabhu/unimatch/internal/source"
)

var loadCmd = &cobra.Command{
	Use:   "load [file.json]",
	Short: "Load a JSON document export into a store",
	Long: `Load universities from a JSON document export into the SQLite database
or the Redis hash. Records without an ID get a generated one. Without a
file argument the built-in dataset is loaded.

Examples:
  unimatch load universities.json
  unimatch load --target redis universities.json
  unimatch load                      # Seed SQLite from the built-in dataset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

var loadTarget string

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadTarget, "target", source.BackendSQLite, "Store to load into (sqlite, redis)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := "builtin"
	universities, err := source.Builtin()
	if len(args) == 1 {
		name = args[0]
		universities, err = source.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if malformed := source.Describe(universities).Malformed; malformed > 0 {
		msg := fmt.Sprintf("Warning: %d department(s) have no grade range and will never match\n", malformed)
		fmt.Fprint(os.Stderr, NewTerminal().Color(ColorYellow, msg))
	}

	switch loadTarget {
	case source.BackendSQLite:
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		imp, err := db.LoadUniversities(ctx, name, universities)
		if err != nil {
			return fmt.Errorf("failed to load universities: %w", err)
		}
		return output.Output(outputFmt, imp)

	case source.BackendRedis:
		rg, err := source.NewRedisGateway(cfg.Redis.URL, cfg.Redis.Key)
		if err != nil {
			return err
		}
		defer rg.Close()

		for i := range universities {
			if universities[i].ID == "" {
				universities[i].ID = uuid.New().String()
			}
		}
		if err := rg.Store(ctx, universities); err != nil {
			return fmt.Errorf("failed to store universities: %w", err)
		}
		fmt.Printf("Stored %d universities in %s\n", len(universities), cfg.Redis.Key)
		return nil

	default:
		return fmt.Errorf("unknown load target %q (use sqlite or redis)", loadTarget)
	}
}

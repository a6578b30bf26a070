package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/source"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export universities as a JSON document",
	Long: `Export every university of the configured source as a JSON document.

The output can be read back with 'unimatch load' or served with
backend = "file".

Examples:
  unimatch export > universities.json
  unimatch export --file ~/.local/share/unimatch/universities.json`,
	RunE: runExport,
}

var exportFile string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFile, "file", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	universities, err := src.FetchAllUniversities(ctx)
	if err != nil {
		return fmt.Errorf("failed to read universities: %w", err)
	}

	if exportFile == "" {
		return source.Encode(os.Stdout, universities)
	}

	f, err := os.Create(exportFile)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := source.Encode(f, universities); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Exported %d universities to %s\n", len(universities), exportFile)
	return nil
}

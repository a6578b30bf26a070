package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/geo"
	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show university details",
	Long: `Show a university with all of its departments and admission grade ranges.

The identifier can be:
  - University ID
  - Exact university name

Examples:
  unimatch show seoul-001
  unimatch show 부산대학교 --marker`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showMarker bool

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showMarker, "marker", false, "Print the map marker position after the details")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	identifier := args[0]

	_, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	u, err := src.Lookup(ctx, identifier)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if u == nil {
		return fmt.Errorf("university not found: %s", identifier)
	}

	if u.Position == nil {
		// Positions of other campuses at the same address fill the gap
		if all, err := src.FetchAllUniversities(ctx); err == nil {
			if pos, err := geo.Locate(ctx, geo.NewStaticGeocoder(all), u); err == nil {
				u.Position = &pos
			} else {
				logging.Debug().Err(err).Str("address", u.Address).Msg("no position for university")
			}
		}
	}

	if err := output.Output(outputFmt, u); err != nil {
		return err
	}

	if showMarker && outputFmt != "json" {
		if u.Position == nil {
			return fmt.Errorf("no map position for %s", u.Name)
		}
		fmt.Println()
		return geo.NewTextRenderer(os.Stdout).RenderMarker(*u.Position)
	}
	return nil
}

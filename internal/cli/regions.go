package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/output"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List region codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Output(outputFmt, university.Regions)
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

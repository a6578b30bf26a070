package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/output"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List universities",
	Long: `List universities with optional filters.

Examples:
  unimatch list                      # List all universities
  unimatch list --region busan       # Universities in 부산광역시
  unimatch list --est-type 국립       # National universities only
  unimatch list --name 서울 -o json   # Name contains 서울, as JSON`,
	RunE: runList,
}

var (
	listRegion   string
	listUnivType string
	listEstType  string
	listName     string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listRegion, "region", "", "Region code or name")
	listCmd.Flags().StringVar(&listUnivType, "univ-type", "", "University type")
	listCmd.Flags().StringVar(&listEstType, "est-type", "", "Establishment type")
	listCmd.Flags().StringVar(&listName, "name", "", "Name substring")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	all, err := src.FetchAllUniversities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list universities: %w", err)
	}

	filter := match.NewFilter(match.Filters{
		Region:         listRegion,
		UniversityType: listUnivType,
		EstType:        listEstType,
	})
	name := strings.ToLower(strings.TrimSpace(listName))

	universities := []university.University{}
	for i := range all {
		if !filter.UniversityMatches(&all[i]) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(all[i].Name), name) {
			continue
		}
		universities = append(universities, all[i])
	}

	return output.Output(outputFmt, universities)
}

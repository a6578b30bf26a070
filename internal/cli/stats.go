package cli

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/database"
	"github.com/vijay-prabhu/unimatch/internal/output"
	"github.com/vijay-prabhu/unimatch/internal/source"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	Long: `Display aggregate statistics about the university dataset.

Examples:
  unimatch stats             # Overall stats
  unimatch stats --detailed  # Grade distribution and top universities`,
	RunE: runStats,
}

var statsDetailed bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsDetailed, "detailed", false, "Show detailed statistics with breakdowns")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	stats, err := src.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if !statsDetailed {
		return output.Output(outputFmt, stats)
	}

	detailed, err := getDetailedStats(ctx, src, stats)
	if err != nil {
		return fmt.Errorf("failed to get detailed stats: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(detailed)
	}

	printDetailedStats(detailed)
	return nil
}

// DetailedStats contains extended statistics
type DetailedStats struct {
	Basic        *database.Stats  `json:"basic"`
	Distribution []GradeBucket    `json:"grade_distribution"`
	ByUniversity []UniversityStat `json:"by_university"`
}

// GradeBucket counts departments whose lower bound falls in [From, From+1)
type GradeBucket struct {
	From  int `json:"from"`
	Count int `json:"count"`
}

// UniversityStat shows statistics per university
type UniversityStat struct {
	Name        string  `json:"name"`
	Departments int     `json:"departments"`
	BestGrade   float64 `json:"best_grade"`
}

func getDetailedStats(ctx context.Context, src *source.Source, basic *database.Stats) (*DetailedStats, error) {
	universities, err := src.FetchAllUniversities(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make([]GradeBucket, 8)
	for i := range buckets {
		buckets[i].From = i + 1
	}

	byUniversity := make([]UniversityStat, 0, len(universities))
	for _, u := range universities {
		stat := UniversityStat{Name: u.Name, BestGrade: math.Inf(1)}
		for i := range u.Departments {
			lo, _, ok := u.Departments[i].GradeBounds()
			if !ok {
				continue
			}
			stat.Departments++
			stat.BestGrade = math.Min(stat.BestGrade, lo)

			idx := int(lo) - 1
			if idx < 0 {
				idx = 0
			}
			if idx >= len(buckets) {
				idx = len(buckets) - 1
			}
			buckets[idx].Count++
		}
		if stat.Departments > 0 {
			byUniversity = append(byUniversity, stat)
		}
	}

	// Most selective first
	sort.Slice(byUniversity, func(i, j int) bool {
		if byUniversity[i].BestGrade != byUniversity[j].BestGrade {
			return byUniversity[i].BestGrade < byUniversity[j].BestGrade
		}
		return byUniversity[i].Name < byUniversity[j].Name
	})
	if len(byUniversity) > 10 {
		byUniversity = byUniversity[:10]
	}

	return &DetailedStats{
		Basic:        basic,
		Distribution: buckets,
		ByUniversity: byUniversity,
	}, nil
}

func printDetailedStats(d *DetailedStats) {
	fmt.Println("University Dataset Statistics (Detailed)")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println(strings.Repeat("-", 30))
	fmt.Printf("  Universities:          %d\n", d.Basic.Universities)
	fmt.Printf("  Departments:           %d\n", d.Basic.Departments)
	fmt.Printf("  Missing grade range:   %d\n", d.Basic.Malformed)
	fmt.Println()

	if len(d.ByUniversity) > 0 {
		fmt.Println("Most Selective Universities")
		fmt.Println(strings.Repeat("-", 30))
		for _, u := range d.ByUniversity {
			fmt.Printf("  %-20s best %.2f  %d department(s)\n", truncate(u.Name, 20), u.BestGrade, u.Departments)
		}
		fmt.Println()
	}

	// Distribution chart (ASCII)
	fmt.Println("Lower Grade Bound Distribution")
	fmt.Println(strings.Repeat("-", 30))
	maxCount := 0
	for _, b := range d.Distribution {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	if maxCount == 0 {
		fmt.Println("  No departments with a grade range")
		return
	}
	for _, b := range d.Distribution {
		bar := strings.Repeat("█", (b.Count*20)/maxCount)
		fmt.Printf("  %d.0-%d.0 %s %d\n", b.From, b.From+1, bar, b.Count)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

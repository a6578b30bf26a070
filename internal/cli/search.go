package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/output"
	"github.com/vijay-prabhu/unimatch/internal/validation"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find departments matching a grade",
	Long: `Find university departments whose admission grade range contains your grade.

Grades run from 1.0 (best) to 9.0. Departments scoring 80% or more are
marked as recommended.

Examples:
  unimatch search --grade 1.8
  unimatch search --grade 2.4 --type subject --region seoul
  unimatch search --grade 3.1 --department 컴퓨터 --sort match
  unimatch search --grade 2.0 --min-grade 1.5 --max-grade 2.5 -o json`,
	RunE: runSearch,
}

var (
	searchGrade      float64
	searchType       string
	searchRegion     string
	searchSort       string
	searchUnivType   string
	searchEstType    string
	searchMinGrade   float64
	searchMaxGrade   float64
	searchDepartment string
	searchPage       int
	searchPerPage    int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Float64Var(&searchGrade, "grade", 0, "Your average grade, 1.0 to 9.0 (required)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Admission track (comprehensive, subject)")
	searchCmd.Flags().StringVar(&searchRegion, "region", "", "Region code or name (see 'unimatch regions')")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order (grade, name, region, match)")
	searchCmd.Flags().StringVar(&searchUnivType, "univ-type", "", "University type, e.g. 일반대학")
	searchCmd.Flags().StringVar(&searchEstType, "est-type", "", "Establishment type, e.g. 국립, 사립")
	searchCmd.Flags().Float64Var(&searchMinGrade, "min-grade", 0, "Only search when your grade is at least this")
	searchCmd.Flags().Float64Var(&searchMaxGrade, "max-grade", 0, "Only search when your grade is at most this")
	searchCmd.Flags().StringVar(&searchDepartment, "department", "", "Department name substring")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page to show")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 0, "Results per page (default from config)")

	searchCmd.MarkFlagRequired("grade")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	params := &validation.SearchParams{
		Grade:          searchGrade,
		AdmissionType:  searchType,
		Region:         searchRegion,
		SortBy:         searchSort,
		UniversityType: searchUnivType,
		EstType:        searchEstType,
		Department:     searchDepartment,
		Page:           searchPage,
		PerPage:        searchPerPage,
	}
	if cmd.Flags().Changed("min-grade") {
		params.MinGrade = &searchMinGrade
	}
	if cmd.Flags().Changed("max-grade") {
		params.MaxGrade = &searchMaxGrade
	}
	if err := params.Validate(); err != nil {
		return err
	}

	cfg, src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	results, err := newSearcher(cfg, src).Search(ctx, params.Query())
	if err != nil {
		if errors.Is(err, match.ErrSearchFailed) {
			return fmt.Errorf("could not load universities from %s source: %w", src.Backend, err)
		}
		return err
	}

	perPage := params.PerPage
	if perPage == 0 {
		perPage = cfg.Search.PerPage
	}
	page := match.Paginate(results, params.Page, perPage)

	if outputFmt == "json" {
		return output.JSON(page)
	}

	if len(results) == 0 {
		fmt.Printf("No matching departments found for grade %.1f\n", params.Grade)
		return nil
	}

	summary := match.Summarize(results)
	fmt.Printf("Found %d department(s) for grade %.1f, %d recommended\n\n",
		summary.Total, params.Grade, summary.Recommended)

	markRecommended()
	return output.Output(outputFmt, page)
}

package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/unimatch/internal/database"
	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

// RecommendedMark flags recommended results in table output
var RecommendedMark = "★"

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case match.Page:
		return pageTable(w, v)
	case *match.Page:
		return pageTable(w, *v)
	case []match.Result:
		return resultsTable(w, v)
	case []university.University:
		return universitiesTable(w, v)
	case *university.University:
		return universityDetail(w, v)
	case []university.Region:
		return regionsTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case *database.Import:
		return importDetail(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultsTable(w io.Writer, results []match.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching departments found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("", "UNIVERSITY", "DEPARTMENT", "TRACK", "GRADES", "REGION", "MATCH")

	for _, r := range results {
		mark := ""
		if r.Recommended {
			mark = RecommendedMark
		}
		if err := table.Append([]string{
			mark,
			truncate(r.University.Name, 16),
			truncate(r.Department.DepartmentName, 20),
			r.Department.AdmissionType.Label(),
			formatBounds(&r.Department),
			shortRegion(r.University.Region),
			formatScore(r.Score),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func pageTable(w io.Writer, p match.Page) error {
	if err := resultsTable(w, p.Items); err != nil {
		return err
	}
	if p.Total == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n%d result(s), page %d of %d", p.Total, p.Page, p.TotalPages)
	if window := match.PageWindow(p.Page, p.TotalPages, 2); len(window) > 0 {
		fmt.Fprintf(w, "  [%s]", formatWindow(window, p.Page))
	}
	fmt.Fprintln(w)
	return nil
}

func universitiesTable(w io.Writer, universities []university.University) error {
	if len(universities) == 0 {
		fmt.Fprintln(w, "No universities found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "NAME", "REGION", "TYPE", "EST", "DEPTS")

	for _, u := range universities {
		if err := table.Append([]string{
			u.ID,
			truncate(u.Name, 20),
			u.Region,
			u.Type,
			u.EstType,
			strconv.Itoa(len(u.Departments)),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func universityDetail(w io.Writer, u *university.University) error {
	fmt.Fprintf(w, "Name:        %s\n", u.Name)
	if u.CampusName != "" {
		fmt.Fprintf(w, "Campus:      %s\n", u.CampusName)
	}
	fmt.Fprintf(w, "ID:          %s\n", u.ID)
	if u.Address != "" {
		fmt.Fprintf(w, "Address:     %s\n", u.Address)
	}
	fmt.Fprintf(w, "Region:      %s\n", u.Region)
	if u.Type != "" || u.EstType != "" {
		fmt.Fprintf(w, "Type:        %s\n", strings.TrimSpace(u.Type+" "+u.EstType))
	}
	if u.Link != "" {
		fmt.Fprintf(w, "Link:        %s\n", u.Link)
	}
	if u.Position != nil {
		fmt.Fprintf(w, "Position:    %.4f, %.4f\n", u.Position.Lat, u.Position.Lng)
	}

	if len(u.Departments) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("ID", "DEPARTMENT", "TRACK", "GRADES")
	for i := range u.Departments {
		d := &u.Departments[i]
		if err := table.Append([]string{
			d.ID,
			d.DepartmentName,
			d.AdmissionType.Label(),
			formatBounds(d),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func regionsTable(w io.Writer, regions []university.Region) error {
	table := tablewriter.NewWriter(w)
	table.Header("CODE", "NAME")
	for _, r := range regions {
		if err := table.Append([]string{r.Code, r.Name}); err != nil {
			return err
		}
	}
	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Dataset Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Universities:           %d\n", s.Universities)
	fmt.Fprintf(w, "Departments:            %d\n", s.Departments)
	if s.Malformed > 0 {
		fmt.Fprintf(w, "Missing grade bounds:   %d\n", s.Malformed)
	}
	if s.MinGrade != nil && s.MaxGrade != nil {
		fmt.Fprintf(w, "Grade range:            %.1f - %.1f\n", *s.MinGrade, *s.MaxGrade)
	}
	if s.AvgMinGrade != nil {
		fmt.Fprintf(w, "Avg minimum grade:      %.2f\n", *s.AvgMinGrade)
	}
	if s.LastImport != nil {
		fmt.Fprintf(w, "Last import:            %s (%s)\n",
			s.LastImport.ImportedAt.Format("Jan 02, 2006 15:04"), s.LastImport.Source)
	}

	if len(s.ByRegion) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.Header("REGION", "UNIVERSITIES")
		for _, k := range sortedKeys(s.ByRegion) {
			if err := table.Append([]string{k, strconv.Itoa(s.ByRegion[k])}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(s.ByAdmission) > 0 {
		fmt.Fprintln(w)
		for _, k := range sortedKeys(s.ByAdmission) {
			fmt.Fprintf(w, "%-24s%d\n", university.AdmissionType(k).Label()+":", s.ByAdmission[k])
		}
	}

	return nil
}

func importDetail(w io.Writer, imp *database.Import) error {
	fmt.Fprintf(w, "Loaded %d universities (%d departments) from %s\n",
		imp.Universities, imp.Departments, imp.Source)
	return nil
}

func formatBounds(d *university.Department) string {
	lo, hi, ok := d.GradeBounds()
	if !ok {
		return "-"
	}
	if lo == hi {
		return strconv.FormatFloat(lo, 'f', 1, 64)
	}
	return fmt.Sprintf("%.1f-%.1f", lo, hi)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%d%%", int(score*100+0.5))
}

func formatWindow(window []int, current int) string {
	parts := make([]string, len(window))
	for i, n := range window {
		switch {
		case n == match.Ellipsis:
			parts[i] = "..."
		case n == current:
			parts[i] = "(" + strconv.Itoa(n) + ")"
		default:
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, " ")
}

// shortRegion drops the administrative suffix: 서울특별시 -> 서울
func shortRegion(region string) string {
	for _, suffix := range []string{"특별자치시", "특별자치도", "특별시", "광역시", "도"} {
		if trimmed := strings.TrimSuffix(region, suffix); trimmed != region && trimmed != "" {
			return trimmed
		}
	}
	return region
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

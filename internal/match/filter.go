package match

import (
	"strings"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// GradeRange clamps the user's own grade
type GradeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters narrows a search. Zero values disable each predicate.
type Filters struct {
	Region         string                   `json:"region,omitempty"`
	SortBy         SortKey                  `json:"sortBy,omitempty"`
	AdmissionType  university.AdmissionType `json:"admissionType,omitempty"`
	UniversityType string                   `json:"universityType,omitempty"`
	EstType        string                   `json:"estType,omitempty"`
	GradeRange     *GradeRange              `json:"gradeRange,omitempty"`
}

// Filter decides department eligibility for one search.
// Every predicate is AND-ed; the first failing one excludes the candidate.
type Filter struct {
	filters Filters
	region  string
}

// NewFilter creates a Filter for the given settings
func NewFilter(filters Filters) *Filter {
	return &Filter{
		filters: filters,
		region:  university.ResolveRegion(filters.Region),
	}
}

// AllowsGrade applies the optional clamp to the user's grade.
// It is a per-search gate, independent of any department.
func (f *Filter) AllowsGrade(grade float64) bool {
	r := f.filters.GradeRange
	if r == nil {
		return true
	}
	return grade >= r.Min && grade <= r.Max
}

// Eligible reports whether department d of university u passes every predicate
func (f *Filter) Eligible(u *university.University, d *university.Department, grade float64, admission university.AdmissionType) bool {
	// Grade range is the primary test and must agree with the scorer
	if !d.Accepts(grade) {
		return false
	}

	if !matchesAdmission(d.AdmissionType, admission) {
		return false
	}

	return f.UniversityMatches(u)
}

// UniversityMatches applies the university-level predicates only
func (f *Filter) UniversityMatches(u *university.University) bool {
	if f.region != university.RegionAll && !strings.Contains(u.Region, f.region) {
		return false
	}

	if !matchesExact(u.Type, f.filters.UniversityType) {
		return false
	}

	return matchesExact(u.EstType, f.filters.EstType)
}

// matchesAdmission passes departments that carry no track of their own
func matchesAdmission(dept, want university.AdmissionType) bool {
	if want == "" || dept == "" {
		return true
	}
	return dept == want
}

func matchesExact(value, want string) bool {
	if want == "" || want == university.RegionAll {
		return true
	}
	return value == want
}

// FilterByDepartmentName keeps results whose department name contains query,
// case-insensitively, preserving order. An empty query returns results as-is.
func FilterByDepartmentName(results []Result, query string) []Result {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return results
	}

	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Department.DepartmentName), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

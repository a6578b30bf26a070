package match

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the result ordering
type SortKey string

const (
	SortByGrade  SortKey = "grade"
	SortByName   SortKey = "name"
	SortByRegion SortKey = "region"
	SortByMatch  SortKey = "match"
)

// SortKeys lists the recognized keys
var SortKeys = []SortKey{SortByGrade, SortByName, SortByRegion, SortByMatch}

// ParseSortKey maps a string to a SortKey. Unrecognized keys fall back to match.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByGrade, SortByName, SortByRegion, SortByMatch:
		return k
	default:
		return SortByMatch
	}
}

// Sort returns a new slice ordered by key; results is left untouched.
// Equal keys keep their original relative order.
func Sort(results []Result, key SortKey) []Result {
	sorted := make([]Result, len(results))
	copy(sorted, results)

	var less func(a, b *Result) bool
	switch key {
	case SortByGrade:
		less = func(a, b *Result) bool {
			return minGradeOf(a) < minGradeOf(b)
		}
	case SortByName:
		// collate.Collator is not safe for concurrent use; one per call
		c := collate.New(language.Korean)
		less = func(a, b *Result) bool {
			return c.CompareString(a.University.Name, b.University.Name) < 0
		}
	case SortByRegion:
		c := collate.New(language.Korean)
		less = func(a, b *Result) bool {
			return c.CompareString(a.University.Region, b.University.Region) < 0
		}
	default:
		less = func(a, b *Result) bool {
			return a.Score > b.Score
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	return sorted
}

// minGradeOf is only called on eligible results, which always have bounds
func minGradeOf(r *Result) float64 {
	min, _, _ := r.Department.GradeBounds()
	return min
}

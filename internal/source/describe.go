package source

import (
	"github.com/vijay-prabhu/unimatch/internal/database"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

// Describe computes dataset statistics in memory, matching what the
// SQLite store reports from its tables.
func Describe(universities []university.University) *database.Stats {
	stats := &database.Stats{
		Universities: len(universities),
		ByRegion:     map[string]int{},
		ByEstType:    map[string]int{},
		ByAdmission:  map[string]int{},
	}

	var sumMin float64
	var withMin int
	for _, u := range universities {
		if u.Region != "" {
			stats.ByRegion[u.Region]++
		}
		if u.EstType != "" {
			stats.ByEstType[u.EstType]++
		}

		for i := range u.Departments {
			d := &u.Departments[i]
			stats.Departments++
			if d.AdmissionType != "" {
				stats.ByAdmission[string(d.AdmissionType)]++
			}

			lo, hi, ok := d.GradeBounds()
			if !ok {
				stats.Malformed++
				continue
			}
			if stats.MinGrade == nil || lo < *stats.MinGrade {
				stats.MinGrade = university.Float64(lo)
			}
			if stats.MaxGrade == nil || hi > *stats.MaxGrade {
				stats.MaxGrade = university.Float64(hi)
			}
			sumMin += lo
			withMin++
		}
	}

	if withMin > 0 {
		stats.AvgMinGrade = university.Float64(sumMin / float64(withMin))
	}
	return stats
}

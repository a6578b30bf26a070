package match

// Summary aggregates a result set
type Summary struct {
	Total       int            `json:"total"`
	Recommended int            `json:"recommended"`
	BestScore   float64        `json:"bestScore"`
	ByRegion    map[string]int `json:"byRegion"`
	ByEstType   map[string]int `json:"byEstType"`
}

// Summarize returns statistics about search results
func Summarize(results []Result) Summary {
	s := Summary{
		Total:     len(results),
		ByRegion:  make(map[string]int),
		ByEstType: make(map[string]int),
	}

	for _, r := range results {
		if r.Recommended {
			s.Recommended++
		}
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
		s.ByRegion[r.University.Region]++
		if r.University.EstType != "" {
			s.ByEstType[r.University.EstType]++
		}
	}

	return s
}

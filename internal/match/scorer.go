package match

import "github.com/vijay-prabhu/unimatch/internal/university"

// ScorerConfig configures the grade match scoring
type ScorerConfig struct {
	Floor              float64 // Minimum score for any eligible department
	RecommendThreshold float64 // Score at or above which a result is recommended
}

// DefaultScorerConfig returns the stock scoring constants.
// Both are tunables, not derived values.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Floor:              0.5,
		RecommendThreshold: 0.8,
	}
}

// Scorer computes a normalized fit between a user grade and a department
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a new Scorer with the given configuration
func NewScorer(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Calculate returns a score in [0,1] for userGrade against [minGrade, maxGrade].
// Lower grades are better, so the score grows toward the min end.
// 0 is reserved for grades outside the range.
func (s *Scorer) Calculate(userGrade, minGrade, maxGrade float64) float64 {
	if userGrade < minGrade || userGrade > maxGrade {
		return 0
	}

	gradeRange := maxGrade - minGrade
	if gradeRange == 0 {
		return 1.0
	}

	normalizedPosition := (maxGrade - userGrade) / gradeRange
	if normalizedPosition < s.config.Floor {
		return s.config.Floor
	}
	return normalizedPosition
}

// Score scores a department, returning 0 when its grade bounds are missing
func (s *Scorer) Score(userGrade float64, d *university.Department) float64 {
	min, max, ok := d.GradeBounds()
	if !ok {
		return 0
	}
	return s.Calculate(userGrade, min, max)
}

// Recommended reports whether a score clears the recommend threshold
func (s *Scorer) Recommended(score float64) bool {
	return score >= s.config.RecommendThreshold
}

// Explain returns a human-readable explanation of the score
func (s *Scorer) Explain(score float64) string {
	switch {
	case score <= 0:
		return "out of range - grade not accepted"
	case s.Recommended(score):
		return "strong match - recommended"
	default:
		return "within range - near the weaker edge"
	}
}

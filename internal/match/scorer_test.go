package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

func TestScorer_OutOfRangeIsZero(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	tests := []struct {
		name          string
		grade, lo, hi float64
	}{
		{"better than range", 1.0, 1.5, 2.5},
		{"worse than range", 3.0, 1.5, 2.5},
		{"just past max", 2.51, 1.5, 2.5},
		{"degenerate range miss", 1.1, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, s.Calculate(tt.grade, tt.lo, tt.hi))
		})
	}
}

func TestScorer_InRangeBoundsAndMonotonic(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())
	lo, hi := 2.0, 4.0

	prev := 1.1
	for i := 0; i <= 20; i++ {
		g := lo + (hi-lo)*float64(i)/20
		score := s.Calculate(g, lo, hi)
		assert.GreaterOrEqual(t, score, 0.5, "grade %.1f", g)
		assert.LessOrEqual(t, score, 1.0, "grade %.1f", g)
		assert.LessOrEqual(t, score, prev, "score must not increase as grade worsens (%.1f)", g)
		prev = score
	}

	assert.Equal(t, 1.0, s.Calculate(lo, lo, hi))
	assert.Equal(t, 0.5, s.Calculate(hi, lo, hi))
	assert.InDelta(t, 0.75, s.Calculate(2.5, lo, hi), 1e-9)
}

func TestScorer_DegenerateRange(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	assert.Equal(t, 1.0, s.Calculate(1.0, 1.0, 1.0))
	assert.Equal(t, 0.0, s.Calculate(1.2, 1.0, 1.0))
}

func TestScorer_MalformedDepartment(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	d := university.Department{MinGrade: university.Float64(1.0)}
	assert.Equal(t, 0.0, s.Score(1.0, &d))
}

func TestScorer_CustomFloor(t *testing.T) {
	s := NewScorer(ScorerConfig{Floor: 0.2, RecommendThreshold: 0.9})

	assert.InDelta(t, 0.25, s.Calculate(3.5, 2.0, 4.0), 1e-9)
	assert.Equal(t, 0.2, s.Calculate(4.0, 2.0, 4.0))
	assert.False(t, s.Recommended(0.85))
	assert.True(t, s.Recommended(0.9))
}

func TestScorer_Explain(t *testing.T) {
	s := NewScorer(DefaultScorerConfig())

	assert.Contains(t, s.Explain(0), "out of range")
	assert.Contains(t, s.Explain(0.8), "recommended")
	assert.Contains(t, s.Explain(0.5), "within range")
}

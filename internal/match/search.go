package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/metrics"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

var (
	// ErrSearchFailed marks a search whose data fetch failed.
	// Callers must treat results as unavailable, not as "no matches".
	ErrSearchFailed = errors.New("search failed")

	// ErrInvalidQuery marks a query rejected before any fetch
	ErrInvalidQuery = errors.New("invalid query")
)

// Gateway retrieves the university documents a search runs over.
// A failed fetch must return an error, never an empty list.
type Gateway interface {
	FetchAllUniversities(ctx context.Context) ([]university.University, error)
}

// GatewayFunc adapts a function to the Gateway interface
type GatewayFunc func(ctx context.Context) ([]university.University, error)

// FetchAllUniversities calls f(ctx)
func (f GatewayFunc) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	return f(ctx)
}

// Query holds everything one search needs. There is no other search state.
type Query struct {
	Grade          float64                  `json:"grade"`
	AdmissionType  university.AdmissionType `json:"admissionType"`
	DepartmentName string                   `json:"departmentName,omitempty"`
	Filters        Filters                  `json:"filters"`
}

// Validate checks the grade scale and admission track
func (q *Query) Validate() error {
	if math.IsNaN(q.Grade) || q.Grade < university.BestGrade || q.Grade > university.WorstGrade {
		return fmt.Errorf("%w: grade must be between %.1f and %.1f, got %v",
			ErrInvalidQuery, university.BestGrade, university.WorstGrade, q.Grade)
	}
	if q.AdmissionType != "" {
		if _, err := university.ParseAdmissionType(string(q.AdmissionType)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
	}
	if r := q.Filters.GradeRange; r != nil && r.Min > r.Max {
		return fmt.Errorf("%w: grade range min %.1f exceeds max %.1f", ErrInvalidQuery, r.Min, r.Max)
	}
	return nil
}

// admission returns the track to filter on; Filters.AdmissionType wins when set
func (q *Query) admission() university.AdmissionType {
	if q.Filters.AdmissionType != "" {
		return q.Filters.AdmissionType
	}
	return q.AdmissionType
}

// Result pairs a university with one of its eligible departments
type Result struct {
	University  university.University `json:"university"`
	Department  university.Department `json:"department"`
	Score       float64               `json:"matchingGrade"`
	Recommended bool                  `json:"isRecommended"`
}

// Searcher composes fetch, filter, score and sort.
// It holds no per-search state and is safe for concurrent use.
type Searcher struct {
	gateway     Gateway
	scorer      *Scorer
	defaultSort SortKey
}

// Option configures a Searcher
type Option func(*Searcher)

// WithScorer overrides the scoring constants
func WithScorer(cfg ScorerConfig) Option {
	return func(s *Searcher) {
		s.scorer = NewScorer(cfg)
	}
}

// WithDefaultSort sets the key used when a query names none
func WithDefaultSort(key SortKey) Option {
	return func(s *Searcher) {
		s.defaultSort = key
	}
}

// NewSearcher creates a Searcher over the given gateway
func NewSearcher(gateway Gateway, opts ...Option) *Searcher {
	s := &Searcher{
		gateway:     gateway,
		scorer:      NewScorer(DefaultScorerConfig()),
		defaultSort: SortByGrade,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scorer returns the scorer in use
func (s *Searcher) Scorer() *Scorer {
	return s.scorer
}

// Search runs one search. An empty, non-nil slice means no matches;
// a fetch error is wrapped in ErrSearchFailed and no results are returned.
func (s *Searcher) Search(ctx context.Context, q Query) ([]Result, error) {
	start := time.Now()

	if err := q.Validate(); err != nil {
		metrics.RecordSearch(metrics.OutcomeInvalid, 0, time.Since(start))
		return nil, err
	}

	universities, err := s.gateway.FetchAllUniversities(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("university fetch failed")
		metrics.RecordSearch(metrics.OutcomeFailed, 0, time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	results := s.Match(ctx, universities, q)

	sortBy := q.Filters.SortBy
	if sortBy == "" {
		sortBy = s.defaultSort
	}
	results = Sort(results, ParseSortKey(string(sortBy)))

	// Applied after sorting so matches keep their sorted order
	results = FilterByDepartmentName(results, q.DepartmentName)

	logging.Ctx(ctx).Debug().
		Float64("grade", q.Grade).
		Str("admission_type", string(q.admission())).
		Str("sort_by", string(sortBy)).
		Int("universities", len(universities)).
		Int("results", len(results)).
		Msg("search complete")

	outcome := metrics.OutcomeOK
	if len(results) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordSearch(outcome, len(results), time.Since(start))

	return results, nil
}

// Match filters and scores universities without fetching or sorting.
// Results follow dataset order.
func (s *Searcher) Match(ctx context.Context, universities []university.University, q Query) []Result {
	results := []Result{}

	filter := NewFilter(q.Filters)
	if !filter.AllowsGrade(q.Grade) {
		return results
	}

	admission := q.admission()
	for i := range universities {
		u := &universities[i]
		for j := range u.Departments {
			d := &u.Departments[j]

			if _, _, ok := d.GradeBounds(); !ok {
				logging.Ctx(ctx).Debug().
					Str("university", u.Name).
					Str("department", d.ID).
					Msg("skipping department without grade bounds")
				continue
			}

			if !filter.Eligible(u, d, q.Grade, admission) {
				continue
			}

			dept := *d
			if dept.UniversityName == "" {
				dept.UniversityName = u.Name
			}

			score := s.scorer.Score(q.Grade, &dept)
			results = append(results, Result{
				University:  *u,
				Department:  dept,
				Score:       score,
				Recommended: s.scorer.Recommended(score),
			})
		}
	}

	return results
}

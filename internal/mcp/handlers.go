package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/university"
	"github.com/vijay-prabhu/unimatch/internal/validation"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (s *Server) registerHandlers() {
	s.handlers["search_universities"] = s.handleSearchUniversities
	s.handlers["get_university"] = s.handleGetUniversity
	s.handlers["list_regions"] = s.handleListRegions
	s.handlers["get_stats"] = s.handleGetStats
}

// searchUniversitiesParams takes the shared search parameters; limit is an
// alias for per_page kept for clients that do not page
type searchUniversitiesParams struct {
	validation.SearchParams
	Limit int `json:"limit"`
}

type searchUniversitiesResult struct {
	Results    []match.Result `json:"results"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Total      int            `json:"total"`
	Summary    match.Summary  `json:"summary"`
}

func (s *Server) handleSearchUniversities(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p searchUniversitiesParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	if err := p.SearchParams.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	results, err := s.searcher.Search(ctx, p.Query())
	if err != nil {
		return nil, err
	}

	perPage := p.PerPage
	if p.Limit > 0 {
		perPage = p.Limit
	}
	if perPage <= 0 {
		perPage = defaultLimit
	}
	if perPage > maxLimit {
		perPage = maxLimit
	}

	page := match.Paginate(results, p.Page, perPage)
	return searchUniversitiesResult{
		Results:    page.Items,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Summary:    match.Summarize(results),
	}, nil
}

type getUniversityParams struct {
	Identifier string `json:"identifier"`
}

func (s *Server) handleGetUniversity(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getUniversityParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(p.Identifier) == "" {
		return nil, fmt.Errorf("identifier is required")
	}

	u, err := s.catalog.Lookup(ctx, p.Identifier)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("university not found: %s", p.Identifier)
	}

	return u, nil
}

func (s *Server) handleListRegions(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return university.Regions, nil
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (interface{}, error) {
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats unavailable: %w", err)
	}
	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case resourceRegions:
		return s.getResourceRegions()
	case resourceSummary:
		return s.getResourceSummary(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceRegions() (string, error) {
	var b strings.Builder
	b.WriteString("Regions\n=======\n")
	for _, r := range university.Regions {
		fmt.Fprintf(&b, "  %-10s %s\n", r.Code, r.Name)
	}
	return b.String(), nil
}

func (s *Server) getResourceSummary(ctx context.Context) (string, error) {
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `University Dataset Summary
==========================
Universities: %d
Departments:  %d
  - Missing grade range: %d
`, stats.Universities, stats.Departments, stats.Malformed)

	if stats.MinGrade != nil && stats.MaxGrade != nil {
		fmt.Fprintf(&b, "Grade span:   %.1f - %.1f\n", *stats.MinGrade, *stats.MaxGrade)
	}

	if len(stats.ByRegion) > 0 {
		b.WriteString("\nBy region:\n")
		regions := make([]string, 0, len(stats.ByRegion))
		for r := range stats.ByRegion {
			regions = append(regions, r)
		}
		sort.Strings(regions)
		for _, r := range regions {
			fmt.Fprintf(&b, "  - %s: %d\n", r, stats.ByRegion[r])
		}
	}

	if len(stats.ByAdmission) > 0 {
		b.WriteString("\nBy admission track:\n")
		for _, t := range []university.AdmissionType{university.AdmissionComprehensive, university.AdmissionSubject} {
			if n, ok := stats.ByAdmission[string(t)]; ok {
				fmt.Fprintf(&b, "  - %s: %d\n", t.Label(), n)
			}
		}
	}

	return b.String(), nil
}

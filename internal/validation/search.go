package validation

import (
	"strings"

	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

// SearchParams is the external form of a search request, shared by the
// HTTP API and the MCP tools.
type SearchParams struct {
	Grade          float64  `query:"grade" json:"grade" validate:"required,gte=1,lte=9"`
	AdmissionType  string   `query:"admissionType" json:"admission_type" validate:"omitempty,oneof=comprehensive subject"`
	Region         string   `query:"region" json:"region" validate:"omitempty,max=40"`
	SortBy         string   `query:"sortBy" json:"sort_by" validate:"omitempty,oneof=grade name region match"`
	UniversityType string   `query:"universityType" json:"university_type" validate:"omitempty,max=40"`
	EstType        string   `query:"estType" json:"est_type" validate:"omitempty,max=40"`
	MinGrade       *float64 `query:"minGrade" json:"min_grade" validate:"omitempty,gte=1,lte=9"`
	MaxGrade       *float64 `query:"maxGrade" json:"max_grade" validate:"omitempty,gte=1,lte=9"`
	Department     string   `query:"department" json:"department" validate:"omitempty,min=2,max=50"`
	Page           int      `query:"page" json:"page" validate:"omitempty,gte=1"`
	PerPage        int      `query:"perPage" json:"per_page" validate:"omitempty,gte=1,lte=100"`
}

// Validate runs the tag rules plus the cross-field grade range check
func (p *SearchParams) Validate() error {
	p.Department = strings.TrimSpace(p.Department)
	if err := Struct(p); err != nil {
		return err
	}
	if (p.MinGrade == nil) != (p.MaxGrade == nil) {
		return Field("minGrade", "required_with", "minGrade and maxGrade must be given together")
	}
	if p.MinGrade != nil && *p.MinGrade > *p.MaxGrade {
		return Field("minGrade", "ltefield", "minGrade must not exceed maxGrade")
	}
	return nil
}

// Query converts validated params into a search query
func (p *SearchParams) Query() match.Query {
	q := match.Query{
		Grade:          p.Grade,
		AdmissionType:  university.AdmissionType(p.AdmissionType),
		DepartmentName: p.Department,
		Filters: match.Filters{
			Region:         p.Region,
			SortBy:         match.SortKey(p.SortBy),
			UniversityType: p.UniversityType,
			EstType:        p.EstType,
		},
	}
	if p.MinGrade != nil && p.MaxGrade != nil {
		q.Filters.GradeRange = &match.GradeRange{Min: *p.MinGrade, Max: *p.MaxGrade}
	}
	return q
}

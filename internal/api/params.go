package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/vijay-prabhu/unimatch/internal/validation"
)

// parseSearchParams reads search parameters from the query string.
// Number syntax errors are reported as validation errors.
func parseSearchParams(values url.Values) (*validation.SearchParams, error) {
	p := &validation.SearchParams{
		AdmissionType:  strings.TrimSpace(values.Get("admissionType")),
		Region:         strings.TrimSpace(values.Get("region")),
		SortBy:         strings.TrimSpace(values.Get("sortBy")),
		UniversityType: strings.TrimSpace(values.Get("universityType")),
		EstType:        strings.TrimSpace(values.Get("estType")),
		Department:     values.Get("department"),
	}

	var err error
	if p.Grade, err = parseFloat(values, "grade"); err != nil {
		return nil, err
	}
	if p.MinGrade, err = parseOptionalFloat(values, "minGrade"); err != nil {
		return nil, err
	}
	if p.MaxGrade, err = parseOptionalFloat(values, "maxGrade"); err != nil {
		return nil, err
	}
	if p.Page, err = parseInt(values, "page"); err != nil {
		return nil, err
	}
	if p.PerPage, err = parseInt(values, "perPage"); err != nil {
		return nil, err
	}

	return p, nil
}

func parseFloat(values url.Values, key string) (float64, error) {
	v, err := parseOptionalFloat(values, key)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

func parseOptionalFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, validation.Field(key, "number", key+" must be a number")
	}
	return &f, nil
}

func parseInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.Field(key, "number", key+" must be an integer")
	}
	return n, nil
}

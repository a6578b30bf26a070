package database

import (
	"database/sql"
	"time"
)

// Record is a stored university document with bookkeeping timestamps
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Import records one bulk load
type Import struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Universities int       `json:"universities"`
	Departments  int       `json:"departments"`
	ImportedAt   time.Time `json:"imported_at"`
}

// Stats represents aggregate statistics over the stored dataset
type Stats struct {
	Universities int            `json:"universities"`
	Departments  int            `json:"departments"`
	Malformed    int            `json:"malformed_departments"`
	ByRegion     map[string]int `json:"by_region"`
	ByEstType    map[string]int `json:"by_est_type"`
	ByAdmission  map[string]int `json:"by_admission_type"`
	MinGrade     *float64       `json:"min_grade,omitempty"`
	MaxGrade     *float64       `json:"max_grade,omitempty"`
	AvgMinGrade  *float64       `json:"avg_min_grade,omitempty"`
	LastImport   *Import        `json:"last_import,omitempty"`
}

// ListOptions contains options for listing universities
type ListOptions struct {
	Region  *string // substring of the region name
	Type    *string
	EstType *string
	Name    *string // case-insensitive substring
	Limit   int
	Offset  int
}

// NullString is a helper to convert a possibly empty string to sql.NullString
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

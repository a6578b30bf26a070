package university

import (
	"fmt"
	"math"
	"strings"
)

// AdmissionType identifies the admission track a department evaluates by
type AdmissionType string

const (
	// AdmissionComprehensive is holistic review (학생부종합)
	AdmissionComprehensive AdmissionType = "comprehensive"
	// AdmissionSubject is grade-only review (학생부교과)
	AdmissionSubject AdmissionType = "subject"
)

// ParseAdmissionType validates an admission track name
func ParseAdmissionType(s string) (AdmissionType, error) {
	switch AdmissionType(strings.ToLower(strings.TrimSpace(s))) {
	case AdmissionComprehensive:
		return AdmissionComprehensive, nil
	case AdmissionSubject:
		return AdmissionSubject, nil
	default:
		return "", fmt.Errorf("unknown admission type %q (use comprehensive or subject)", s)
	}
}

// Label returns the Korean display name of the track
func (a AdmissionType) Label() string {
	switch a {
	case AdmissionComprehensive:
		return "학생부종합"
	case AdmissionSubject:
		return "학생부교과"
	default:
		return string(a)
	}
}

// Grade bounds of the 내신 scale. Lower is better.
const (
	BestGrade  = 1.0
	WorstGrade = 9.0
)

// Position is a geographic coordinate
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Department is an admission unit embedded in a university document
type Department struct {
	ID             string        `json:"id"`
	UniversityName string        `json:"universityName,omitempty"`
	DepartmentName string        `json:"departmentName"`
	AdmissionType  AdmissionType `json:"admissionType,omitempty"`
	MinGrade       *float64      `json:"minGrade,omitempty"`
	MaxGrade       *float64      `json:"maxGrade,omitempty"`
	Curriculum     string        `json:"curriculum,omitempty"`
}

// GradeBounds returns the accepted grade interval.
// ok is false when either bound is missing or not a number.
func (d *Department) GradeBounds() (min, max float64, ok bool) {
	if d.MinGrade == nil || d.MaxGrade == nil {
		return 0, 0, false
	}
	min, max = *d.MinGrade, *d.MaxGrade
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 0, false
	}
	return min, max, true
}

// Accepts reports whether grade lies inside the closed grade interval
func (d *Department) Accepts(grade float64) bool {
	min, max, ok := d.GradeBounds()
	if !ok {
		return false
	}
	return grade >= min && grade <= max
}

// University is a read-only snapshot of an institution document
type University struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Region      string       `json:"region"`
	Type        string       `json:"type"`    // 일반대학, 전문대학, ...
	EstType     string       `json:"estType"` // 국립, 공립, 사립
	Link        string       `json:"link,omitempty"`
	CampusName  string       `json:"campusName,omitempty"`
	LogoURL     string       `json:"logoUrl,omitempty"`
	Position    *Position    `json:"position,omitempty"`
	Departments []Department `json:"departments,omitempty"`
}

// Normalize fills the owning university name on embedded departments
func (u *University) Normalize() {
	for i := range u.Departments {
		if u.Departments[i].UniversityName == "" {
			u.Departments[i].UniversityName = u.Name
		}
	}
}

// FindDepartment returns the department with the given ID, or nil
func (u *University) FindDepartment(id string) *Department {
	for i := range u.Departments {
		if u.Departments[i].ID == id {
			return &u.Departments[i]
		}
	}
	return nil
}

// Float64 returns a pointer to v, for building grade bounds
func Float64(v float64) *float64 {
	return &v
}

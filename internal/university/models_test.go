package university

import (
	"math"
	"testing"
)

func TestParseAdmissionType(t *testing.T) {
	tests := []struct {
		input   string
		want    AdmissionType
		wantErr bool
	}{
		{"comprehensive", AdmissionComprehensive, false},
		{" Subject ", AdmissionSubject, false},
		{"essay", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAdmissionType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAdmissionType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseAdmissionType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGradeBounds(t *testing.T) {
	tests := []struct {
		name   string
		dept   Department
		wantOK bool
	}{
		{"both bounds", Department{MinGrade: Float64(1.0), MaxGrade: Float64(1.5)}, true},
		{"missing min", Department{MaxGrade: Float64(1.5)}, false},
		{"missing max", Department{MinGrade: Float64(1.0)}, false},
		{"nan bound", Department{MinGrade: Float64(math.NaN()), MaxGrade: Float64(2.0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := tt.dept.GradeBounds()
			if ok != tt.wantOK {
				t.Errorf("GradeBounds() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestAccepts(t *testing.T) {
	d := Department{MinGrade: Float64(2.0), MaxGrade: Float64(3.0)}

	for _, g := range []float64{2.0, 2.5, 3.0} {
		if !d.Accepts(g) {
			t.Errorf("Accepts(%v) = false, want true", g)
		}
	}
	for _, g := range []float64{1.9, 3.01, 9.0} {
		if d.Accepts(g) {
			t.Errorf("Accepts(%v) = true, want false", g)
		}
	}

	malformed := Department{MinGrade: Float64(2.0)}
	if malformed.Accepts(2.0) {
		t.Error("department without max grade should accept nothing")
	}
}

func TestNormalize(t *testing.T) {
	u := University{
		Name: "서울대학교",
		Departments: []Department{
			{ID: "cs"},
			{ID: "ee", UniversityName: "다른대학교"},
		},
	}
	u.Normalize()

	if u.Departments[0].UniversityName != "서울대학교" {
		t.Errorf("expected owner name to be filled, got %q", u.Departments[0].UniversityName)
	}
	if u.Departments[1].UniversityName != "다른대학교" {
		t.Errorf("expected explicit name to be kept, got %q", u.Departments[1].UniversityName)
	}
	if u.FindDepartment("ee") == nil {
		t.Error("expected to find department ee")
	}
	if u.FindDepartment("law") != nil {
		t.Error("expected nil for unknown department")
	}
}

func TestResolveRegion(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", RegionAll},
		{"all", RegionAll},
		{"전체", RegionAll},
		{"seoul", "서울특별시"},
		{"Busan", "부산광역시"},
		{"서울", "서울"},
		{"부산광역시", "부산광역시"},
		{" SEOUL ", "서울특별시"},
	}

	for _, tt := range tests {
		if got := ResolveRegion(tt.input); got != tt.want {
			t.Errorf("ResolveRegion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantN   int
		wantErr bool
	}{
		{"bare array", `[{"id":"a","name":"가대학교"},{"id":"b","name":"나대학교"}]`, 2, false},
		{"envelope", `{"universities":[{"id":"a","name":"가대학교"}]}`, 1, false},
		{"empty input", "  \n", 0, false},
		{"empty envelope", `{}`, 0, false},
		{"invalid json", `[{"id":`, 0, true},
		{"wrong shape", `"text"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantN)
		})
	}
}

func TestDecode_NormalizesAndKeepsMissingBounds(t *testing.T) {
	input := `[{"id":"u","name":"한빛대학교","departments":[
		{"id":"d1","departmentName":"국문학과","minGrade":2.5,"maxGrade":3.5},
		{"id":"d2","departmentName":"신설학과"}
	]}]`

	got, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got[0].Departments, 2)

	assert.Equal(t, "한빛대학교", got[0].Departments[0].UniversityName)
	_, _, ok := got[0].Departments[1].GradeBounds()
	assert.False(t, ok)
}

func TestEncode(t *testing.T) {
	in := []university.University{{ID: "u", Name: "한빛대학교", Region: "서울특별시"}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))
	assert.Contains(t, buf.String(), `"estType"`)

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in[0].Name, out[0].Name)
}

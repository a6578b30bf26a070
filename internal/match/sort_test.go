package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

func sortFixture() []Result {
	mk := func(id, name, region string, lo float64, score float64) Result {
		return Result{
			University: university.University{ID: id, Name: name, Region: region},
			Department: dept(id, "학과", lo, lo+1),
			Score:      score,
		}
	}
	return []Result{
		mk("yonsei", "연세대학교", "서울특별시", 1.3, 0.6),
		mk("pnu", "부산대학교", "부산광역시", 2.5, 0.9),
		mk("korea", "고려대학교", "서울특별시", 1.3, 0.6),
		mk("ajou", "아주대학교", "경기도", 3.0, 0.75),
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.University.ID
	}
	return out
}

func TestSort_Grade(t *testing.T) {
	got := Sort(sortFixture(), SortByGrade)

	// yonsei and korea tie on 1.3 and keep their input order
	assert.Equal(t, []string{"yonsei", "korea", "pnu", "ajou"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, *got[i].Department.MinGrade, *got[i-1].Department.MinGrade)
	}
}

func TestSort_Match(t *testing.T) {
	got := Sort(sortFixture(), SortByMatch)

	assert.Equal(t, []string{"pnu", "ajou", "yonsei", "korea"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestSort_NameUsesKoreanCollation(t *testing.T) {
	got := Sort(sortFixture(), SortByName)

	assert.Equal(t, []string{"korea", "pnu", "ajou", "yonsei"}, ids(got))
}

func TestSort_Region(t *testing.T) {
	got := Sort(sortFixture(), SortByRegion)

	assert.Equal(t, []string{"ajou", "pnu", "yonsei", "korea"}, ids(got))
}

func TestSort_UnknownKeyFallsBackToMatch(t *testing.T) {
	assert.Equal(t, SortByMatch, ParseSortKey("popularity"))
	assert.Equal(t, SortByName, ParseSortKey(" NAME "))

	got := Sort(sortFixture(), SortKey("popularity"))
	assert.Equal(t, []string{"pnu", "ajou", "yonsei", "korea"}, ids(got))
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	in := sortFixture()
	before := ids(in)

	_ = Sort(in, SortByName)
	assert.Equal(t, before, ids(in))
}

func TestSort_Empty(t *testing.T) {
	got := Sort(nil, SortByGrade)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

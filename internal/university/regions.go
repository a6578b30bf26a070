package university

import "strings"

// Region maps a short region code to its administrative division name
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RegionAll disables region filtering
const RegionAll = "all"

// Regions lists the selectable regions in display order
var Regions = []Region{
	{Code: RegionAll, Name: "전체"},
	{Code: "seoul", Name: "서울특별시"},
	{Code: "gyeonggi", Name: "경기도"},
	{Code: "incheon", Name: "인천광역시"},
	{Code: "busan", Name: "부산광역시"},
	{Code: "daegu", Name: "대구광역시"},
	{Code: "daejeon", Name: "대전광역시"},
	{Code: "gwangju", Name: "광주광역시"},
	{Code: "chungnam", Name: "충청남도"},
	{Code: "gangwon", Name: "강원도"},
	{Code: "jeju", Name: "제주도"},
}

// ResolveRegion turns a region code into the value matched against
// University.Region. Unknown values pass through so raw names such as
// "서울" keep working. "전체" and "all" both resolve to RegionAll.
func ResolveRegion(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "전체" {
		return RegionAll
	}
	// Only codes are translated. Display names other than "전체" come back
	// unchanged and the filter matches them as a substring of the region.
	for _, r := range Regions {
		if strings.EqualFold(r.Code, s) {
			if r.Code == RegionAll {
				return RegionAll
			}
			return r.Name
		}
	}
	return s
}

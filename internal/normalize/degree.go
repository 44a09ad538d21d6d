// Package normalize turns loosely shaped resume fields into display strings.
// Every function here is pure and total: empty input gives empty output.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"resume-builder/internal/model"
)

// Degree ranks, lowest first. Unknown degrees sort last.
const (
	RankAssociate = 1
	RankBachelor  = 2
	RankMaster    = 3
	RankDoctorate = 4
	RankUnknown   = 5
)

var degreeRanks = []struct {
	rank int
	re   *regexp.Regexp
}{
	{RankAssociate, regexp.MustCompile(`(?i)\b(AA|AS|AAS|ASSOCIATE|ASSOCIATES)\b`)},
	{RankBachelor, regexp.MustCompile(`(?i)\b(BA|BS|BSC|BACHELOR|BACHELORS|BE|BTECH|BENG|BCOM|BBA)\b`)},
	{RankMaster, regexp.MustCompile(`(?i)\b(MA|MS|MSC|MBA|MASTER|MASTERS|MTECH|ME|MENG|MCOM)\b`)},
	{RankDoctorate, regexp.MustCompile(`(?i)\b(PHD|DOCTOR|DOCTORATE|DOCTORAL|JD|EDD)\b`)},
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeDegree uppercases, strips periods and collapses whitespace.
func NormalizeDegree(text string) string {
	s := strings.ToUpper(text)
	s = strings.ReplaceAll(s, ".", "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// DegreeRank returns 1..5; the lowest matching rank wins.
func DegreeRank(text string) int {
	d := NormalizeDegree(text)
	if d == "" {
		return RankUnknown
	}
	for _, r := range degreeRanks {
		if r.re.MatchString(d) {
			return r.rank
		}
	}
	return RankUnknown
}

// SortEducation returns a copy ordered by degree rank; equal ranks keep their
// input order. The input slice is not modified.
func SortEducation(list []model.Education) []model.Education {
	out := make([]model.Education, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return DegreeRank(out[i].Degree) < DegreeRank(out[j].Degree)
	})
	return out
}

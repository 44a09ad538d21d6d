package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-builder/internal/model"
)

func TestNormalizeDegree(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"  b.tech  ":       "BTECH",
		"Ph.D.":            "PHD",
		"Master  of\tArts": "MASTER OF ARTS",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDegree(in), in)
	}
}

func TestDegreeRank(t *testing.T) {
	cases := []struct {
		degree string
		want   int
	}{
		{"A.A.", RankAssociate},
		{"Associate of Science", RankAssociate},
		{"B.Tech", RankBachelor},
		{"BS", RankBachelor},
		{"Bachelor of Engineering", RankBachelor},
		{"MS", RankMaster},
		{"M.B.A.", RankMaster},
		{"Masters in Data Science", RankMaster},
		{"Ph.D.", RankDoctorate},
		{"Doctoral Candidate", RankDoctorate},
		{"Diploma", RankUnknown},
		{"", RankUnknown},
		{"BASIC", RankUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.degree, func(t *testing.T) {
			got := DegreeRank(tc.degree)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 5)
		})
	}
}

func TestSortEducation(t *testing.T) {
	in := []model.Education{
		{Degree: "PhD"},
		{Degree: "BS", School: "first"},
		{Degree: "Certificate"},
		{Degree: "MS"},
		{Degree: "B.A.", School: "second"},
	}

	got := SortEducation(in)

	degrees := make([]string, len(got))
	for i, e := range got {
		degrees[i] = e.Degree
	}
	assert.Equal(t, []string{"BS", "B.A.", "MS", "PhD", "Certificate"}, degrees)
	assert.Equal(t, "first", got[0].School)
	// input untouched
	assert.Equal(t, "PhD", in[0].Degree)
	assert.Empty(t, SortEducation(nil))
}

func TestFormatEmploymentLocation(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Mumbai, Maharashtra, India", "Mumbai, India"},
		{"india", "India"},
		{"Austin, Texas, USA", "Austin, Texas"},
		{"Austin, Texas", "Austin, Texas"},
		{"Austin,  TX , U.S.A.", "Austin, TX"},
		{"Seattle, United States", "Seattle"},
		{"Dallas, TX, United States of America", "Dallas, TX"},
		{"USA", "USA"},
		{"London, UK", "London, UK"},
		{"  New   York,   NY  ", "New York, NY"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatEmploymentLocation(tc.in))
		})
	}
}

func TestFirstMatch(t *testing.T) {
	p := model.Project{Title: "  ", Name: "From name", ProjectTitle: "From projectTitle"}
	assert.Equal(t, "From name", ProjectName(p))

	p.ProjectName = "From projectName"
	assert.Equal(t, "From projectName", ProjectName(p))

	assert.Equal(t, "", ProjectName(model.Project{}))
}

func TestTitlePasses(t *testing.T) {
	t.Run("label-strip", func(t *testing.T) {
		assert.Equal(t, "Inventory", StripProjectLabel("Project 1: Inventory"))
		assert.Equal(t, "Inventory", StripProjectLabel("project #2 - Inventory"))
		assert.Equal(t, "Inventory", StripProjectLabel("Project: Inventory"))
		assert.Equal(t, "Project Alpha", StripProjectLabel("Project Alpha"))
		assert.Equal(t, "Projection Model: v2", StripProjectLabel("Projection Model: v2"))
		assert.Equal(t, "Project-X Platform", StripProjectLabel("Project-X Platform"))
		assert.Equal(t, "Inventory", StripProjectLabel("Project - Inventory"))
		assert.Equal(t, "Inventory", StripProjectLabel("Project 4-Inventory"))
	})
	t.Run("date-strip", func(t *testing.T) {
		assert.Equal(t, "Data Lake", CollapsePunctuation(StripDateRanges("Data Lake (Mar 2019 – Present)")))
		assert.Equal(t, "Billing", CollapsePunctuation(StripDateRanges("Billing 2019-2021")))
		assert.Equal(t, "Migration", CollapsePunctuation(StripDateRanges("Migration (01/2020-06/2021)")))
		assert.Equal(t, "Portal", CollapsePunctuation(StripDateRanges("Portal, January 2018 to December 2019")))
	})
	t.Run("location-strip", func(t *testing.T) {
		assert.Equal(t, "CRM", CollapsePunctuation(StripLocation("CRM - Dallas,TX", "Dallas, TX")))
		assert.Equal(t, "CRM", CollapsePunctuation(StripLocation("CRM / chicago , il", "Chicago, IL")))
		assert.Equal(t, "CRM", StripLocation("CRM", ""))
		assert.Equal(t, "Museum Portal", CollapsePunctuation(StripLocation("Museum Portal", "US")))
		assert.Equal(t, "Indian Payments Hub", CollapsePunctuation(StripLocation("Indian Payments Hub", "India")))
		assert.Equal(t, "Payments Hub", CollapsePunctuation(StripLocation("Payments Hub, India", "India")))
		assert.Equal(t, "Remoteness Index", CollapsePunctuation(StripLocation("Remoteness Index", "Remote")))
		assert.Equal(t, "Billing", CollapsePunctuation(StripLocation("Billing (USA)", "USA")))
		assert.Equal(t, "CRM", CollapsePunctuation(StripLocation("CRM-Dallas, TX", "Dallas, TX")))
	})
	t.Run("punctuation-collapse", func(t *testing.T) {
		assert.Equal(t, "A - B", CollapsePunctuation("A - , B"))
		assert.Equal(t, "Tool", CollapsePunctuation("  Tool ( ) ,, "))
		assert.Equal(t, "RWE Datacenter-Transition/ Senior DBA", CollapsePunctuation("RWE Datacenter-Transition/ Senior DBA"))
	})
}

func TestFormatProjectTitle(t *testing.T) {
	p := model.Project{
		ProjectName:     "Project 1: Inventory System (Jan 2020 - Dec 2021), Chicago, IL",
		ProjectLocation: "Chicago, IL",
	}
	assert.Equal(t, "Project 1: Inventory System", FormatProjectTitle(p, 0, 2))
	assert.Equal(t, "Inventory System", FormatProjectTitle(p, 0, 1))

	assert.Equal(t, "Project", FormatProjectTitle(model.Project{ProjectName: ""}, 0, 1))
	assert.Equal(t, "Project 3: Project", FormatProjectTitle(model.Project{}, 2, 3))

	// everything stripped: fall back to the raw name
	onlyDates := model.Project{Title: "(Jan 2020 - Dec 2021)"}
	assert.Equal(t, "(Jan 2020 - Dec 2021)", FormatProjectTitle(onlyDates, 0, 1))

	// a short job location must not eat into words
	assert.Equal(t, "Museum Portal", FormatProjectTitle(model.Project{ProjectName: "Museum Portal", ProjectLocation: "US"}, 0, 1))
	assert.Equal(t, "Indian Payments Hub", FormatProjectTitle(model.Project{ProjectName: "Indian Payments Hub", ProjectLocation: "India"}, 0, 1))
	assert.Equal(t, "Project-X Platform", FormatProjectTitle(model.Project{ProjectName: "Project-X Platform"}, 0, 1))

	yearsOnly := model.Project{Name: "2019-2020 "}
	assert.Equal(t, "2019-2020", FormatProjectTitle(yearsOnly, 0, 1))
}

func TestFormatProjectTitleFallbackTruncates(t *testing.T) {
	raw := "Project 7: " + "(2019 - 2020)"
	for len(raw) < 80 {
		raw += " -"
	}
	got := FormatProjectTitle(model.Project{ProjectName: raw}, 0, 1)
	assert.Equal(t, []rune(raw)[:60], []rune(got))
}

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

const sampleJSON = `{
  "name": "Jane Roe",
  "title": "Senior Engineer",
  "requisitionNumber": "REQ-42",
  "professionalSummary": ["Builds things", "  "],
  "summarySections": [{"title": "Leadership", "content": ["Led a team of 6"]}],
  "employmentHistory": [{
    "companyName": "Acme",
    "roleName": "Engineer",
    "workPeriod": "2019 - Present",
    "location": "Austin, Texas, USA",
    "subRole": "Platform",
    "projects": [
      {"title": "Project 1: Inventory (2019 - 2020), Austin, Texas", "projectLocation": "Austin, Texas", "projectResponsibilities": ["Built it", ""], "keyTechnologies": "Go"},
      {"projectName": "Billing - Austin, Texas, USA", "projectResponsibilities": ["  "]}
    ],
    "responsibilities": ["On call"],
    "subsections": [{"title": "", "content": ["hidden"]}, {"title": "Awards", "content": ["MVP"]}],
    "keyTechnologies": "Go, SQL"
  }],
  "education": [
    {"degree": "PhD", "areaOfStudy": "CS", "school": "MIT", "location": "Cambridge", "wasAwarded": true, "date": "2015"},
    {"degree": "BS", "areaOfStudy": "CS", "school": "UT", "location": "Austin", "wasAwarded": "no", "date": "2010"}
  ],
  "certifications": [{"name": "CKA", "issuedBy": "CNCF", "dateObtained": "2021"}],
  "technicalSkills": {"Languages": ["Go", "SQL"], "Cloud": ["AWS"]},
  "skillCategories": [{"categoryName": "Data", "skills": ["Postgres"], "subCategories": [{"name": "Streaming", "skills": ["Kafka"]}]}]
}`

func sample(t *testing.T) model.ResumeData {
	t.Helper()
	return model.SanitizeJSON([]byte(sampleJSON))
}

func sectionIDs(d *Document) []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestAssembleSectionOrder(t *testing.T) {
	want := []string{SectionHeader, SectionEducation, SectionCertifications, SectionEmployment, SectionSummary, SectionSkills}
	assert.Equal(t, want, sectionIDs(Assemble(sample(t))))
	assert.Equal(t, want, sectionIDs(Assemble(model.Empty())))
}

func TestAssembleEmptyResumePlaceholders(t *testing.T) {
	d := Assemble(model.Empty())

	edu, ok := d.Section(SectionEducation)
	require.True(t, ok)
	require.Len(t, edu.Nodes, 1)
	assert.Equal(t, EducationHeader, edu.Nodes[0].Header)
	assert.Equal(t, [][]string{{"-", "-", "-", "-", "-", "-"}}, edu.Nodes[0].Rows)

	certs, _ := d.Section(SectionCertifications)
	assert.Equal(t, [][]string{{"-", "-", "-", "-", "-"}}, certs.Nodes[0].Rows)

	texts := d.Texts()
	assert.Contains(t, texts, NoEmploymentHistory)
	assert.Contains(t, texts, NoSkillsProvided)
	assert.Equal(t, "Resume.docx", d.FileName)
}

func TestAssembleHeader(t *testing.T) {
	d := Assemble(sample(t))
	h, _ := d.Section(SectionHeader)
	require.Len(t, h.Nodes, 2)
	assert.Equal(t, "Jane Roe", h.Nodes[0].Text)
	assert.True(t, h.Nodes[0].Style.Center)
	assert.Equal(t, "Senior Engineer", h.Nodes[1].Left)
	assert.Equal(t, "Requisition Number: REQ-42", h.Nodes[1].Right)
	assert.Equal(t, "Jane Roe.docx", d.FileName)
}

func TestAssembleEducationSortedWithAwarded(t *testing.T) {
	edu, _ := Assemble(sample(t)).Section(SectionEducation)
	rows := edu.Nodes[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"BS", "CS", "UT", "Austin", "No", "2010"}, rows[0])
	assert.Equal(t, []string{"PhD", "CS", "MIT", "Cambridge", "Yes", "2015"}, rows[1])
}

func TestAssembleCertificationBlankCells(t *testing.T) {
	certs, _ := Assemble(sample(t)).Section(SectionCertifications)
	assert.Equal(t, [][]string{{"CKA", "CNCF", "2021", "-", "-"}}, certs.Nodes[0].Rows)
}

func TestAssembleEmployment(t *testing.T) {
	emp, _ := Assemble(sample(t)).Section(SectionEmployment)
	texts := (&Document{Sections: []Section{emp}}).Texts()

	assert.Equal(t, []string{
		"Employment History",
		"Acme", "2019 - Present",
		"Engineer", "Austin, Texas",
		"Platform",
		"Project 1: Inventory",
		"Responsibilities:", "Built it",
		"Key Technologies: Go",
		"Project 2: Billing",
		"Responsibilities:", "On call",
		"Awards", "MVP",
		"Key Technologies: Go, SQL",
	}, texts)
}

func TestAssembleSummary(t *testing.T) {
	sum, _ := Assemble(sample(t)).Section(SectionSummary)
	texts := (&Document{Sections: []Section{sum}}).Texts()
	assert.Equal(t, []string{"Professional Summary", "Builds things", "Leadership", "Led a team of 6"}, texts)
}

func TestAssembleSkills(t *testing.T) {
	skills, _ := Assemble(sample(t)).Section(SectionSkills)
	texts := (&Document{Sections: []Section{skills}}).Texts()
	assert.Equal(t, []string{
		"Technical Skills",
		"Languages: Go, SQL",
		"Cloud: AWS",
		"Data: Postgres",
		"Streaming: Kafka",
	}, texts)

	last := skills.Nodes[len(skills.Nodes)-1]
	assert.Equal(t, 1, last.Style.Indent)
}

func TestAssembleIsDeterministic(t *testing.T) {
	r := sample(t)
	assert.Equal(t, Assemble(r).Texts(), Assemble(r).Texts())
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpace("  a \n\t b   c "))
	assert.Equal(t, "", CollapseSpace(" \n "))
}

package document

import (
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/normalize"
)

// Section ids, in document order.
const (
	SectionHeader         = "header"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionEmployment     = "employment"
	SectionSummary        = "summary"
	SectionSkills         = "skills"
)

const (
	Placeholder         = "-"
	NoEmploymentHistory = "No employment history"
	NoSkillsProvided    = "No skills provided"
	RequisitionLabel    = "Requisition Number:"
)

var (
	EducationHeader     = []string{"Degree", "Area of Study", "School", "Location", "Awarded?", "Date"}
	CertificationHeader = []string{"Certification", "Issued By", "Date Obtained", "Certification Number", "Expiration Date"}
)

// Assemble builds the document for r. It is total over sanitized data:
// empty parts become placeholder rows or lines, never missing sections.
func Assemble(r model.ResumeData) *Document {
	return &Document{
		FileName: r.FileName("docx"),
		Sections: []Section{
			headerSection(r),
			educationSection(r.Education),
			certificationSection(r.Certifications),
			employmentSection(r.EmploymentHistory),
			summarySection(r),
			skillsSection(r),
		},
	}
}

func headerSection(r model.ResumeData) Section {
	return Section{
		ID: SectionHeader,
		Nodes: []Node{
			{Kind: KindHeading, Level: 1, Text: r.Name, Style: Style{Bold: true, Center: true, Accent: true}},
			{Kind: KindSplit, Left: r.Title, Right: strings.TrimSpace(RequisitionLabel + " " + r.RequisitionNumber), Style: Style{Bold: true}},
		},
	}
}

func educationSection(list []model.Education) Section {
	rows := [][]string{}
	for _, e := range normalize.SortEducation(list) {
		awarded := "No"
		if e.WasAwarded {
			awarded = "Yes"
		}
		rows = append(rows, []string{dash(e.Degree), dash(e.AreaOfStudy), dash(e.School), dash(e.Location), awarded, dash(e.Date)})
	}
	if len(rows) == 0 {
		rows = append(rows, placeholderRow(len(EducationHeader)))
	}
	return Section{
		ID:    SectionEducation,
		Title: "Education",
		Nodes: []Node{{Kind: KindTable, Header: EducationHeader, Rows: rows}},
	}
}

func certificationSection(list []model.Certification) Section {
	rows := [][]string{}
	for _, c := range list {
		rows = append(rows, []string{dash(c.Name), dash(c.IssuedBy), dash(c.DateObtained), dash(c.CertificationNumber), dash(c.ExpirationDate)})
	}
	if len(rows) == 0 {
		rows = append(rows, placeholderRow(len(CertificationHeader)))
	}
	return Section{
		ID:    SectionCertifications,
		Title: "Certifications",
		Nodes: []Node{{Kind: KindTable, Header: CertificationHeader, Rows: rows}},
	}
}

func employmentSection(jobs []model.Job) Section {
	s := Section{ID: SectionEmployment, Title: "Employment History"}
	if len(jobs) == 0 {
		s.Nodes = append(s.Nodes, Node{Kind: KindParagraph, Text: NoEmploymentHistory, Style: Style{Italic: true}})
		return s
	}
	for _, job := range jobs {
		s.Nodes = append(s.Nodes, jobNodes(job)...)
	}
	return s
}

func jobNodes(job model.Job) []Node {
	nodes := []Node{
		{Kind: KindSplit, Left: job.CompanyName, Right: job.WorkPeriod, Style: Style{Bold: true, Accent: true}},
		{Kind: KindSplit, Left: job.RoleName, Right: normalize.FormatEmploymentLocation(job.Location), Style: Style{Bold: true}},
	}
	if dept := firstNonBlank(job.Department, job.SubRole); dept != "" {
		nodes = append(nodes, Node{Kind: KindParagraph, Text: dept, Style: Style{Italic: true}})
	}

	for i, p := range job.Projects {
		if strings.TrimSpace(p.ProjectLocation) == "" {
			p.ProjectLocation = job.Location
		}
		nodes = append(nodes, Node{
			Kind:  KindParagraph,
			Text:  normalize.FormatProjectTitle(p, i, len(job.Projects)),
			Style: Style{Bold: true, Accent: true},
		})
		nodes = append(nodes, responsibilityNodes(p.ProjectResponsibilities)...)
		if kt := strings.TrimSpace(p.KeyTechnologies); kt != "" {
			nodes = append(nodes, keyTechnologies(kt))
		}
	}

	nodes = append(nodes, responsibilityNodes(job.Responsibilities)...)

	for _, sub := range job.Subsections {
		if strings.TrimSpace(sub.Title) == "" {
			continue
		}
		nodes = append(nodes, Node{Kind: KindParagraph, Text: sub.Title, Style: Style{Bold: true}})
		if items := nonBlank(sub.Content); len(items) > 0 {
			nodes = append(nodes, Node{Kind: KindBullets, Items: items})
		}
	}

	if kt := strings.TrimSpace(job.KeyTechnologies); kt != "" {
		nodes = append(nodes, keyTechnologies(kt))
	}
	return nodes
}

func responsibilityNodes(items []string) []Node {
	items = nonBlank(items)
	if len(items) == 0 {
		return nil
	}
	return []Node{
		{Kind: KindParagraph, Text: "Responsibilities:", Style: Style{Bold: true}},
		{Kind: KindBullets, Items: items},
	}
}

func keyTechnologies(kt string) Node {
	return Node{Kind: KindParagraph, Label: "Key Technologies:", Text: kt}
}

func summarySection(r model.ResumeData) Section {
	s := Section{ID: SectionSummary, Title: "Professional Summary"}
	if items := nonBlank(r.ProfessionalSummary); len(items) > 0 {
		s.Nodes = append(s.Nodes, Node{Kind: KindBullets, Items: items})
	}
	for _, sub := range r.SummarySections {
		if strings.TrimSpace(sub.Title) != "" {
			s.Nodes = append(s.Nodes, Node{Kind: KindParagraph, Text: sub.Title, Style: Style{Bold: true}})
		}
		if items := nonBlank(sub.Content); len(items) > 0 {
			s.Nodes = append(s.Nodes, Node{Kind: KindBullets, Items: items})
		}
	}
	return s
}

func skillsSection(r model.ResumeData) Section {
	s := Section{ID: SectionSkills, Title: "Technical Skills"}
	for _, g := range r.TechnicalSkills {
		if n, ok := skillLine(g.Category, g.Skills, 0); ok {
			s.Nodes = append(s.Nodes, n)
		}
	}
	for _, c := range r.SkillCategories {
		if n, ok := skillLine(c.CategoryName, c.Skills, 0); ok {
			s.Nodes = append(s.Nodes, n)
		}
		for _, sub := range c.SubCategories {
			if n, ok := skillLine(sub.Name, sub.Skills, 1); ok {
				s.Nodes = append(s.Nodes, n)
			}
		}
	}
	if len(s.Nodes) == 0 {
		s.Nodes = append(s.Nodes, Node{Kind: KindParagraph, Text: NoSkillsProvided, Style: Style{Italic: true}})
	}
	return s
}

func skillLine(name string, skills []string, indent int) (Node, bool) {
	name = strings.TrimSpace(name)
	joined := strings.Join(nonBlank(skills), ", ")
	if name == "" && joined == "" {
		return Node{}, false
	}
	n := Node{Kind: KindParagraph, Text: joined, Style: Style{Indent: indent}}
	if name != "" {
		n.Label = name + ":"
	}
	return n, true
}

func placeholderRow(n int) []string {
	row := make([]string, n)
	for i := range row {
		row[i] = Placeholder
	}
	return row
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func nonBlank(items []string) []string {
	var out []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

package model

// Go models that match the resume.schema.json used for validation and rendering.
// Field names follow the JSON produced by the extraction agents.

type Section struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type Project struct {
	ProjectName             string   `json:"projectName,omitempty"`
	Title                   string   `json:"title,omitempty"`
	Name                    string   `json:"name,omitempty"`
	ProjectTitle            string   `json:"projectTitle,omitempty"`
	ProjectLocation         string   `json:"projectLocation"`
	ProjectResponsibilities []string `json:"projectResponsibilities"`
	KeyTechnologies         string   `json:"keyTechnologies"`
}

type Job struct {
	CompanyName      string    `json:"companyName"`
	RoleName         string    `json:"roleName"`
	WorkPeriod       string    `json:"workPeriod"`
	Location         string    `json:"location"`
	Department       string    `json:"department"`
	SubRole          string    `json:"subRole"`
	Responsibilities []string  `json:"responsibilities"`
	Projects         []Project `json:"projects"`
	Subsections      []Section `json:"subsections"`
	KeyTechnologies  string    `json:"keyTechnologies"`
}

type Education struct {
	Degree      string `json:"degree"`
	AreaOfStudy string `json:"areaOfStudy"`
	School      string `json:"school"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	WasAwarded  bool   `json:"wasAwarded"`
}

type Certification struct {
	Name                string `json:"name"`
	IssuedBy            string `json:"issuedBy"`
	DateObtained        string `json:"dateObtained"`
	CertificationNumber string `json:"certificationNumber"`
	ExpirationDate      string `json:"expirationDate"`
}

type SubCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type SkillCategory struct {
	CategoryName  string        `json:"categoryName"`
	Skills        []string      `json:"skills"`
	SubCategories []SubCategory `json:"subCategories"`
}

// ResumeData is the canonical record of a parsed resume. SummarySections and
// Subsections always hold equal copies of the same list once sanitized.
type ResumeData struct {
	Name                string          `json:"name"`
	Title               string          `json:"title"`
	RequisitionNumber   string          `json:"requisitionNumber"`
	ProfessionalSummary []string        `json:"professionalSummary"`
	SummarySections     []Section       `json:"summarySections"`
	Subsections         []Section       `json:"subsections"`
	EmploymentHistory   []Job           `json:"employmentHistory"`
	Education           []Education     `json:"education"`
	Certifications      []Certification `json:"certifications"`
	TechnicalSkills     TechnicalSkills `json:"technicalSkills"`
	SkillCategories     []SkillCategory `json:"skillCategories"`
}

// Empty returns a ResumeData with every list and mapping allocated, so it
// serializes as [] and {} rather than null.
func Empty() ResumeData {
	return ResumeData{
		ProfessionalSummary: []string{},
		SummarySections:     []Section{},
		Subsections:         []Section{},
		EmploymentHistory:   []Job{},
		Education:           []Education{},
		Certifications:      []Certification{},
		TechnicalSkills:     TechnicalSkills{},
		SkillCategories:     []SkillCategory{},
	}
}

// FileName is the download name for an artifact with the given extension.
func (r ResumeData) FileName(ext string) string {
	name := r.Name
	if name == "" {
		name = "Resume"
	}
	return name + "." + ext
}

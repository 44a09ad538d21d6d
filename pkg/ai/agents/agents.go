// Package agents defines the six section extraction agents: the resume
// section each one owns, the function schema its output must satisfy and the
// prompts sent to the model.
package agents

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type Name string

const (
	Header         Name = "header"
	Summary        Name = "summary"
	Experience     Name = "experience"
	Education      Name = "education"
	Skills         Name = "skills"
	Certifications Name = "certifications"
)

// Order is the order agents are started in and results are combined in.
var Order = []Name{Header, Summary, Experience, Education, Skills, Certifications}

// Agent is one section extractor.
type Agent struct {
	Name        Name
	Function    string
	Description string
	// Parameters is the JSON schema of the function arguments, i.e. of the
	// agent's output object.
	Parameters json.RawMessage
	Focus      string
}

const basePrompt = `You are a specialized resume extraction agent with 40 years of experience.
Your task is to extract ONLY the specific section you're responsible for with perfect accuracy.

CRITICAL INSTRUCTIONS:
1. Extract ONLY the section type you're assigned to
2. Preserve ALL content exactly as written - no summarization
3. Maintain original structure and formatting
4. If the section doesn't exist, return empty arrays/objects
5. Never invent or hallucinate information
6. PROJECTS RULE: Only include projects if they are explicitly mentioned in the resume text. If no projects are mentioned for a job, return empty projects array.`

var focus = map[Name]string{
	Header:  "Focus ONLY on personal information: name, title, contact details, requisition numbers.",
	Summary: "Extract ONLY professional summary, career overview, and profile sections. Include ALL bullet points and paragraphs.",
	Experience: `Extract ONLY employment history and work experience. Include ALL jobs with complete details. Missing any job is unacceptable.

CRITICAL PROJECT EXTRACTION RULES:
- ONLY include 'projects' if specific named projects, project titles, or project-specific work are explicitly mentioned inside that job entry.
- If a job only lists general responsibilities without mentioning specific projects, return projects as empty array []`,
	Education:      "Extract ONLY education, academic background, and degrees. Include ALL educational entries.",
	Skills:         "Extract ONLY technical skills, competencies, and skill categories. Preserve exact categorization.",
	Certifications: "Extract ONLY certifications, licenses, and professional credentials. Only include explicitly mentioned certifications.",
}

var registry = mustLoad()

func mustLoad() map[Name]Agent {
	out := make(map[Name]Agent, len(Order))
	for _, n := range Order {
		b, err := schemaFS.ReadFile("schemas/" + string(n) + ".json")
		if err != nil {
			panic(err)
		}
		var def struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			Parameters  json.RawMessage `json:"parameters"`
		}
		if err := json.Unmarshal(b, &def); err != nil {
			panic(fmt.Sprintf("agents: schema %s: %v", n, err))
		}
		out[n] = Agent{
			Name:        n,
			Function:    def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
			Focus:       focus[n],
		}
	}
	return out
}

func Get(n Name) (Agent, bool) {
	a, ok := registry[n]
	return a, ok
}

// All returns every agent in Order.
func All() []Agent {
	out := make([]Agent, 0, len(Order))
	for _, n := range Order {
		out = append(out, registry[n])
	}
	return out
}

func (a Agent) SystemPrompt() string {
	return basePrompt + "\n\nSPECIFIC FOCUS: " + a.Focus
}

// UserPrompt wraps input with a per-call session header so identical
// uploads are never answered from a provider-side prompt cache.
func (a Agent) UserPrompt(input string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[Agent Session: AGENT_%s_%s]\n", strings.ToUpper(string(a.Name)), uuid.NewString())
	fmt.Fprintf(&sb, "[Processing: %s]\n\n", a.Name)
	fmt.Fprintf(&sb, "Extract %s information from this resume:\n\n%s", a.Name, input)
	return sb.String()
}

package usecase

import (
	"encoding/json"

	"resume-builder/internal/model"
	"resume-builder/pkg/ai/agents"
)

// agentKeys lists the top-level fields each agent contributes.
var agentKeys = map[agents.Name][]string{
	agents.Header:         {"name", "title", "requisitionNumber"},
	agents.Summary:        {"professionalSummary", "summarySections"},
	agents.Experience:     {"employmentHistory"},
	agents.Education:      {"education"},
	agents.Skills:         {"technicalSkills", "skillCategories"},
	agents.Certifications: {"certifications"},
}

// Combine merges successful agent outputs into one raw resume object. Values
// are copied as raw JSON so the order of technical skill categories is kept.
// Failed agents leave their fields at the defaults.
func Combine(results []AgentResult) ([]byte, error) {
	out := map[string]interface{}{
		"name":                "",
		"title":               "",
		"requisitionNumber":   "",
		"professionalSummary": []interface{}{},
		"summarySections":     []interface{}{},
		"subsections":         []interface{}{},
		"employmentHistory":   []interface{}{},
		"education":           []interface{}{},
		"certifications":      []interface{}{},
		"technicalSkills":     map[string]interface{}{},
		"skillCategories":     []interface{}{},
	}

	for _, r := range results {
		if !r.OK() || len(r.Data) == 0 {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r.Data, &fields); err != nil {
			return nil, err
		}
		for _, k := range agentKeys[r.Agent] {
			if v, ok := fields[k]; ok {
				out[k] = v
			}
		}
		if r.Agent == agents.Summary {
			out["subsections"] = out["summarySections"]
		}
	}
	return json.Marshal(out)
}

// Assemble combines and sanitizes in one step.
func Assemble(results []AgentResult) (model.ResumeData, error) {
	raw, err := Combine(results)
	if err != nil {
		return model.Empty(), err
	}
	return model.SanitizeJSON(raw), nil
}

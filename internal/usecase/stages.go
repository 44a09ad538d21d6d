package usecase

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"resume-builder/internal/extract"
	"resume-builder/internal/model"
	"resume-builder/pkg/ai/agents"
)

// ValidateStage checks one agent's output against that agent's function
// schema and returns the violations.
func ValidateStage(a agents.Agent, data json.RawMessage) ([]string, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return model.ValidateAgainst(gojsonschema.NewBytesLoader(a.Parameters), doc)
}

// CleanBullets strips bullet markers the model copied into summary and
// responsibility items. Other agents' output is returned unchanged.
func CleanBullets(name agents.Name, data json.RawMessage) (json.RawMessage, error) {
	if name != agents.Summary && name != agents.Experience {
		return data, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	switch name {
	case agents.Summary:
		stripList(m, "professionalSummary")
		stripSections(m["summarySections"])
	case agents.Experience:
		jobs, _ := m["employmentHistory"].([]interface{})
		for _, j := range jobs {
			job, ok := j.(map[string]interface{})
			if !ok {
				continue
			}
			stripList(job, "responsibilities")
			stripSections(job["subsections"])
			projects, _ := job["projects"].([]interface{})
			for _, p := range projects {
				if proj, ok := p.(map[string]interface{}); ok {
					stripList(proj, "projectResponsibilities")
				}
			}
		}
	}
	return json.Marshal(m)
}

func stripSections(v interface{}) {
	secs, _ := v.([]interface{})
	for _, s := range secs {
		if sec, ok := s.(map[string]interface{}); ok {
			stripList(sec, "content")
		}
	}
}

// stripList cleans the string items of m[key]; anything else is left for
// sanitation to deal with.
func stripList(m map[string]interface{}, key string) {
	items, ok := m[key].([]interface{})
	if !ok {
		return
	}
	for i, it := range items {
		if s, ok := it.(string); ok {
			items[i] = extract.StripBulletPrefix(s)
		}
	}
}

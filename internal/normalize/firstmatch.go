package normalize

import (
	"strings"

	"resume-builder/internal/model"
)

// ProjectNameFields lists the project fields that may carry its display name,
// in priority order.
var ProjectNameFields = []string{"projectName", "title", "name", "projectTitle"}

// FirstMatch returns the first non-blank value among fields, consulted in
// order through get.
func FirstMatch(get func(field string) string, fields ...string) string {
	for _, f := range fields {
		if v := strings.TrimSpace(get(f)); v != "" {
			return v
		}
	}
	return ""
}

// projectField reads one of ProjectNameFields from p.
func projectField(p model.Project) func(string) string {
	return func(field string) string {
		switch field {
		case "projectName":
			return p.ProjectName
		case "title":
			return p.Title
		case "name":
			return p.Name
		case "projectTitle":
			return p.ProjectTitle
		}
		return ""
	}
}

// ProjectName resolves the raw display name of p.
func ProjectName(p model.Project) string {
	return FirstMatch(projectField(p), ProjectNameFields...)
}

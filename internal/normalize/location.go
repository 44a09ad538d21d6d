package normalize

import (
	"strings"
)

var usAliases = map[string]bool{
	"united states":            true,
	"united states of america": true,
	"usa":                      true,
	"us":                       true,
}

func isUSAlias(segment string) bool {
	s := strings.ToLower(strings.ReplaceAll(segment, ".", ""))
	return usAliases[collapse(s)]
}

func isIndia(segment string) bool {
	return strings.EqualFold(segment, "india")
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func splitSegments(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatEmploymentLocation shortens a job location for display:
// Indian locations become "City, India", US locations become "City, State",
// anything else is returned whitespace-normalized.
func FormatEmploymentLocation(text string) string {
	normalized := collapse(text)
	if normalized == "" {
		return ""
	}
	parts := splitSegments(normalized)
	if len(parts) == 0 {
		return normalized
	}

	for _, p := range parts {
		if isIndia(p) {
			if isIndia(parts[0]) {
				return "India"
			}
			return parts[0] + ", India"
		}
	}

	country := -1
	for i, p := range parts {
		if isUSAlias(p) {
			country = i
			break
		}
	}
	if country < 0 {
		return normalized
	}

	city := parts[0]
	if isUSAlias(city) {
		return normalized
	}
	state := ""
	switch {
	case country == len(parts)-1 && len(parts) >= 3:
		state = parts[1]
	case len(parts) > 1 && !isUSAlias(parts[1]):
		state = parts[1]
	}
	if state == "" {
		return city
	}
	return city + ", " + state
}

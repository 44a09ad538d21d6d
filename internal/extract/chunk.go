package extract

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Section names, in the canonical resume order.
const (
	SectionHeader         = "header"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
)

var SectionOrder = []string{
	SectionHeader, SectionSummary, SectionExperience,
	SectionEducation, SectionSkills, SectionCertifications,
}

// HeadingAliases maps a section to the heading lines that open it.
var HeadingAliases = map[string][]string{
	SectionSummary: {
		"summary", "professional summary", "profile", "professional profile",
		"career summary", "summary of qualifications", "objective", "career objective",
	},
	SectionExperience: {
		"experience", "job experience", "work experience", "professional experience",
		"employment history", "job history", "work history",
	},
	SectionEducation: {
		"education", "academic background", "educational background", "qualifications",
	},
	SectionSkills: {
		"skills", "skill set", "technical skills", "technical skill set",
		"technical proficiency", "technical proficiencies", "key skills",
		"core competencies", "competencies", "skills summary",
	},
	SectionCertifications: {
		"certifications", "certification", "technical certifications",
		"technical certification", "licenses", "certificates",
		"professional certifications",
	},
}

const (
	bulletChars = `•‣◦⁃∙·`
	linePrefix  = `^\s*(?:\*{1,2}\s*)?(?:[-*` + bulletChars + `]+\s*)?(?:\d+\s*[.)]\s*)?`
	monthName   = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
)

// workDateRe finds "Aug 2021 - Present" style employment ranges.
var workDateRe = regexp.MustCompile(`(?i)\b` + monthName + `\s+(?:19|20)\d{2}\s*[-–—]\s*(?:present|current|till\s+date|` + monthName + `\s+(?:19|20)\d{2})\b`)

type headingPattern struct {
	section    string
	standalone *regexp.Regexp
	inline     *regexp.Regexp
}

var headingPatterns = compileHeadings()

func compileHeadings() []headingPattern {
	var out []headingPattern
	for _, sec := range SectionOrder[1:] {
		quoted := make([]string, 0, len(HeadingAliases[sec]))
		for _, a := range HeadingAliases[sec] {
			quoted = append(quoted, regexp.QuoteMeta(a))
		}
		alt := strings.Join(quoted, "|")
		out = append(out, headingPattern{
			section:    sec,
			standalone: regexp.MustCompile(`(?i)` + linePrefix + `(?:` + alt + `)\s*[:|\-]?(?:\s*\*{1,2})?\s*$`),
			inline:     regexp.MustCompile(`(?i)` + linePrefix + `(?:` + alt + `)\s*[:|\-]\s*(\S.*?)(?:\s*\*{1,2})?\s*$`),
		})
	}
	return out
}

// Chunks is a resume split into sections. A missing section is "".
type Chunks struct {
	Sections map[string]string
	// Uncategorized holds the whole text when no heading was recognised.
	Uncategorized string
}

func (c Chunks) Get(section string) string { return c.Sections[section] }

// Detected lists the non-empty sections in canonical order.
func (c Chunks) Detected() []string {
	var out []string
	for _, s := range SectionOrder {
		if strings.TrimSpace(c.Sections[s]) != "" {
			out = append(out, s)
		}
	}
	return out
}

type headingMatch struct {
	section      string
	lineStart    int
	lineEnd      int
	contentStart int
}

// Chunk splits text on standalone or inline section headings. Text before
// the first heading is the header. Repeated sections are concatenated.
func Chunk(text string) Chunks {
	out := Chunks{Sections: map[string]string{}}

	matches := detectHeadings(text)
	if len(matches) == 0 {
		out.Uncategorized = strings.TrimSpace(text)
		slog.Info("no section headings detected")
		return out
	}
	matches = dedupe(matches)

	if !hasSection(matches, SectionExperience) {
		if m, ok := inferExperience(text, matches); ok {
			matches = dedupe(append(matches, m))
			slog.Info("inferred experience section from job date ranges")
		}
	}

	if h := strings.TrimSpace(text[:matches[0].lineStart]); h != "" {
		out.Sections[SectionHeader] = h
	}

	parts := map[string][]string{}
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].lineStart
		}
		if m.contentStart > end {
			continue
		}
		if s := strings.TrimSpace(text[m.contentStart:end]); s != "" {
			parts[m.section] = append(parts[m.section], s)
		}
	}
	for sec, p := range parts {
		out.Sections[sec] = strings.Join(p, "\n\n")
	}
	return out
}

func detectHeadings(text string) []headingMatch {
	var matches []headingMatch
	pos := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		start, end := pos, pos+len(line)
		pos = end
		bare := strings.TrimRight(line, "\r\n")
		for _, p := range headingPatterns {
			if loc := p.inline.FindStringSubmatchIndex(bare); loc != nil {
				matches = append(matches, headingMatch{p.section, start, end, start + loc[2]})
				break
			}
			if p.standalone.MatchString(bare) {
				matches = append(matches, headingMatch{p.section, start, end, end})
				break
			}
		}
	}
	return matches
}

// dedupe sorts matches and drops overlapping or near-duplicate ones, keeping
// the earliest.
func dedupe(matches []headingMatch) []headingMatch {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].lineStart < matches[j].lineStart })
	out := matches[:0:0]
	for _, m := range matches {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if m.lineStart < prev.lineEnd {
				continue
			}
			if m.section == prev.section && m.lineStart-prev.lineStart < 5 {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func hasSection(matches []headingMatch, section string) bool {
	for _, m := range matches {
		if m.section == section {
			return true
		}
	}
	return false
}

// inferExperience places an experience section at the first employment date
// range after the first heading and before education or certifications.
// It only applies when skills or education headings were found.
func inferExperience(text string, matches []headingMatch) (headingMatch, bool) {
	if !hasSection(matches, SectionSkills) && !hasSection(matches, SectionEducation) {
		return headingMatch{}, false
	}
	lower := matches[0].lineEnd
	upper := len(text)
	for _, m := range matches {
		if m.lineEnd < lower {
			lower = m.lineEnd
		}
		if (m.section == SectionEducation || m.section == SectionCertifications) && m.lineStart < upper {
			upper = m.lineStart
		}
	}

	pos := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		start := pos
		pos += len(line)
		if start < lower || start >= upper {
			continue
		}
		if workDateRe.MatchString(line) {
			return headingMatch{SectionExperience, start, pos, start}, true
		}
	}
	return headingMatch{}, false
}

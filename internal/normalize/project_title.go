package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-builder/internal/model"
)

const fallbackTitleLen = 60

const months = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const rangeSep = `\s*(?:-|–|—|to)\s*`

const openEnd = `(?:present|current|till\s+date|now)`

var (
	// "Project 3:", "project - ", "Project #2 –"; a dash needs a numeral or
	// whitespace before it so "Project-X" stays intact
	labelRe = regexp.MustCompile(`(?i)^\s*project(?:\s*#?\s*\d+\s*[:\-–—]|\s*:|\s+[\-–—])\s*`)

	monthRangeRe   = regexp.MustCompile(`(?i)\(?\s*\b` + months + `\.?,?\s+\d{4}` + rangeSep + `(?:` + openEnd + `|` + months + `\.?,?\s+\d{4})\b\s*\)?`)
	yearRangeRe    = regexp.MustCompile(`(?i)\(?\s*\b(?:19|20)\d{2}` + rangeSep + `(?:(?:19|20)\d{2}|` + openEnd + `)\b\s*\)?`)
	numericRangeRe = regexp.MustCompile(`(?i)\(?\s*\b\d{1,2}/\d{4}` + rangeSep + `(?:\d{1,2}/\d{4}|` + openEnd + `)\b\s*\)?`)

	emptyBracketsRe = regexp.MustCompile(`\(\s*[,;:\-–—|/]*\s*\)|\[\s*[,;:\-–—|/]*\s*\]`)
	spaceBeforeRe   = regexp.MustCompile(`\s+([,;:])`)
	repeatedSepRe   = regexp.MustCompile(`([,;:|/\-–—])(?:\s*[,;:|/\-–—])+`)
)

const edgeSeparators = " \t,;:|/-–—"

// TitlePass is one named step of project-title cleanup.
type TitlePass struct {
	Name  string
	Apply func(title, location string) string
}

// TitlePasses run in order over a resolved project name.
var TitlePasses = []TitlePass{
	{Name: "label-strip", Apply: func(s, _ string) string { return StripProjectLabel(s) }},
	{Name: "date-strip", Apply: func(s, _ string) string { return StripDateRanges(s) }},
	{Name: "location-strip", Apply: StripLocation},
	{Name: "punctuation-collapse", Apply: func(s, _ string) string { return CollapsePunctuation(s) }},
}

// StripProjectLabel removes a leading "Project N:" style label.
func StripProjectLabel(s string) string {
	return labelRe.ReplaceAllString(s, "")
}

// StripDateRanges removes month-name, numeric month/year and bare year
// ranges, with or without surrounding parentheses.
func StripDateRanges(s string) string {
	s = numericRangeRe.ReplaceAllString(s, " ")
	s = monthRangeRe.ReplaceAllString(s, " ")
	return yearRangeRe.ReplaceAllString(s, " ")
}

// StripLocation removes location from s, tolerating any spacing around its
// commas and an optional leading separator. The location must stand on its
// own: "US" is not cut out of "Museum".
func StripLocation(s, location string) string {
	parts := splitSegments(collapse(location))
	if len(parts) == 0 {
		return s
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	loc := strings.Join(quoted, `\s*,\s*`)

	before, after := `()`, `()`
	if isWordRune(firstRune(parts[0])) {
		before = `(^|[^\p{L}\p{N}_])`
	}
	if isWordRune(lastRune(parts[len(parts)-1])) {
		after = `($|[^\p{L}\p{N}_])`
	}
	re, err := regexp.Compile(`(?i)` + before + `\s*[,;|/@\-–—]?\s*` + loc + after)
	if err != nil {
		return s
	}
	return re.ReplaceAllString(s, "${1} ${2}")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// CollapsePunctuation cleans up what the other passes leave behind.
func CollapsePunctuation(s string) string {
	for {
		next := emptyBracketsRe.ReplaceAllString(s, " ")
		if next == s {
			break
		}
		s = next
	}
	s = spaceRe.ReplaceAllString(s, " ")
	s = spaceBeforeRe.ReplaceAllString(s, "$1")
	s = repeatedSepRe.ReplaceAllString(s, "$1")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, edgeSeparators)
}

// CleanProjectName runs TitlePasses over raw.
func CleanProjectName(raw, location string) string {
	s := raw
	for _, p := range TitlePasses {
		s = p.Apply(s, location)
	}
	return s
}

// FormatProjectTitle builds the display title of the index-th project of a
// job with total projects. Numbering is only added when the job has more
// than one project.
func FormatProjectTitle(p model.Project, index, total int) string {
	raw := ProjectName(p)
	title := CleanProjectName(raw, p.ProjectLocation)
	if title == "" {
		if raw == "" {
			title = "Project"
		} else {
			title = truncateRunes(raw, fallbackTitleLen)
		}
	}
	if total > 1 {
		return fmt.Sprintf("Project %d: %s", index+1, title)
	}
	return title
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package extract

import (
	"regexp"
	"strings"
)

var bulletRe = regexp.MustCompile(`^\s*(?:--+|[-*` + bulletChars + `]+)(\s+|[A-Za-z0-9])`)

// StripBulletPrefix removes leading bullet markers such as "-", "--", "*"
// or "•" from a line.
func StripBulletPrefix(s string) string {
	for {
		loc := bulletRe.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		// a marker glued to a word keeps the word
		if strings.TrimSpace(s[loc[2]:loc[3]]) != "" {
			s = s[loc[2]:]
			continue
		}
		s = s[loc[1]:]
	}
	return strings.TrimLeft(s, " \t")
}

// StripBullets applies StripBulletPrefix to every item.
func StripBullets(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = StripBulletPrefix(it)
	}
	return out
}

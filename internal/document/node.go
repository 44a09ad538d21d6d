// Package document builds the single section tree that every renderer
// consumes, so the preview and the downloadable file always show the same
// text in the same order.
package document

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindBullets   Kind = "bullets"
	KindTable     Kind = "table"
	// KindSplit is a borderless two-column line: Left aligned left, Right
	// aligned right.
	KindSplit Kind = "split"
)

// Style carries presentation hints. Renderers may ignore any of them.
type Style struct {
	Bold   bool
	Italic bool
	Center bool
	Accent bool
	Indent int
}

type Node struct {
	Kind  Kind
	Level int
	// Label is rendered emphasized before Text, e.g. "Languages:".
	Label  string
	Text   string
	Items  []string
	Left   string
	Right  string
	Header []string
	Rows   [][]string
	Style  Style
}

// Display is the visible text of a paragraph or heading node.
func (n Node) Display() string {
	if n.Label == "" {
		return n.Text
	}
	if n.Text == "" {
		return n.Label
	}
	return n.Label + " " + n.Text
}

type Section struct {
	ID    string
	Title string
	Nodes []Node
}

type Document struct {
	FileName string
	Sections []Section
}

var wsRe = regexp.MustCompile(`\s+`)

// CollapseSpace trims s and folds whitespace runs to single spaces.
func CollapseSpace(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// Texts returns every visible string of d in reading order, whitespace
// collapsed and blanks dropped. Two renderings of the same document must
// yield the same sequence.
func (d *Document) Texts() []string {
	var out []string
	add := func(s string) {
		if s = CollapseSpace(s); s != "" {
			out = append(out, s)
		}
	}
	for _, s := range d.Sections {
		add(s.Title)
		for _, n := range s.Nodes {
			switch n.Kind {
			case KindHeading, KindParagraph:
				add(n.Display())
			case KindBullets:
				for _, it := range n.Items {
					add(it)
				}
			case KindSplit:
				add(n.Left)
				add(n.Right)
			case KindTable:
				for _, h := range n.Header {
					add(h)
				}
				for _, row := range n.Rows {
					for _, c := range row {
						add(c)
					}
				}
			}
		}
	}
	return out
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

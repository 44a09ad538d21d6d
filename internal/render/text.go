package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"resume-builder/internal/document"
)

// blocks hold one visible string each; nothing nests inside them.
var blocks = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.P: true, atom.Li: true, atom.Th: true, atom.Td: true,
}

// VisibleText returns the text of every block element inside the resume
// region of a rendered page, in document order, with whitespace collapsed
// and blanks dropped. For a page produced by HTMLRenderer it equals the
// Texts of the document that was rendered.
func VisibleText(r io.Reader) ([]string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	region := findByID(root, "resume")
	if region == nil {
		region = root
	}

	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.DataAtom == atom.Script || n.DataAtom == atom.Style:
				return
			case blocks[n.DataAtom]:
				if s := document.CollapseSpace(textOf(n)); s != "" {
					out = append(out, s)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(region)
	return out, nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

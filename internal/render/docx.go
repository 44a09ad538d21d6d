package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"resume-builder/internal/document"
)

const (
	docxAccent = "1F4E79"
	docxRule   = "9AA5B1"
	docxFill   = "DDE6EF"
	docxPaper  = "FFFFFF"
	// content width of an A4 page with 15mm margins, in twentieths of a point
	docxContentWidth = 10206

	// half-points
	docxNameSize    = "40"
	docxSectionSize = "25"

	// bullet list of the default theme's numbering part
	docxBulletNumID = "1"
)

var (
	ruledBorders = docx.APITableBorderColors{
		Top: docxRule, Left: docxRule, Bottom: docxRule, Right: docxRule,
		InsideH: docxRule, InsideV: docxRule,
	}
	// split rows are laid out as a table whose borders match the paper
	hiddenBorders = docx.APITableBorderColors{
		Top: docxPaper, Left: docxPaper, Bottom: docxPaper, Right: docxPaper,
		InsideH: docxPaper, InsideV: docxPaper,
	}
)

// DOCXRenderer writes a WordprocessingML package.
type DOCXRenderer struct{}

func NewDOCXRenderer() *DOCXRenderer { return &DOCXRenderer{} }

// RenderBytes builds the whole package in memory so a failure never leaves
// a truncated file behind.
func (r *DOCXRenderer) RenderBytes(d *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *DOCXRenderer) Render(w io.Writer, d *document.Document) error {
	f := docx.New().WithDefaultTheme()
	for _, s := range d.Sections {
		if s.Title != "" {
			f.AddParagraph().AddText(s.Title).Bold().Color(docxAccent).Size(docxSectionSize)
		}
		for _, n := range s.Nodes {
			addNode(f, n)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("docx: write: %w", err)
	}
	return nil
}

// styled applies the node style to a run.
func styled(run *docx.Run, s document.Style, accent bool) *docx.Run {
	if s.Bold {
		run = run.Bold()
	}
	if s.Italic {
		run = run.Italic()
	}
	if accent {
		run = run.Color(docxAccent)
	}
	return run
}

func addNode(f *docx.Docx, n document.Node) {
	switch n.Kind {
	case document.KindHeading:
		p := f.AddParagraph()
		if n.Style.Center {
			p = p.Justification("center")
		}
		p.AddText(n.Text).Bold().Color(docxAccent).Size(docxNameSize)
	case document.KindParagraph:
		p := f.AddParagraph()
		for range n.Style.Indent {
			p.AddText("").AddTab()
		}
		if n.Label == "" {
			styled(p.AddText(n.Text), n.Style, n.Style.Accent)
			return
		}
		p.AddText(n.Label).Bold().Color(docxAccent)
		if n.Text != "" {
			styled(p.AddText(" "+n.Text), n.Style, false)
		}
	case document.KindBullets:
		for _, it := range n.Items {
			f.AddParagraph().NumPr(docxBulletNumID, "0").AddText(it)
		}
	case document.KindSplit:
		borders := hiddenBorders
		t := f.AddTable(1, 2, docxContentWidth, &borders)
		cells := t.TableRows[0].TableCells
		styled(cells[0].AddParagraph().AddText(n.Left), n.Style, n.Style.Accent)
		styled(cells[1].AddParagraph().Justification("end").AddText(n.Right), n.Style, false)
	case document.KindTable:
		borders := ruledBorders
		t := f.AddTable(len(n.Rows)+1, len(n.Header), docxContentWidth, &borders)
		for i, h := range n.Header {
			c := t.TableRows[0].TableCells[i].Shade("clear", "auto", docxFill)
			c.AddParagraph().AddText(h).Bold().Color(docxAccent)
		}
		for i, row := range n.Rows {
			cells := t.TableRows[i+1].TableCells
			for j, v := range row {
				if j < len(cells) {
					cells[j].AddParagraph().AddText(v)
				}
			}
		}
	}
}

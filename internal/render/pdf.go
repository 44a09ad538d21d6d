package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"resume-builder/internal/document"
)

const (
	pdfMargin   = 15.0
	pdfLine     = 5.0
	pdfCellPad  = 1.2
	pdfIndentMM = 6.0
	pdfFamily   = "Helvetica"
)

var (
	pdfAccent = [3]int{0x1f, 0x4e, 0x79}
	pdfRule   = [3]int{0x9a, 0xa5, 0xb1}
	pdfFill   = [3]int{0xdd, 0xe6, 0xef}
)

// PDFRenderer lays the document out with gofpdf core fonts, without a
// browser.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) RenderBytes(d *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) Render(w io.Writer, d *document.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(d.FileName, true)
	pdf.SetCreator("resume-builder", true)
	pdf.AddPage()

	l := &pdfLayout{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, s := range d.Sections {
		if s.Title != "" {
			l.sectionTitle(s.Title)
		}
		for _, n := range s.Nodes {
			l.node(n)
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: layout: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}

type pdfLayout struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (l *pdfLayout) width() float64 {
	pw, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return pw - left - right
}

func (l *pdfLayout) font(bold, italic bool, size float64) {
	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	l.pdf.SetFont(pdfFamily, style, size)
}

func (l *pdfLayout) color(accent bool) {
	if accent {
		l.pdf.SetTextColor(pdfAccent[0], pdfAccent[1], pdfAccent[2])
		return
	}
	l.pdf.SetTextColor(0x22, 0x22, 0x22)
}

func (l *pdfLayout) sectionTitle(title string) {
	l.pdf.Ln(2)
	l.font(true, false, 12)
	l.color(true)
	l.pdf.CellFormat(0, 7, l.tr(title), "B", 1, "L", false, 0, "")
	l.pdf.Ln(1.5)
}

func (l *pdfLayout) node(n document.Node) {
	p := l.pdf
	switch n.Kind {
	case document.KindHeading:
		l.font(true, false, 18)
		l.color(true)
		align := "L"
		if n.Style.Center {
			align = "C"
		}
		p.CellFormat(0, 9, l.tr(n.Text), "", 1, align, false, 0, "")
	case document.KindParagraph:
		left, _, _, _ := p.GetMargins()
		if n.Style.Indent > 0 {
			p.SetLeftMargin(left + pdfIndentMM*float64(n.Style.Indent))
			p.SetX(left + pdfIndentMM*float64(n.Style.Indent))
		}
		if n.Label != "" {
			l.font(true, n.Style.Italic, 10)
			l.color(n.Style.Accent)
			p.Write(pdfLine, l.tr(n.Label))
			if n.Text != "" {
				l.font(n.Style.Bold, n.Style.Italic, 10)
				l.color(false)
				p.Write(pdfLine, l.tr(" "+n.Text))
			}
		} else {
			l.font(n.Style.Bold, n.Style.Italic, 10)
			l.color(n.Style.Accent)
			p.Write(pdfLine, l.tr(n.Text))
		}
		p.Ln(pdfLine)
		p.SetLeftMargin(left)
	case document.KindBullets:
		l.font(false, false, 10)
		l.color(false)
		left, _, _, _ := p.GetMargins()
		for _, it := range n.Items {
			p.SetX(left + 2)
			p.CellFormat(4, pdfLine, l.tr("•"), "", 0, "L", false, 0, "")
			p.MultiCell(l.width()-6, pdfLine, l.tr(it), "", "L", false)
		}
		p.Ln(1)
	case document.KindSplit:
		half := l.width() / 2
		l.font(n.Style.Bold, n.Style.Italic, 10.5)
		l.color(n.Style.Accent)
		p.CellFormat(half, 6, l.tr(n.Left), "", 0, "L", false, 0, "")
		l.color(false)
		p.CellFormat(half, 6, l.tr(n.Right), "", 1, "R", false, 0, "")
	case document.KindTable:
		l.table(n.Header, n.Rows)
	}
}

func (l *pdfLayout) table(header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}
	p := l.pdf
	colW := l.width() / float64(len(header))
	p.SetDrawColor(pdfRule[0], pdfRule[1], pdfRule[2])
	p.SetFillColor(pdfFill[0], pdfFill[1], pdfFill[2])
	p.SetLineWidth(0.2)

	l.font(true, false, 9)
	l.color(true)
	l.row(header, colW, true)

	l.font(false, false, 9)
	l.color(false)
	for _, r := range rows {
		l.row(r, colW, false)
	}
	p.Ln(2)
}

// row draws one bordered table row tall enough for its longest cell.
func (l *pdfLayout) row(cells []string, colW float64, fill bool) {
	p := l.pdf
	lineH := 4.5
	lines := 1
	for _, c := range cells {
		if n := len(p.SplitLines([]byte(l.tr(c)), colW-2*pdfCellPad)); n > lines {
			lines = n
		}
	}
	h := float64(lines)*lineH + 2*pdfCellPad

	_, pageH := p.GetPageSize()
	_, _, _, bottom := p.GetMargins()
	if p.GetY()+h > pageH-bottom {
		p.AddPage()
	}

	left, _, _, _ := p.GetMargins()
	y := p.GetY()
	style := "D"
	if fill {
		style = "FD"
	}
	for i, c := range cells {
		x := left + float64(i)*colW
		p.Rect(x, y, colW, h, style)
		p.SetXY(x+pdfCellPad, y+pdfCellPad)
		p.MultiCell(colW-2*pdfCellPad, lineH, l.tr(c), "", "L", false)
	}
	p.SetXY(left, y+h)
}

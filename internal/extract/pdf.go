package extract

import (
	"fmt"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// PDFText returns the plain text of every page, one page after another.
func PDFText(r io.ReaderAt, size int64) (text string, err error) {
	// the reader panics on some malformed files
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf: %v", rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		pt, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(pt)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

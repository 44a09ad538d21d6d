// Package render turns an assembled document into the artifacts users see:
// the HTML preview and print view, the DOCX download and a PDF.
// Renderers are stateless and read nothing but the document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/document"
)

//go:embed templates/resume.html templates/style.css
var templateFS embed.FS

const (
	templateName = "resume.html"
	styleName    = "style.css"
)

// Mode selects between the interactive preview and the print view.
type Mode int

const (
	Preview Mode = iota
	Print
)

type HTMLRenderer struct {
	tpl *template.Template
	css template.CSS
}

// NewHTMLRenderer loads the page template and stylesheet. Files present in
// dir replace the embedded ones; dir may be empty.
func NewHTMLRenderer(dir string) (*HTMLRenderer, error) {
	tplSrc, err := loadAsset(dir, templateName)
	if err != nil {
		return nil, err
	}
	css, err := loadAsset(dir, styleName)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(templateName).Funcs(template.FuncMap{"classes": classes}).Parse(string(tplSrc))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &HTMLRenderer{tpl: tpl, css: template.CSS(css)}, nil
}

func loadAsset(dir, name string) ([]byte, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	return templateFS.ReadFile("templates/" + name)
}

type pageData struct {
	Title string
	CSS   template.CSS
	Print bool
	Doc   *document.Document
}

func (h *HTMLRenderer) Render(w io.Writer, d *document.Document, mode Mode) error {
	title := strings.TrimSuffix(d.FileName, filepath.Ext(d.FileName))
	return h.tpl.Execute(w, pageData{Title: title, CSS: h.css, Print: mode == Print, Doc: d})
}

// RenderBytes is Render into a buffer.
func (h *HTMLRenderer) RenderBytes(d *document.Document, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.Render(&buf, d, mode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func classes(s document.Style) string {
	var c []string
	if s.Bold {
		c = append(c, "bold")
	}
	if s.Italic {
		c = append(c, "italic")
	}
	if s.Center {
		c = append(c, "center")
	}
	if s.Accent {
		c = append(c, "accent")
	}
	if s.Indent > 0 {
		c = append(c, fmt.Sprintf("indent-%d", s.Indent))
	}
	return strings.Join(c, " ")
}

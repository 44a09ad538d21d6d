package render

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/document"
	"resume-builder/internal/extract"
	"resume-builder/internal/model"
)

const resumeJSON = `{
  "name": "Ana <Dev> & Co",
  "title": "Staff Engineer",
  "requisitionNumber": "7781",
  "professionalSummary": ["Ten years of backend work", "Mentor"],
  "subsections": [{"title": "Highlights", "content": ["Cut latency 40%"]}],
  "employmentHistory": [{
    "companyName": "Globex",
    "roleName": "Lead",
    "workPeriod": "Jan 2020 - Present",
    "location": "Pune, Maharashtra, India",
    "department": "Payments",
    "projects": [{"projectName": "Ledger (2020 - 2021)", "projectResponsibilities": ["Designed the ledger"], "keyTechnologies": "Go, Kafka"}],
    "responsibilities": ["Hiring"],
    "keyTechnologies": "Go"
  }],
  "education": [{"degree": "M.S.", "school": "IIT", "wasAwarded": false}],
  "technicalSkills": {"Languages": ["Go", "Rust"]},
  "skillCategories": [{"categoryName": "Cloud", "skills": ["GCP"], "subCategories": [{"name": "Infra", "skills": ["Terraform"]}]}]
}`

func fixtures(t *testing.T) map[string]*document.Document {
	t.Helper()
	return map[string]*document.Document{
		"full":  document.Assemble(model.SanitizeJSON([]byte(resumeJSON))),
		"empty": document.Assemble(model.Empty()),
	}
}

func TestHTMLPreviewMatchesDocumentText(t *testing.T) {
	h, err := NewHTMLRenderer("")
	require.NoError(t, err)

	for name, d := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			for _, mode := range []Mode{Preview, Print} {
				page, err := h.RenderBytes(d, mode)
				require.NoError(t, err)

				got, err := VisibleText(bytes.NewReader(page))
				require.NoError(t, err)
				assert.Equal(t, d.Texts(), got)
			}
		})
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	h, err := NewHTMLRenderer("")
	require.NoError(t, err)

	page, err := h.RenderBytes(fixtures(t)["full"], Preview)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Ana &lt;Dev&gt; &amp; Co")
	assert.NotContains(t, string(page), "<Dev>")
}

func TestHTMLPrintView(t *testing.T) {
	h, err := NewHTMLRenderer("")
	require.NoError(t, err)

	page, err := h.RenderBytes(fixtures(t)["full"], Print)
	require.NoError(t, err)
	s := string(page)
	assert.Contains(t, s, `class="print-view"`)
	assert.Contains(t, s, "@media print")
	assert.Contains(t, s, `id="resume"`)

	preview, err := h.RenderBytes(fixtures(t)["full"], Preview)
	require.NoError(t, err)
	assert.Contains(t, string(preview), `class="preview"`)
}

func TestHTMLTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	tpl := `<html><body><div id="resume">{{range .Doc.Sections}}<h2>{{.Title}}</h2>{{end}}</div><p>outside</p></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.html"), []byte(tpl), 0o644))

	h, err := NewHTMLRenderer(dir)
	require.NoError(t, err)

	page, err := h.RenderBytes(fixtures(t)["empty"], Preview)
	require.NoError(t, err)

	got, err := VisibleText(bytes.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"Education", "Certifications", "Employment History", "Professional Summary", "Technical Skills"}, got)
}

func TestHTMLBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resume.html"), []byte("{{range}"), 0o644))
	_, err := NewHTMLRenderer(dir)
	assert.Error(t, err)
}

func TestVisibleTextIgnoresChrome(t *testing.T) {
	page := `<html><head><style>p{}</style></head><body><nav>menu</nav>
<main id="resume"><h1> A  <b>B</b></h1><p>  </p><ul><li>one</li><li>two</li></ul></main></body></html>`
	got, err := VisibleText(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []string{"A B", "one", "two"}, got)
}

func TestDOCXMatchesDocumentText(t *testing.T) {
	r := NewDOCXRenderer()
	for name, d := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			b, err := r.RenderBytes(d)
			require.NoError(t, err)

			text, err := extract.DOCXText(bytes.NewReader(b), int64(len(b)))
			require.NoError(t, err)

			var lines []string
			for _, line := range strings.Split(text, "\n") {
				if s := document.CollapseSpace(line); s != "" {
					lines = append(lines, s)
				}
			}
			assert.Equal(t, d.Texts(), lines)
		})
	}
}

func docxDocumentPart(t *testing.T, b []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(body)
		}
	}
	t.Fatal("word/document.xml missing")
	return ""
}

func TestDOCXLayout(t *testing.T) {
	b, err := NewDOCXRenderer().RenderBytes(fixtures(t)["full"])
	require.NoError(t, err)
	part := docxDocumentPart(t, b)

	// education and certifications are ruled, split lines are not
	assert.Contains(t, part, docxRule)
	assert.Contains(t, part, docxPaper)
	assert.Contains(t, part, docxFill)
	assert.Contains(t, part, docxAccent)
	assert.Contains(t, part, "numId")
}

func TestPDFRenders(t *testing.T) {
	r := NewPDFRenderer()
	for name, d := range fixtures(t) {
		t.Run(name, func(t *testing.T) {
			b, err := r.RenderBytes(d)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
		})
	}
}

func TestClasses(t *testing.T) {
	assert.Equal(t, "", classes(document.Style{}))
	assert.Equal(t, "bold center indent-1", classes(document.Style{Bold: true, Center: true, Indent: 1}))
}

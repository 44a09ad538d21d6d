package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = `Jane Roe
jane@example.com | Austin, TX

Professional Summary
- Ten years building backend systems
- Mentor

Work Experience:
Acme Corp   Jan 2019 - Present
• Built the billing platform

EDUCATION
BS Computer Science, UT Austin

Skills: Go, SQL, Kafka

Certifications
CKA - CNCF
`

func TestChunk(t *testing.T) {
	c := Chunk(resumeText)

	assert.Equal(t, "Jane Roe\njane@example.com | Austin, TX", c.Get(SectionHeader))
	assert.Equal(t, "- Ten years building backend systems\n- Mentor", c.Get(SectionSummary))
	assert.Equal(t, "Acme Corp   Jan 2019 - Present\n• Built the billing platform", c.Get(SectionExperience))
	assert.Equal(t, "BS Computer Science, UT Austin", c.Get(SectionEducation))
	assert.Equal(t, "Go, SQL, Kafka", c.Get(SectionSkills))
	assert.Equal(t, "CKA - CNCF", c.Get(SectionCertifications))
	assert.Equal(t, SectionOrder, c.Detected())
	assert.Empty(t, c.Uncategorized)
}

func TestChunkNoHeadings(t *testing.T) {
	c := Chunk("  just some text\nwith no headings  ")
	assert.Equal(t, "just some text\nwith no headings", c.Uncategorized)
	assert.Empty(t, c.Detected())
}

func TestChunkRepeatedSectionIsJoined(t *testing.T) {
	c := Chunk("Skills\nGo\nEducation\nBS\nTechnical Skills\nSQL\n")
	assert.Equal(t, "Go\n\nSQL", c.Get(SectionSkills))
	assert.Equal(t, "BS", c.Get(SectionEducation))
	assert.Empty(t, c.Get(SectionHeader))
}

func TestChunkInfersExperience(t *testing.T) {
	text := "Jane\nSkills\nGo, SQL\nAcme Corp Mar 2018 - Dec 2020\nBuilt things\nEducation\nBS\n"
	c := Chunk(text)
	assert.Equal(t, "Go, SQL", c.Get(SectionSkills))
	assert.Equal(t, "Acme Corp Mar 2018 - Dec 2020\nBuilt things", c.Get(SectionExperience))
	assert.Equal(t, "BS", c.Get(SectionEducation))
}

func TestChunkIgnoresHeadingWordsInProse(t *testing.T) {
	c := Chunk("Summary\nCertified Professional Scrum Master with education in CS\n")
	assert.Equal(t, "Certified Professional Scrum Master with education in CS", c.Get(SectionSummary))
	assert.Empty(t, c.Get(SectionCertifications))
}

func TestStripBulletPrefix(t *testing.T) {
	cases := map[string]string{
		"- Led a team":      "Led a team",
		"  • Built":         "Built",
		"-- nested":         "nested",
		"*• both":           "both",
		"-5% latency":       "5% latency",
		"No bullet":         "No bullet",
		"":                  "",
		"·Cut costs":        "Cut costs",
		"- - double spaced": "double spaced",
	}
	for in, want := range cases {
		assert.Equal(t, want, StripBulletPrefix(in), in)
	}
	assert.Equal(t, []string{"a", "b"}, StripBullets([]string{"- a", "• b"}))
}

func TestDetect(t *testing.T) {
	_, err := Detect("cv.pdf", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	kind, err := Detect("cv.txt", []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, KindTXT, kind)

	kind, err = Detect("cv.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"))
	require.NoError(t, err)
	assert.Equal(t, KindPDF, kind)

	kind, err = Detect("cv.docx", docxFixture(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`))
	require.NoError(t, err)
	assert.Equal(t, KindDOCX, kind)

	_, err = Detect("photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func docxFixture(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDOCXText(t *testing.T) {
	data := docxFixture(t,
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>`+
			`<w:r><w:t>Name</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve"> Jane &amp; Co</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)

	text, err := DOCXText(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "Name\t Jane & Co\nline one\nline two\ncell\n", text)
}

func TestDOCXTextMissingPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = DOCXText(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	assert.Error(t, err)
}

func TestTextTXT(t *testing.T) {
	text, err := Text("cv.txt", []byte("\xef\xbb\xbfJane\r\nRoe"))
	require.NoError(t, err)
	assert.Equal(t, "Jane\nRoe", text)
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	data := []byte("%PDF-1.4 not really a pdf")
	_, err := PDFText(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

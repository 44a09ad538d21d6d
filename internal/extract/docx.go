package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errNoDocumentPart = errors.New("word/document.xml not found")

// DOCXText returns the text of the main document part. Paragraphs and
// breaks end a line; tabs inside runs become tab characters.
func DOCXText(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", errNoDocumentPart
}

func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inRun  int
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				inRun++
			case "t":
				inText = inRun > 0
			case "tab":
				if inRun > 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if inRun > 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "r":
				inRun--
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

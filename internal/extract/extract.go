// Package extract pulls plain text out of uploaded resume files and splits
// it into the sections the extraction agents work on.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
)

type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindTXT  Kind = "txt"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Detect sniffs the content of an upload. The file name only breaks ties
// the content cannot, such as a DOCX the detector reports as a plain zip.
func Detect(name string, data []byte) (Kind, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	ext := strings.ToLower(filepath.Ext(name))
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return KindPDF, nil
	case mt.Is(docxMIME):
		return KindDOCX, nil
	case mt.Is("application/zip") && ext == ".docx":
		return KindDOCX, nil
	case mt.Is("text/plain"):
		return KindTXT, nil
	case ext == ".txt" && utf8.Valid(data):
		return KindTXT, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, mt.String(), ext)
}

// Text detects the type of data and returns its plain text.
func Text(name string, data []byte) (string, error) {
	kind, err := Detect(name, data)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case KindPDF:
		text, err = PDFText(bytes.NewReader(data), int64(len(data)))
	case KindDOCX:
		text, err = DOCXText(bytes.NewReader(data), int64(len(data)))
	case KindTXT:
		text = plainText(data)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	slog.Debug("text extracted", "file", name, "kind", kind, "bytes", len(data), "chars", utf8.RuneCountInString(text))
	return text, nil
}

func plainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	s := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/document"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/pkg/logger"
)

// ExportFailedMessage is the only text a user sees when a download fails.
const ExportFailedMessage = "Could not generate the document. Please try again."

var (
	ErrExportFailed  = errors.New("export failed")
	ErrUnknownFormat = errors.New("unknown export format")
)

type Format string

const (
	FormatDOCX  Format = "docx"
	FormatPDF   Format = "pdf"
	FormatPrint Format = "print"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	pdfContentType  = "application/pdf"
)

// Renderer turns a complete HTML page into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Exporter produces downloadable files from ResumeData. All formats are
// rendered from one assembled document.
type Exporter struct {
	html    *render.HTMLRenderer
	docx    *render.DOCXRenderer
	pdf     *render.PDFRenderer
	printer Renderer

	// print retries, doubled after each failure
	Attempts int
	Backoff  time.Duration
}

// NewExporter builds an Exporter. printer may be nil, in which case the
// print format is unavailable.
func NewExporter(html *render.HTMLRenderer, printer Renderer) *Exporter {
	return &Exporter{
		html:     html,
		docx:     render.NewDOCXRenderer(),
		pdf:      render.NewPDFRenderer(),
		printer:  printer,
		Attempts: 3,
		Backoff:  time.Second,
	}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatPrint:
		return FormatPrint, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Export renders r in format f. Any failure, including a renderer panic, is
// returned wrapped in ErrExportFailed and no partial artifact.
func (e *Exporter) Export(ctx context.Context, r model.ResumeData, f Format) (a Artifact, err error) {
	log := logger.FromContext(ctx).With("format", f)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
		if err != nil {
			log.Error("export failed", "error", err)
			a, err = Artifact{}, fmt.Errorf("%w: %w", ErrExportFailed, err)
		}
	}()

	doc := document.Assemble(r)
	switch f {
	case FormatDOCX:
		a = Artifact{FileName: r.FileName("docx"), ContentType: docxContentType}
		a.Body, err = e.docx.RenderBytes(doc)
	case FormatPDF:
		a = Artifact{FileName: r.FileName("pdf"), ContentType: pdfContentType}
		a.Body, err = e.pdf.RenderBytes(doc)
	case FormatPrint:
		a = Artifact{FileName: r.FileName("pdf"), ContentType: pdfContentType}
		a.Body, err = e.printPDF(ctx, doc)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return a, err
	}
	log.Info("exported", "file", a.FileName, "bytes", len(a.Body))
	return a, nil
}

// Page renders the HTML preview or print view.
func (e *Exporter) Page(r model.ResumeData, mode render.Mode) ([]byte, error) {
	return e.html.RenderBytes(document.Assemble(r), mode)
}

func (e *Exporter) printPDF(ctx context.Context, doc *document.Document) ([]byte, error) {
	if e.printer == nil {
		return nil, errors.New("print renderer is not configured")
	}
	page, err := e.html.RenderBytes(doc, render.Print)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	attempts := max(e.Attempts, 1)
	var lastErr error
	for i := 0; i < attempts; i++ {
		out, err := e.printer.RenderHTMLToPDF(ctx, string(page))
		if err == nil {
			if bytes.HasPrefix(out, []byte("%PDF")) {
				return out, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(out))
		}
		lastErr = err
		log.Warn("print attempt failed", "attempt", i+1, "error", err)
		if i < attempts-1 {
			select {
			case <-time.After(e.Backoff << i):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

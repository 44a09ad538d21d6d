package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/internal/document"
	"resume-builder/internal/extract"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
)

func newRenderCommand() *cobra.Command {
	var (
		outDir      string
		templateDir string
		check       bool
	)
	cmd := &cobra.Command{
		Use:   "render <resume.json>",
		Short: "Render resume data to HTML, DOCX and PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			r := model.SanitizeJSON(b)
			if err := model.ValidateResume(r); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			files, err := renderAll(r, templateDir)
			if err != nil {
				return err
			}
			if check {
				if err := checkParity(document.Assemble(r), files); err != nil {
					return err
				}
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for _, ext := range []string{"html", "docx", "pdf"} {
				out := filepath.Join(outDir, base+"."+ext)
				if err := os.WriteFile(out, files[ext], 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&templateDir, "templates", "", "Directory overriding resume.html and style.css")
	cmd.Flags().BoolVar(&check, "check", true, "Fail when the HTML or DOCX text differs from the document model")
	return cmd
}

// renderAll returns the artifacts keyed by file extension.
func renderAll(r model.ResumeData, templateDir string) (map[string][]byte, error) {
	h, err := render.NewHTMLRenderer(templateDir)
	if err != nil {
		return nil, err
	}
	d := document.Assemble(r)
	html, err := h.RenderBytes(d, render.Preview)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	docx, err := render.NewDOCXRenderer().RenderBytes(d)
	if err != nil {
		return nil, fmt.Errorf("docx: %w", err)
	}
	pdf, err := render.NewPDFRenderer().RenderBytes(d)
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return map[string][]byte{"html": html, "docx": docx, "pdf": pdf}, nil
}

func checkParity(d *document.Document, files map[string][]byte) error {
	want := d.Texts()

	got, err := render.VisibleText(bytes.NewReader(files["html"]))
	if err != nil {
		return fmt.Errorf("html text: %w", err)
	}
	if !slices.Equal(want, got) {
		return fmt.Errorf("html text differs from document: %s", firstDiff(want, got))
	}

	text, err := extract.DOCXText(bytes.NewReader(files["docx"]), int64(len(files["docx"])))
	if err != nil {
		return fmt.Errorf("docx text: %w", err)
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := document.CollapseSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if !slices.Equal(want, lines) {
		return fmt.Errorf("docx text differs from document: %s", firstDiff(want, lines))
	}
	return nil
}

func firstDiff(want, got []string) string {
	for i := range min(len(want), len(got)) {
		if want[i] != got[i] {
			return fmt.Sprintf("item %d: want %q, got %q", i, want[i], got[i])
		}
	}
	return fmt.Sprintf("want %d items, got %d", len(want), len(got))
}

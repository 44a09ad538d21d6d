package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/internal/document"
	"resume-builder/internal/render"
	"resume-builder/internal/stream"
)

func newUploadCommand() *cobra.Command {
	var (
		server string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF, DOCX or TXT resume and follow the processing stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			c, err := stream.NewClient(server).Upload(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), c.Events())
			r, err := c.Wait()
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			docx, err := render.NewDOCXRenderer().RenderBytes(document.Assemble(r))
			if err != nil {
				return err
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for ext, body := range map[string][]byte{"json": b, "docx": docx} {
				out := filepath.Join(outDir, base+"."+ext)
				if err := os.WriteFile(out, body, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:3000", "Base URL of the resume builder service")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the extracted resume JSON and DOCX")
	return cmd
}

func printEvents(w io.Writer, events <-chan stream.Event) {
	for e := range events {
		line := fmt.Sprintf("[%3d%%] %-20s %s", e.Progress, e.Type, e.Message)
		if len(e.Sections) > 0 {
			line += " (" + strings.Join(e.Sections, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:           "resumectl",
		Short:         "Upload resumes to the builder service and render resume data locally",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Setup(level, "text", cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.AddCommand(newUploadCommand())
	cmd.AddCommand(newRenderCommand())
	return cmd
}

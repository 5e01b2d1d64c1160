// Package main provides the resume_builder CLI: the editing server plus offline
// render and import commands.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "resume_builder",
	Short:        "Interactive resume builder",
	Long:         "Resume Builder serves a step-by-step resume editor with a live preview, AI writing assistance, resume import and print-ready export.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the global logger from cfg.
func setupLogging(cfg config.Config, out io.Writer) {
	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: out,
	})
}

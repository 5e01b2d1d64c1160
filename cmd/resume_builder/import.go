package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/observability"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse an existing resume into JSON",
	Long:  "Sends a resume file (PDF, DOCX, image, text or HTML), pasted text or a public profile URL to the model and prints the structured partial resume as JSON.",
	RunE:  runImport,
}

var (
	importFile       string
	importTextFile   string
	importURL        string
	importVerbose    bool
	importConfigFile string
)

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to a resume document")
	importCmd.Flags().StringVarP(&importTextFile, "text-file", "t", "", "Path to a file of pasted resume text")
	importCmd.Flags().StringVarP(&importConfigFile, "config", "c", "", "Path to JSON config file")
	importCmd.Flags().StringVarP(&importURL, "url", "u", "", "URL of a public profile or hosted resume")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print a summary of the imported sections to stderr")
	importCmd.MarkFlagsOneRequired("file", "text-file", "url")
	importCmd.MarkFlagsMutuallyExclusive("file", "text-file", "url")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(importConfigFile)
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	in, err := readImportInput(importFile, importTextFile, importURL)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: set GEMINI_API_KEY", importer.ErrNoCredential)
	}
	defer client.Close() //nolint:errcheck

	im := newImporter(client, cfg)
	partial, err := im.Import(ctx, in)
	if err != nil {
		return err
	}

	if importVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintImportSummary(&partial)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(partial)
}

// readImportInput loads exactly one of a document, a text file or a URL.
func readImportInput(file, textFile, url string) (importer.Input, error) {
	set := 0
	for _, v := range []string{file, textFile, url} {
		if v != "" {
			set++
		}
	}
	switch {
	case set > 1:
		return importer.Input{}, errors.New("use only one of --file, --text-file or --url")
	case url != "":
		return importer.Input{URL: url}, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return importer.Input{}, fmt.Errorf("failed to read resume file: %w", err)
		}
		return importer.Input{File: &importer.File{Name: filepath.Base(file), Data: data}}, nil
	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return importer.Input{}, fmt.Errorf("failed to read text file: %w", err)
		}
		return importer.Input{Text: string(data)}, nil
	}
	return importer.Input{}, errors.New("provide --file, --text-file or --url")
}

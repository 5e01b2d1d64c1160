package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to HTML or PDF",
	Long:  "Renders a ResumeData JSON document offline, to the same HTML the editor previews and optionally to an A4 PDF through headless Chrome.",
	RunE:  runRender,
}

var (
	renderInFile     string
	renderOutFile    string
	renderPDFFile    string
	renderPrintPage  bool
	renderChromePath string
	renderVerbose    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInFile, "in", "i", "", "Path to ResumeData JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutFile, "out", "o", "", "Path to output HTML file")
	renderCmd.Flags().StringVar(&renderPDFFile, "pdf", "", "Path to output PDF file")
	renderCmd.Flags().BoolVar(&renderPrintPage, "print", false, "Write the auto-printing page instead of the preview")
	renderCmd.Flags().StringVar(&renderChromePath, "chrome", "", "Chrome/Chromium executable (defaults to CHROME_PATH or PATH lookup)")

	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print an overview of the resume to stderr")

	_ = renderCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderOutFile == "" && renderPDFFile == "" {
		return errors.New("provide --out, --pdf or both")
	}
	env := config.FromEnv()
	cfg := env.MergeWithDefaults(config.Defaults())
	setupLogging(cfg, os.Stderr)

	data, err := loadResume(renderInFile)
	if err != nil {
		return err
	}
	if renderVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResumeOverview(data)
	}

	if renderOutFile != "" {
		render := rendering.RenderHTML
		if renderPrintPage {
			render = rendering.RenderPrintHTML
		}
		html, err := render(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(renderOutFile, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutFile)
	}

	if renderPDFFile != "" {
		chromePath := renderChromePath
		if chromePath == "" {
			chromePath = cfg.ChromePath
		}
		if err := writePDF(cmd.Context(), data, renderPDFFile, chromePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderPDFFile)
	}
	return nil
}

// loadResume reads, validates and normalises a ResumeData JSON file. Entities
// without ids get one and a missing theme becomes the default.
func loadResume(path string) (types.ResumeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to read input file: %w", err)
	}
	if err := schemas.Validate(schemas.ResumeData, string(raw)); err != nil {
		return types.ResumeData{}, err
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to parse resume JSON: %w", err)
	}
	return document.Load(data).Snapshot(), nil
}

func writePDF(ctx context.Context, data types.ResumeData, path, chromePath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	html, err := rendering.RenderHTML(data)
	if err != nil {
		return err
	}
	start := time.Now()
	renderer := &rendering.PDFRenderer{ChromePath: chromePath}
	pdf, err := renderer.RenderPDF(ctx, html)
	if err != nil {
		return err
	}
	log.Debug().Dur("duration", time.Since(start)).Int("bytes", len(pdf)).Msg("pdf rendered")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}

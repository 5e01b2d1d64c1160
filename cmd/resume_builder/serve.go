package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/importer"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor API server",
	Long:  `Start an HTTP server that hosts editing sessions, live previews, AI assistance, import and PDF export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	setupLogging(cfg, os.Stdout)

	client, err := newLLMClient(context.Background(), cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close() //nolint:errcheck
	} else {
		log.Warn().Msg("no API key configured: AI actions return fallbacks and import is unavailable")
	}

	sessions := editor.NewManager(editor.ManagerConfig{
		TTL: cfg.SessionTTLDuration(),
		Session: editor.SessionOptions{
			Debounce: cfg.PreviewDebounce(),
		},
	})

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxImageBytes:  cfg.MaxImageBytes,
		Sessions:       sessions,
		Assistant:      assist.New(client),
		Importer:       newImporter(client, cfg),
		PDF:            &rendering.PDFRenderer{ChromePath: cfg.ChromePath},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info().
		Int("port", cfg.Port).
		Str("model", cfg.Model).
		Dur("debounce", cfg.PreviewDebounce()).
		Dur("session_ttl", cfg.SessionTTLDuration()).
		Msg("resume builder configured")
	return srv.Start()
}

func newImporter(client llm.Client, cfg config.Config) *importer.Importer {
	return importer.New(client, importer.Options{
		ExtractPDFLocally: cfg.ExtractPDFLocally,
		Fetch:             cfg.FetchOptions(),
	})
}

// newLLMClient returns a Gemini client, or nil when no key is configured.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if !cfg.HasAPIKey() {
		return nil, nil
	}
	client, err := llm.NewClient(ctx, llm.ConfigForModel(cfg.Model), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return client, nil
}

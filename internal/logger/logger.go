// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config controls level and output format.
type Config struct {
	Level        string `json:"level"`  // debug, info, warn, error
	Format       string `json:"format"` // json or pretty
	TimeFormat   string `json:"time_format"`
	ReportCaller bool   `json:"report_caller"`
	// Output defaults to stdout.
	Output io.Writer `json:"-"`
}

// Init builds a logger from config and installs it as the zerolog global.
// An unknown level falls back to info.
func Init(config Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if config.Format == FormatPretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: config.TimeFormat}
	}

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()
	return log.Logger
}

// Ctx returns the logger stored in ctx, or the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != zerolog.DefaultContextLogger && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

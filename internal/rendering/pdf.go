package rendering

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// DefaultPDFTimeout bounds a single PDF render, including browser start-up.
const DefaultPDFTimeout = 60 * time.Second

// A4 in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PDFRenderer prints rendered resume HTML to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PDFRenderer struct {
	// ChromePath overrides the browser executable; empty uses the default lookup.
	ChromePath string
	// Timeout bounds each render; zero means DefaultPDFTimeout.
	Timeout time.Duration
}

// RenderPDF loads html into a fresh headless browser and prints it to an A4 PDF
// with backgrounds, honoring any CSS page size.
func (r *PDFRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &PDFError{
			TimedOut: errors.Is(browserCtx.Err(), context.DeadlineExceeded),
			Cause:    err,
		}
	}

	log.Debug().
		Int("bytes", len(pdf)).
		Dur("elapsed", time.Since(start)).
		Msg("rendered PDF")
	return pdf, nil
}

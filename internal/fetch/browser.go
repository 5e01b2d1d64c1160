package fetch

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	cdpfetch "github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// MinContentLength is the minimum extracted text length to consider HTTP fetch successful.
// If content is shorter, we should fall back to browser rendering.
const MinContentLength = 500

// renderSettle gives client-side rendering time to finish after body is ready.
const renderSettle = 2 * time.Second

// ShouldUseBrowser returns true if the extracted text is too short,
// indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in headless Chrome and returns the rendered HTML.
// Unless opts.AllowPrivateNetworks is set, every request the page makes is
// resolved again and failed when it targets a non-public address.
func WithBrowser(ctx context.Context, pageURL string, opts *Options) (string, error) {
	opts = opts.withDefaults()
	if !opts.AllowPrivateNetworks {
		if err := allowBrowserRequest(ctx, pageURL); err != nil {
			return "", &Error{URL: pageURL, Message: "browser navigation refused", Cause: err}
		}
	}

	log.Debug().Str("url", pageURL).Msg("rendering page in headless browser")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	var actions []chromedp.Action
	if !opts.AllowPrivateNetworks {
		chromedp.ListenTarget(browserCtx, func(ev any) {
			if paused, ok := ev.(*cdpfetch.EventRequestPaused); ok {
				go guardRequest(browserCtx, paused)
			}
		})
		actions = append(actions, cdpfetch.Enable())
	}

	var html string
	actions = append(actions,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	log.Debug().Str("url", pageURL).Int("bytes", len(html)).Msg("browser rendered page")
	return html, nil
}

// guardRequest resumes or fails one intercepted browser request.
func guardRequest(ctx context.Context, ev *cdpfetch.EventRequestPaused) {
	execCtx := cdp.WithExecutor(ctx, chromedp.FromContext(ctx).Target)

	var err error
	if blocked := allowBrowserRequest(ctx, ev.Request.URL); blocked != nil {
		log.Warn().Err(blocked).Str("url", ev.Request.URL).Msg("browser request blocked")
		err = cdpfetch.FailRequest(ev.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx)
	} else {
		err = cdpfetch.ContinueRequest(ev.RequestID).Do(execCtx)
	}
	if err != nil && ctx.Err() == nil {
		log.Debug().Err(err).Str("url", ev.Request.URL).Msg("resuming intercepted request failed")
	}
}

// allowBrowserRequest reports ErrBlockedAddress for a request the browser must
// not make: a non-network scheme, or a host with any non-public address.
func allowBrowserRequest(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrBlockedAddress
	}
	switch u.Scheme {
	case "data", "blob":
		return nil
	case "http", "https", "ws", "wss":
	default:
		return ErrBlockedAddress
	}

	host := u.Hostname()
	if ip := net.ParseIP(host); ip != nil {
		if !isPublic(ip) {
			return ErrBlockedAddress
		}
		return nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", host, err)
	}
	for _, addr := range addrs {
		if !isPublic(addr.IP) {
			return ErrBlockedAddress
		}
	}
	return nil
}

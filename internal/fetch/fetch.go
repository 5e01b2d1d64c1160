// Package fetch retrieves a resume or public profile from a URL so it can be
// imported, and reduces profile pages to their main text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 20 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"

// DefaultMaxBytes caps the size of a fetched document.
const DefaultMaxBytes = 5 << 20

const maxRedirects = 5

// ErrBlockedAddress is returned when a URL resolves to a loopback, private or
// link-local address.
var ErrBlockedAddress = errors.New("address is not publicly routable")

// Result holds the content fetched from a URL.
type Result struct {
	URL         string
	Body        []byte
	ContentType string // media type without parameters
	StatusCode  int
	Platform    Platform
	// Rendered is set when Body came from the headless browser.
	Rendered bool
}

// IsHTML reports whether the body is an HTML page.
func (r *Result) IsHTML() bool {
	return r.ContentType == "text/html" || r.ContentType == "application/xhtml+xml"
}

// Text returns the main text of an HTML result using the platform's selectors.
func (r *Result) Text() (string, error) {
	return ExtractMainText(string(r.Body), PlatformContentSelectors(r.Platform), PlatformNoiseSelectors(r.Platform)...)
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	MaxBytes  int64
	// AllowPrivateNetworks permits loopback and private addresses. Tests only.
	AllowPrivateNetworks bool
	// Browser re-renders pages whose text is too short in headless Chrome.
	Browser    bool
	ChromePath string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.MaxBytes <= 0 {
		out.MaxBytes = DefaultMaxBytes
	}
	return &out
}

// ValidateURL checks that urlStr is an absolute http or https URL.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	return nil
}

// Document fetches urlStr and, when enabled, falls back to the headless
// browser for pages that render their content with JavaScript.
func Document(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	if !result.IsHTML() || !opts.Browser {
		return result, nil
	}

	text, err := result.Text()
	if err == nil && !ShouldUseBrowser(text) {
		return result, nil
	}

	html, err := WithBrowser(ctx, urlStr, opts)
	if err != nil {
		log.Warn().Err(err).Str("url", urlStr).Msg("browser rendering failed, using fetched HTML")
		return result, nil
	}
	result.Body = []byte(html)
	result.Rendered = true
	return result, nil
}

// URL retrieves a document from urlStr.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/pdf,text/plain;q=0.9,*/*;q=0.8")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := newClient(opts).Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if int64(len(body)) > opts.MaxBytes {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("document exceeds %d bytes", opts.MaxBytes)}
	}

	result := &Result{
		URL:         resp.Request.URL.String(),
		Body:        body,
		ContentType: mediaType(resp.Header.Get("Content-Type")),
		StatusCode:  resp.StatusCode,
		Platform:    DetectPlatform(resp.Request.URL.String()),
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	log.Debug().Str("url", result.URL).Str("content_type", result.ContentType).Int("bytes", len(body)).Msg("fetched document")
	return result, nil
}

func newClient(opts *Options) *http.Client {
	dialer := &net.Dialer{Timeout: opts.Timeout}
	if !opts.AllowPrivateNetworks {
		dialer.Control = publicOnly
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.Proxy = nil

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return ValidateURL(req.URL.String())
		},
	}
}

// publicOnly refuses connections to non-public addresses. It runs after DNS
// resolution, so it also covers redirects and rebinding.
func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return ErrBlockedAddress
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast())
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript, template, svg, .ad, .advertisement, .cookie-banner, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	// Block elements become line breaks so entries stay on separate lines.
	mainContent.Find("br, p, li, h1, h2, h3, h4, h5, h6, div, section, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanWhitespace(mainContent.Text()), nil
}

// DefaultTextSelectors returns standard selectors for general web content.
func DefaultTextSelectors() []string {
	return []string{
		"main",
		"article",
		".resume",
		"#resume",
		".content",
		"#content",
	}
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

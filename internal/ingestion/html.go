package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// profileSelectors locate the main content of a pasted profile or resume page,
// most specific first.
var profileSelectors = []string{
	"main",
	"#profile-content",
	".scaffold-layout__main",
	"article",
	"#content",
	".content",
}

// noiseSelectors are removed before text is taken.
var noiseSelectors = []string{
	"nav", "footer", "header", "script", "style", "noscript", "svg", "button", "form",
	"aside", ".visually-hidden", ".artdeco-button", ".pv-browsemap-section",
	".cookie-banner", ".popup", "[aria-hidden='true']",
}

// blockElements start a new line in the extracted text.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, section, tr"

// LooksLikeHTML reports whether pasted content is markup rather than text.
func LooksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	for _, marker := range []string{"<!doctype html", "<html", "<body", "<div", "<section", "<main", "<p>", "<ul"} {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}

// ExtractHTMLText returns the visible text of the main content of an HTML page,
// one block element per line.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	var main *goquery.Selection
	for _, selector := range profileSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "li" {
			s.PrependHtml("• ")
		}
		s.AppendHtml("\n")
	})

	return CleanText(dropBlankLines(main.Text())), nil
}

func dropBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

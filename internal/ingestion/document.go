package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Content types with local extractors
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractionError reports a document that could not be read.
type ExtractionError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractPDFText returns the plain text of every page of a PDF. Malformed
// documents that make the parser panic are reported as errors.
func ExtractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &ExtractionError{Format: "pdf", Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Message: "failed to open document", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: "pdf", Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = CleanText(sb.String())
	if text == "" {
		return "", &ExtractionError{Format: "pdf", Message: "no text layer"}
	}
	return text, nil
}

// ExtractDOCXText returns the paragraph text of a Word document.
func ExtractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Message: "failed to open document", Cause: err}
	}
	defer doc.Close()

	text := CleanText(wordXMLText(doc.Editable().GetContent()))
	if text == "" {
		return "", &ExtractionError{Format: "docx", Message: "document is empty"}
	}
	return text, nil
}

var (
	wordParagraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	wordTab          = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// wordXMLText reduces WordprocessingML to text with one paragraph per line.
func wordXMLText(content string) string {
	content = wordParagraphEnd.ReplaceAllString(content, "\n")
	content = wordTab.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

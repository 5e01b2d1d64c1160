// Package rendering turns a resume into its printable HTML document and, through
// headless Chrome, into a PDF.
package rendering

import "fmt"

// Template operations
const (
	OpParse   = "parse"
	OpExecute = "execute"
)

// TemplateError reports a resume template that could not be parsed or executed.
type TemplateError struct {
	Op       string
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to %s template %s: %v", e.Op, e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// PDFError reports a failed print to PDF. TimedOut is set when the render ran
// past its deadline.
type PDFError struct {
	TimedOut bool
	Cause    error
}

func (e *PDFError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("pdf render timed out: %v", e.Cause)
	}
	return fmt.Sprintf("pdf render failed: %v", e.Cause)
}

func (e *PDFError) Unwrap() error {
	return e.Cause
}

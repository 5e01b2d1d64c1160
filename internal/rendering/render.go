package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "resume.html.tmpl"

// PrintDelayMillis is how long the print page waits after load before opening
// the print dialog.
const PrintDelayMillis = 100

var loadTemplates = sync.OnceValues(func() (*template.Template, error) {
	tmpl, err := template.New(pageTemplate).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, &TemplateError{Op: OpParse, Template: pageTemplate, Cause: err}
	}
	return tmpl, nil
})

// RenderHTML renders the resume as a standalone HTML document. The output
// depends only on data.
func RenderHTML(data types.ResumeData) (string, error) {
	return render(buildView(data))
}

// RenderPrintHTML renders the same document with a script that opens the
// browser print dialog once the page has loaded.
func RenderPrintHTML(data types.ResumeData) (string, error) {
	view := buildView(data)
	view.AutoPrint = true
	view.PrintDelay = PrintDelayMillis
	return render(view)
}

func render(view pageView) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.ExecuteTemplate(&result, pageTemplate, view); err != nil {
		return "", &TemplateError{Op: OpExecute, Template: pageTemplate, Cause: err}
	}
	return result.String(), nil
}

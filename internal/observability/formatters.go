// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit truncates or pads line to exactly width runes.
func fit(line string, width int) string {
	if utf8.RuneCountInString(line) > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// PrintImportSummary outputs what an import recovered, section by section.
// Personal fields the import did not return are shown as "-".
func (p *Printer) PrintImportSummary(partial *types.PartialResume) {
	if partial == nil {
		return
	}

	var sb strings.Builder
	info := partial.PersonalInfo
	if info == nil {
		info = &types.PartialPersonalInfo{}
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", orDash(info.FullName)))
	sb.WriteString(fmt.Sprintf("Title:     %s\n", orDash(info.JobTitle)))
	sb.WriteString(fmt.Sprintf("Email:     %s\n", orDash(info.Email)))
	sb.WriteString(fmt.Sprintf("Summary:   %s\n", present(info.Summary)))
	sb.WriteString("\n")

	if len(partial.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(partial.Experience)))
		writeList(&sb, len(partial.Experience), func(i int) string {
			e := partial.Experience[i]
			return fmt.Sprintf("%s, %s (%s)", e.Position, e.Company, dateRange(e.StartDate, e.Tenure))
		})
		sb.WriteString("\n")
	}

	if len(partial.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(partial.Education)))
		writeList(&sb, len(partial.Education), func(i int) string {
			e := partial.Education[i]
			return fmt.Sprintf("%s, %s", e.Degree, e.Institution)
		})
		sb.WriteString("\n")
	}

	if len(partial.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(partial.Skills)))
		writeList(&sb, len(partial.Skills), func(i int) string {
			s := partial.Skills[i]
			return fmt.Sprintf("%s (%s)", s.Name, s.Level)
		})
	}

	p.printBox("IMPORTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeOverview outputs section counts and theme of a full resume.
func (p *Printer) PrintResumeOverview(data types.ResumeData) {
	var sb strings.Builder
	name := data.PersonalInfo.FullName
	if name == "" {
		name = "-"
	}
	sb.WriteString(fmt.Sprintf("Name:            %s\n", name))
	sb.WriteString(fmt.Sprintf("Experience:      %d\n", len(data.Experience)))
	sb.WriteString(fmt.Sprintf("Education:       %d\n", len(data.Education)))
	sb.WriteString(fmt.Sprintf("Skills:          %d\n", len(data.Skills)))
	sb.WriteString(fmt.Sprintf("Custom sections: %d\n", len(data.CustomSections)))
	sb.WriteString(fmt.Sprintf("Theme:           %s, %s on %s", data.Theme.Font, data.Theme.Color, data.Theme.BackgroundColor))

	p.printBox("RESUME", sb.String())
}

func writeList(sb *strings.Builder, n int, item func(i int) string) {
	count := min(n, maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", item(i)))
	}
	if n > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
	}
}

func dateRange(start string, tenure types.Tenure) string {
	end := tenure.Display()
	switch {
	case start == "" && end == "":
		return "no dates"
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func present(s *string) string {
	if s == nil || *s == "" {
		return "no"
	}
	return "yes"
}

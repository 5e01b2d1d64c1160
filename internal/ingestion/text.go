// Package ingestion turns uploaded resumes and pasted content into plain text
// that can be sent to the model for structuring.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	innerSpace      = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	excessiveBlanks = regexp.MustCompile(`\n{3,}`)
)

// bulletPrefixes are the list markers kept with their indentation.
var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "◦ "}

// CleanText normalizes line endings and whitespace while keeping the line
// structure a resume relies on: headings, bullets and paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessiveBlanks.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace. Only bullets keep their indentation,
// so nested lists survive.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	body := innerSpace.ReplaceAllString(trimmed, " ")
	if !isBulletLine(trimmed) {
		return body
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	return strings.Repeat(" ", indent) + body
}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// ReadTextFile reads and cleans a plain-text resume.
func ReadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}

package rendering

import (
	"html/template"
	"net/url"
	"regexp"
	"strings"
)

var protocolPrefix = regexp.MustCompile(`^https?://(www\.)?`)

// EnsureURL returns a link target for a profile or website value, adding
// https:// unless the value already starts with http.
func EnsureURL(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http") {
		return value
	}
	return "https://" + value
}

// DisplayURL strips a leading protocol and www. for display.
func DisplayURL(value string) string {
	return protocolPrefix.ReplaceAllString(value, "")
}

// mailtoURL and telURL use schemes html/template rejects by default, so they are
// built here from escaped values and marked safe.
func mailtoURL(email string) template.URL {
	return template.URL("mailto:" + url.PathEscape(email))
}

func telURL(phone string) template.URL {
	var sb strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			sb.WriteRune(r)
		}
	}
	return template.URL("tel:" + sb.String())
}

// imageURL accepts only inline image data; anything else is dropped.
func imageURL(value string) (template.URL, bool) {
	if !strings.HasPrefix(value, "data:image/") || strings.ContainsAny(value, "\"'<> ") {
		return "", false
	}
	return template.URL(value), true
}

package rendering

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// HexToRGB converts "#rrggbb" (the '#' is optional) to "r, g, b". Invalid input
// yields "0, 0, 0".
func HexToRGB(hex string) string {
	if !types.IsHexColor(hex) {
		return "0, 0, 0"
	}
	hex = strings.TrimPrefix(hex, "#")
	var parts [3]string
	for i := range parts {
		v, _ := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts[:], ", ")
}

// themeCSS derives the accent and paper rules from the theme. Values that are
// not valid theme values fall back to the defaults so the stylesheet stays safe.
func themeCSS(theme types.Theme) template.CSS {
	def := types.DefaultTheme()
	accent := cssColor(theme.Color, def.Color)
	paper := cssColor(theme.BackgroundColor, def.BackgroundColor)
	font := theme.Font
	if _, ok := types.ParseFont(string(font)); !ok {
		font = def.Font
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "#resume-preview { background-color: %s; font-family: \"%s\", sans-serif; }\n", paper, font)
	fmt.Fprintf(&sb, ".theme-text { color: %s; }\n", accent)
	fmt.Fprintf(&sb, ".theme-bg { background-color: %s; }\n", accent)
	fmt.Fprintf(&sb, ".theme-border { border-color: %s; }\n", accent)
	fmt.Fprintf(&sb, ".theme-bg-light { background-color: rgba(%s, 0.1); }\n", HexToRGB(accent))
	fmt.Fprintf(&sb, ".theme-hover:hover { color: %s; text-decoration: underline; }\n", accent)
	fmt.Fprintf(&sb, "@media print { #resume-preview { background-color: %s !important; } }\n", paper)
	return template.CSS(sb.String())
}

func cssColor(value, fallback string) string {
	if !types.IsHexColor(value) {
		return fallback
	}
	if !strings.HasPrefix(value, "#") {
		return "#" + value
	}
	return value
}

// fontStylesheetURL links the font family from Google Fonts.
func fontStylesheetURL(font types.Font) string {
	if _, ok := types.ParseFont(string(font)); !ok {
		font = types.DefaultTheme().Font
	}
	family := url.QueryEscape(string(font)) + ":wght@400;500;700"
	return "https://fonts.googleapis.com/css2?family=" + family + "&display=swap"
}

package types

import "regexp"

// Font is one of the font families offered by the theme editor.
type Font string

// Available fonts
const (
	FontInter        Font = "Inter"
	FontRoboto       Font = "Roboto"
	FontOpenSans     Font = "Open Sans"
	FontLato         Font = "Lato"
	FontMerriweather Font = "Merriweather"
)

// Fonts lists the selectable fonts in picker order.
var Fonts = []Font{FontInter, FontRoboto, FontOpenSans, FontLato, FontMerriweather}

// AccentColors are the preset accent swatches.
var AccentColors = []string{
	"#2563eb", // blue
	"#059669", // emerald
	"#dc2626", // red
	"#7c3aed", // violet
	"#db2777", // pink
	"#000000", // black
	"#d97706", // amber
}

// BackgroundColors are the preset paper swatches.
var BackgroundColors = []string{
	"#ffffff",
	"#f8fafc",
	"#f0f9ff",
	"#fdf2f8",
	"#fffbeb",
	"#f0fdf4",
}

// Theme holds the visual settings of the rendered resume.
type Theme struct {
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	Font            Font   `json:"font"`
}

// DefaultTheme returns the theme a new resume starts with.
func DefaultTheme() Theme {
	return Theme{
		Color:           AccentColors[0],
		BackgroundColor: BackgroundColors[0],
		Font:            FontInter,
	}
}

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a six digit hex colour, with or without '#'.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ParseFont returns the font named s.
func ParseFont(s string) (Font, bool) {
	for _, f := range Fonts {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

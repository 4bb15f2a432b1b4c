package gridreport

import (
	"fmt"
	"regexp"
	"strings"
)

// CellStyle defines styling for a cell range. It is backend-neutral; the
// excelize backend maps it onto an excelize.Style.
type CellStyle struct {
	FontName   string
	FontSize   float64
	FontBold   bool
	FontItalic bool
	FontColor  string

	FillColor string

	Alignment     string // "left", "center", "right"
	VerticalAlign string // "top", "middle", "bottom"

	NumberFormat string

	WrapText bool
}

// DefaultHeaderStyle returns the style applied to header rows when the
// caller supplies none of its own.
func DefaultHeaderStyle() *CellStyle {
	return &CellStyle{
		FontName:      "Arial",
		FontSize:      11,
		FontBold:      true,
		FontColor:     "#FFFFFF",
		FillColor:     "#4472C4",
		Alignment:     "center",
		VerticalAlign: "middle",
	}
}

// LineStyle names accepted for border drawing, matching the OOXML border
// style vocabulary the backend understands.
var lineStyles = map[string]struct{}{
	"thin":             {},
	"medium":           {},
	"thick":            {},
	"dashed":           {},
	"dotted":           {},
	"double":           {},
	"hair":             {},
	"mediumDashed":     {},
	"dashDot":          {},
	"mediumDashDot":    {},
	"dashDotDot":       {},
	"slantDashDot":     {},
	"mediumDashDotDot": {},
}

// ValidLineStyle reports whether name is an accepted border line style.
func ValidLineStyle(name string) bool {
	_, ok := lineStyles[name]
	return ok
}

var hexColourRe = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// namedColours covers the colour names accepted for border colours.
var namedColours = map[string]string{
	"black":   "000000",
	"white":   "FFFFFF",
	"red":     "FF0000",
	"green":   "008000",
	"blue":    "0000FF",
	"yellow":  "FFFF00",
	"orange":  "FFA500",
	"purple":  "800080",
	"grey":    "808080",
	"gray":    "808080",
	"brown":   "A52A2A",
	"pink":    "FFC0CB",
	"cyan":    "00FFFF",
	"magenta": "FF00FF",
	"navy":    "000080",
	"maroon":  "800000",
	"olive":   "808000",
	"teal":    "008080",
	"silver":  "C0C0C0",
	"lime":    "00FF00",
}

// NormalizeColour resolves a colour name or hex code to RRGGBB form.
func NormalizeColour(s string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColours[key]; ok {
		return hex, nil
	}
	m := hexColourRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("unrecognized colour %q", s)
	}
	hex := strings.ToUpper(m[1])
	if len(hex) == 3 {
		// #RGB shorthand expands per digit
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return hex, nil
}

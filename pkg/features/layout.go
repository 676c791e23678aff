package features

import (
	"regexp"
	"unicode/utf8"
)

// LayoutFeatures holds structural statistics derived from OCR lines.
type LayoutFeatures struct {
	LineCount     int     `json:"line_count"`
	BulletLines   int     `json:"bullet_lines"`
	NumberedLines int     `json:"numbered_lines"`
	AvgLineLength float64 `json:"avg_line_length"`
}

var (
	// Lines starting with a bullet glyph: "• ", "- ", "* ", "+ ".
	bulletPattern = regexp.MustCompile(`^\s*[•\-*+]\s+`)
	// Lines starting with a number marker: "1. ", "2) ".
	numberedPattern = regexp.MustCompile(`^\s*\d+[.)]\s+`)
)

// ComputeLayout derives layout statistics from OCR lines. It always succeeds;
// an empty input yields the zero LayoutFeatures with AvgLineLength 0.0.
func ComputeLayout(lines []string) LayoutFeatures {
	lf := LayoutFeatures{LineCount: len(lines)}

	totalLen := 0
	for _, line := range lines {
		if bulletPattern.MatchString(line) {
			lf.BulletLines++
		}
		if numberedPattern.MatchString(line) {
			lf.NumberedLines++
		}
		totalLen += utf8.RuneCountInString(line)
	}

	if lf.LineCount > 0 {
		lf.AvgLineLength = float64(totalLen) / float64(lf.LineCount)
	}

	return lf
}

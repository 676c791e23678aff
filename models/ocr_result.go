package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// OcrResult holds the text recognized from a single screenshot.
//
// Lines is FullText split on line breaks with blank lines removed and
// surrounding whitespace trimmed, in top-to-bottom reading order. The zero
// value is the canonical "empty result" used when OCR fails.
type OcrResult struct {
	FullText string   `json:"full_text"`
	Lines    []string `json:"lines"`
}

// IsEmpty reports whether no text was recognized.
func (r OcrResult) IsEmpty() bool {
	return r.FullText == "" && len(r.Lines) == 0
}

// OcrResultFromText normalizes raw engine output into an OcrResult.
// The text is NFC-normalized so that features computed over it see composed
// glyphs (degree signs, curly quotes) regardless of how the engine emits them.
func OcrResultFromText(text string) OcrResult {
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return OcrResult{}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return OcrResult{FullText: text, Lines: lines}
}

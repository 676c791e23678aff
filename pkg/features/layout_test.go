package features

import (
	"math"
	"testing"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		wantCount    int
		wantBullets  int
		wantNumbered int
		wantAvgLen   float64
	}{
		{
			name: "empty input",
		},
		{
			name:      "plain lines",
			lines:     []string{"hello", "world"},
			wantCount: 2, wantAvgLen: 5.0,
		},
		{
			name:        "bullet glyphs",
			lines:       []string{"• flour", "- sugar", "* salt", "+ butter"},
			wantCount:   4,
			wantBullets: 4, wantAvgLen: 7.0,
		},
		{
			name:         "numbered lines with both markers",
			lines:        []string{"1. preheat oven", "2) mix the batter", "10. bake"},
			wantCount:    3,
			wantNumbered: 3, wantAvgLen: float64(15+17+8) / 3,
		},
		{
			name:      "bullet glyph needs trailing whitespace",
			lines:     []string{"-nospace", "•also"},
			wantCount: 2, wantAvgLen: 6.5,
		},
		{
			name:      "number without separator is not a list marker",
			lines:     []string{"3 sets of 10", "350 degrees"},
			wantCount: 2, wantAvgLen: 11.5,
		},
		{
			name:        "leading whitespace allowed",
			lines:       []string{"   - indented bullet", "\t2. indented step"},
			wantCount:   2,
			wantBullets: 1, wantNumbered: 1, wantAvgLen: 18.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := ComputeLayout(tt.lines)

			if lf.LineCount != tt.wantCount {
				t.Errorf("LineCount = %d, want %d", lf.LineCount, tt.wantCount)
			}
			if lf.BulletLines != tt.wantBullets {
				t.Errorf("BulletLines = %d, want %d", lf.BulletLines, tt.wantBullets)
			}
			if lf.NumberedLines != tt.wantNumbered {
				t.Errorf("NumberedLines = %d, want %d", lf.NumberedLines, tt.wantNumbered)
			}
			if math.Abs(lf.AvgLineLength-tt.wantAvgLen) > 1e-9 {
				t.Errorf("AvgLineLength = %f, want %f", lf.AvgLineLength, tt.wantAvgLen)
			}
		})
	}
}

func TestComputeLayoutBounds(t *testing.T) {
	lines := []string{"- one", "2. two", "plain", "  - four"}
	lf := ComputeLayout(lines)

	if lf.BulletLines > lf.LineCount || lf.NumberedLines > lf.LineCount {
		t.Errorf("marker counts exceed line count: %+v", lf)
	}
	if lf.AvgLineLength <= 0 {
		t.Errorf("AvgLineLength = %f, want > 0 for non-empty input", lf.AvgLineLength)
	}
}

func TestComputeLayoutCountsRunes(t *testing.T) {
	// Degree sign is multi-byte; average must count characters, not bytes.
	lf := ComputeLayout([]string{"350°F"})
	if lf.AvgLineLength != 5.0 {
		t.Errorf("AvgLineLength = %f, want 5.0", lf.AvgLineLength)
	}
}

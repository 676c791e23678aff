// Package features extracts lexical and layout features from OCR text.
//
// All vocabulary checks are case-insensitive substring matches with no
// tokenization or stemming: a term embedded inside a longer word still
// counts. That looseness is intentional and load-bearing for the tuned
// heuristic weights in pkg/heuristics; do not tighten it.
package features

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/screensift/models"
)

// Features is the complete feature set for one classification request.
// Computed once per OcrResult and immutable afterwards.
type Features struct {
	Ocr    models.OcrResult `json:"-"`
	Layout LayoutFeatures   `json:"layout"`

	NumUnits        int `json:"num_units"`
	NumCookingVerbs int `json:"num_cooking_verbs"`
	NumWorkoutTerms int `json:"num_workout_terms"`
	NumBodyParts    int `json:"num_body_parts"`

	HasIngredientsSection bool `json:"has_ingredients_section"`
	HasStepsSection       bool `json:"has_steps_section"`
	HasQuoteAuthorPattern bool `json:"has_quote_author_pattern"`

	QuoteMarkCount int `json:"quote_mark_count"`
}

// Attribution lines like "— Steve Jobs": a dash, then two or more words.
// Word characters and separators are Unicode classes, not ASCII \w/\s:
// accented names and the non-breaking spaces OCR emits must match.
var quoteAuthorPattern = regexp.MustCompile(`^[\s\p{Zs}]*[—-][\s\p{Zs}]+[\p{L}\p{N}_]+[\s\p{Zs}]+[\p{L}\p{N}_]+`)

// Compute extracts the full feature set from an OCR result.
func Compute(ocr models.OcrResult) Features {
	textLower := strings.ToLower(ocr.FullText)

	linesLower := make([]string, len(ocr.Lines))
	for i, line := range ocr.Lines {
		linesLower[i] = strings.ToLower(line)
	}

	f := Features{
		Ocr:    ocr,
		Layout: ComputeLayout(ocr.Lines),
	}

	// Units count at most once each, over the whole text.
	for _, unit := range MeasureUnits {
		if strings.Contains(textLower, unit) {
			f.NumUnits++
		}
	}

	f.NumCookingVerbs = countTermsInLines(CookingVerbs, linesLower)
	f.NumWorkoutTerms = countTermsInLines(WorkoutTerms, linesLower)
	f.NumBodyParts = countTermsInLines(WorkoutBodyParts, linesLower)

	f.HasIngredientsSection = containsAny(textLower, IngredientSectionTerms)
	f.HasStepsSection = containsAny(textLower, StepSectionTerms)

	for _, line := range ocr.Lines {
		if quoteAuthorPattern.MatchString(line) {
			f.HasQuoteAuthorPattern = true
			break
		}
	}

	// Presence test per glyph, not an occurrence count.
	for _, marker := range QuoteMarkers {
		if strings.Contains(ocr.FullText, marker) {
			f.QuoteMarkCount++
		}
	}

	return f
}

// countTermsInLines counts distinct terms present in at least one line.
func countTermsInLines(terms []string, linesLower []string) int {
	count := 0
	for _, term := range terms {
		for _, line := range linesLower {
			if strings.Contains(line, term) {
				count++
				break
			}
		}
	}
	return count
}

func containsAny(textLower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(textLower, term) {
			return true
		}
	}
	return false
}

// Package heuristics scores extracted features against three hand-tuned
// rule sets (recipe, workout, quote) and picks a category by thresholded
// argmax. The weights are fixed literals tuned against the labelled corpus;
// changing any of them invalidates stored evaluation runs.
package heuristics

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/features"
)

// DefaultThreshold is the minimum winning score needed to accept a category
// instead of falling back to "none".
const DefaultThreshold = 5.0

// ClassificationResult is the classifier output: the decision plus the full
// per-category score breakdown it was made from.
type ClassificationResult struct {
	ItemType  models.ItemType             `json:"item_type"`
	Scores    map[models.ItemType]float64 `json:"scores"`
	Threshold float64                     `json:"threshold"`
}

var (
	// "Serves 4", "makes 12".
	servesPattern = regexp.MustCompile(`(?i)(serves|makes)\s+\d+`)
	// Set×rep notation: "3x10", "3 x 10", "5×5".
	setRepPattern = regexp.MustCompile(`(?i)\d+\s*[x×]\s*\d+`)
)

// ScoreRecipe accumulates recipe evidence. Non-negative.
func ScoreRecipe(f features.Features) float64 {
	score := 0.0

	if f.HasIngredientsSection {
		score += 3.0
	}
	if f.NumUnits >= 3 {
		score += 2.0
	}
	if f.NumCookingVerbs >= 2 {
		score += 2.0
	}
	if f.Layout.BulletLines >= 3 {
		score += 1.0
	}
	if f.Layout.NumberedLines >= 2 {
		score += 1.0
	}
	for _, line := range f.Ocr.Lines {
		if servesPattern.MatchString(line) {
			score += 1.0
			break
		}
	}

	return score
}

// ScoreWorkout accumulates workout evidence. May go negative: an ingredients
// section is anti-correlated and carries a penalty so recipes with set-like
// numbered lists don't leak into this category.
func ScoreWorkout(f features.Features) float64 {
	score := 0.0

	setsRepsLines := 0
	for _, line := range f.Ocr.Lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "sets") || strings.Contains(lower, "reps") {
			setsRepsLines++
		}
	}
	if setsRepsLines >= 2 {
		score += 3.0
	}

	for _, line := range f.Ocr.Lines {
		if setRepPattern.MatchString(line) {
			score += 2.0
			break
		}
	}

	if f.NumWorkoutTerms >= 2 {
		score += 2.0
	}
	if f.NumBodyParts > 0 {
		score += 1.0
	}
	if f.Layout.BulletLines >= 2 || f.Layout.NumberedLines >= 2 {
		score += 1.0
	}
	if f.HasIngredientsSection {
		score -= 2.0
	}

	return score
}

// ScoreQuote accumulates quote evidence. Non-negative.
func ScoreQuote(f features.Features) float64 {
	score := 0.0

	// A quote-marked line with enough words to be prose. Counted once.
	for _, line := range f.Ocr.Lines {
		if len(strings.Fields(line)) >= 4 && containsQuoteMarker(line) {
			score += 2.0
			break
		}
	}

	if f.HasQuoteAuthorPattern {
		score += 3.0
	}
	if f.Layout.LineCount >= 1 && f.Layout.LineCount <= 6 {
		score += 1.0
	}
	if f.Layout.AvgLineLength >= 40 {
		score += 1.0
	}
	if f.NumUnits == 0 && f.NumWorkoutTerms == 0 {
		score += 1.0
	}

	return score
}

func containsQuoteMarker(line string) bool {
	for _, marker := range features.QuoteMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Classify runs all three scorers and picks the best category, falling back
// to ItemNone when the winning score is below threshold.
//
// Ties are broken by fixed priority (recipe, workout, quote): the first
// category holding the maximum wins, so output is deterministic.
func Classify(f features.Features, threshold float64) ClassificationResult {
	scores := map[models.ItemType]float64{
		models.ItemRecipe:  ScoreRecipe(f),
		models.ItemWorkout: ScoreWorkout(f),
		models.ItemQuote:   ScoreQuote(f),
	}

	best := models.ItemRecipe
	for _, category := range models.Categories() {
		if scores[category] > scores[best] {
			best = category
		}
	}

	itemType := best
	if scores[best] < threshold {
		itemType = models.ItemNone
	}

	return ClassificationResult{
		ItemType:  itemType,
		Scores:    scores,
		Threshold: threshold,
	}
}

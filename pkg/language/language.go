// Package language detects the language of OCR text. The classifier
// vocabularies are English-only, so a confident non-English detection means
// the heuristic scores are not trustworthy for that screenshot.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Unknown is returned when the text is too short or ambiguous to detect.
const Unknown = "unknown"

// minWords below which detection is skipped; lingua is unreliable on
// fragments and OCR noise.
const minWords = 3

// Detector wraps a lingua detector restricted to the languages screenshots
// in the corpus actually appear in.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds the detector. Construction is expensive (language
// models are loaded lazily but the builder allocates); share one Detector
// across classifications.
func NewDetector() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
		lingua.Italian,
		lingua.Portuguese,
	}
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the lower-cased ISO 639-1 code of the detected language,
// or Unknown.
func (d *Detector) Detect(text string) string {
	if len(strings.Fields(text)) < minWords {
		return Unknown
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// IsEnglish reports whether the text reads as English. Unknown counts as
// English so short or empty OCR output is not flagged.
func (d *Detector) IsEnglish(text string) bool {
	code := d.Detect(text)
	return code == "en" || code == Unknown
}

// Package textstats computes word-frequency statistics over OCR text from
// the labelled corpus. Surfacing the dominant vocabulary per category is the
// main tool for tuning the heuristic word lists.
package textstats

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are ignored in frequency analysis. Extend as needed.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"between": {}, "both": {}, "but": {}, "by": {},
	"can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "else": {}, "etc": {}, "even": {}, "every": {},
	"few": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "him": {}, "his": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {},
	"like": {},
	"many": {}, "may": {}, "me": {}, "more": {}, "most": {}, "much": {},
	"my": {},
	"no": {}, "nor": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "out": {}, "over": {}, "own": {},
	"per": {},
	"same": {}, "she": {}, "should": {}, "so": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "us": {},
	"very": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "why": {}, "will": {}, "with": {},
	"would": {},
	"you": {}, "your": {},
}

// Keyword is a word with its aggregated count.
type Keyword struct {
	Word  string
	Count int
}

// Frequencies tokenizes text into lower-cased words and counts them,
// skipping stop words, bare numbers and single characters.
func Frequencies(text string) map[string]int {
	counts := make(map[string]int)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})

	for _, word := range words {
		word = strings.Trim(word, "'-")
		if len(word) < 2 {
			continue
		}
		if _, skip := stopWords[word]; skip {
			continue
		}
		if isNumeric(word) {
			continue
		}
		counts[word]++
	}

	return counts
}

// Merge aggregates per-document frequency maps into one.
func Merge(maps []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, counts := range maps {
		for word, count := range counts {
			merged[word] += count
		}
	}
	return merged
}

// Top returns the n highest-count keywords, count descending with
// alphabetical tie-break so output is stable.
func Top(counts map[string]int, n int) []Keyword {
	keywords := make([]Keyword, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, Keyword{Word: word, Count: count})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if n > 0 && len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package matching scores raw catalog products against recipe ingredients.
// A score combines several independent signals (title similarity, category
// match, size proximity, availability, promotion) plus a table of named
// penalty rules for known false-positive collisions. Each signal is exposed
// separately on the result so callers can explain a match to the user.
package matching

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuationRe = regexp.MustCompile(`[^\pL\pN\s]`)
	numericRe     = regexp.MustCompile(`^[0-9.]+$`)
)

// stopWords are tokens that carry no matching signal: English filler,
// size/packaging vocabulary, and marketing noise on product titles.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "for": true, "with": true, "to": true, "per": true,
	// size and unit tokens
	"oz": true, "fl": true, "lb": true, "lbs": true, "g": true, "kg": true,
	"ml": true, "l": true, "ct": true, "count": true, "gallon": true,
	"quart": true, "pint": true, "liter": true, "ounce": true, "ounces": true,
	"cup": true, "cups": true, "tbsp": true, "tsp": true, "each": true,
	// packaging
	"pack": true, "pk": true, "box": true, "bag": true, "bottle": true,
	"jar": true, "can": true, "carton": true, "pouch": true, "tub": true,
	// marketing
	"size": true, "value": true, "family": true, "new": true, "brand": true,
}

// FoldDiacritics strips combining marks so accented product names compare
// equal to their unaccented spellings (jalapeño vs jalapeno).
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Tokenize splits free text into normalized lowercase tokens, dropping
// punctuation, stop words, single characters, and bare numbers.
func Tokenize(s string) []string {
	cleaned := punctuationRe.ReplaceAllString(strings.ToLower(FoldDiacritics(s)), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || stopWords[word] || numericRe.MatchString(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// fuzzyMatch reports whether two tokens are within the given edit distance.
// Short tokens are excluded to avoid false positives like "rice"/"ride".
func fuzzyMatch(a, b string, maxDist int) bool {
	if a == b {
		return true
	}
	if len(a) < 5 || len(b) < 5 {
		return false
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDist {
		return false
	}
	return levenshtein(a, b) <= maxDist
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

// tokenOverlap counts tokens of a that appear in b, allowing a fuzzy match
// within edit distance 1 for longer tokens. Returns the count and the
// matched tokens from a.
func tokenOverlap(a, b []string) (int, []string) {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}

	var matched []string
	for _, t := range a {
		if set[t] {
			matched = append(matched, t)
			continue
		}
		for cand := range set {
			if fuzzyMatch(t, cand, 1) {
				matched = append(matched, t)
				break
			}
		}
	}
	return len(matched), matched
}

// Package variant strips size, drink and preparation qualifiers from menu
// item names and classifies names into facet buckets.
package variant

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"menuhub/pkg/models"
)

// Classification holds one bucket per facet.
type Classification struct {
	Size            string `json:"size"`
	DrinkType       string `json:"drink_type"`
	PreparationType string `json:"preparation_type"`
}

// Get returns the bucket for f.
func (c Classification) Get(f Facet) string {
	switch f {
	case FacetSize:
		return c.Size
	case FacetDrink:
		return c.DrinkType
	case FacetPreparation:
		return c.PreparationType
	}
	return ""
}

// turkishI undoes the dotted/dotless split that simple folding keeps:
// "I" folds to "i" and "İ" to "i" plus U+0307, while "ı" stays as is.
var turkishI = strings.NewReplacer("ı", "i", "\u0307", "")

// Fold case-folds s for comparisons, treating Turkish ı/I/i/İ as one letter.
// A Caser keeps state, so one is built per call.
func Fold(s string) string {
	return turkishI.Replace(cases.Fold().String(s))
}

// Key converts a name to a grouping key: folded, non letter/digit runs
// collapsed to a single space.
func Key(s string) string {
	s = Fold(s)
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

type token struct {
	text  string // folded, edge punctuation removed
	start int    // byte offset in the original string
}

func tokenize(s string) []token {
	var out []token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		raw := strings.TrimFunc(s[start:end], func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if raw != "" {
			out = append(out, token{text: Fold(raw), start: start})
		}
		start = -1
	}
	for i, r := range s {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(s))
	return out
}

func phraseTokens(phrase string) []string {
	return strings.Fields(Fold(phrase))
}

// matchesAt reports whether phrase occupies toks[i:i+len(phrase)].
func matchesAt(toks []token, i int, phrase []string) bool {
	if i < 0 || i+len(phrase) > len(toks) {
		return false
	}
	for j, p := range phrase {
		if toks[i+j].text != p {
			return false
		}
	}
	return true
}

func contains(toks []token, phrase []string) bool {
	for i := range toks {
		if matchesAt(toks, i, phrase) {
			return true
		}
	}
	return false
}

// Classify puts name into exactly one bucket per facet. Matching is
// whole-token and case-insensitive; no match means "regular".
func Classify(name string) Classification {
	toks := tokenize(name)
	return Classification{
		Size:            classifyFacet(toks, sizeVocab),
		DrinkType:       classifyFacet(toks, drinkVocab),
		PreparationType: classifyFacet(toks, prepVocab),
	}
}

func classifyFacet(toks []token, vocab []entry) string {
	for _, e := range vocab {
		if contains(toks, phraseTokens(e.phrase)) {
			return e.value
		}
	}
	return models.Regular
}

// Canonical strips every trailing qualifier token from name. The leading
// token is never stripped, so the result is never empty for a non-empty name.
func Canonical(name string) string {
	toks := tokenize(name)
	n := len(toks)

	for n > 1 {
		k := trailingQualifier(toks[:n])
		if k == 0 || k >= n {
			break
		}
		n -= k
	}

	if n == len(toks) {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(name[:toks[n].start])
}

// trailingQualifier returns the token length of the vocabulary phrase that
// ends toks, or 0.
func trailingQualifier(toks []token) int {
	for _, f := range Facets {
		for _, e := range vocabFor(f) {
			phrase := phraseTokens(e.phrase)
			if matchesAt(toks, len(toks)-len(phrase), phrase) {
				return len(phrase)
			}
		}
	}
	return 0
}

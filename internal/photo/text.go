package photo

import (
	"path"
	"strings"
	"unicode"

	"menuhub/internal/variant"
)

// NormalizeText prepares a name or filename for comparison: Arabic diacritics
// and tatweel removed, alef variants folded to bare alef, teh marbuta to heh,
// whitespace collapsed, case folded.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		switch {
		case r >= '\u064B' && r <= '\u0652', r == '\u0670', r == '\u0640':
			continue
		case r == 'أ' || r == 'إ' || r == 'آ':
			r = 'ا'
		case r == 'ة':
			r = 'ه'
		}
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteRune(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return variant.Fold(strings.TrimSpace(b.String()))
}

// normalizeFilename strips the extension before normalizing.
func normalizeFilename(name string) string {
	return NormalizeText(strings.TrimSuffix(name, path.Ext(name)))
}

var stopwords = map[string]bool{
	"the": true, "and": true, "with": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "by": true, "from": true,
}

// searchTerms returns the distinct words of at least four letters across names.
func searchTerms(names ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		for _, w := range strings.Fields(n) {
			if len([]rune(w)) < 4 || stopwords[w] || seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

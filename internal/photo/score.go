package photo

import (
	"strings"

	"menuhub/pkg/models"
)

const (
	scoreExact    = 100
	scoreTerm     = 10
	scoreReverse  = 5
	scoreCategory = 5
	scoreSynonym  = 15
)

var categoryKeywords = []string{"coffee", "smoothie", "mojito", "waffle", "pancake", "crepe", "milkshake"}

type synonym struct {
	keyword  string
	variants []string
}

// synonyms maps keywords of an English item name to spellings seen in photo filenames.
var synonyms = []synonym{
	{"latte", []string{"latte"}},
	{"mocha", []string{"mocha"}},
	{"cappuccino", []string{"cappuccino"}},
	{"espresso", []string{"espresso"}},
	{"americano", []string{"americano"}},
	{"frappucino", []string{"frappucino", "frapp"}},
	{"matcha", []string{"matcha"}},
	{"chai", []string{"chai"}},
	{"vanilla", []string{"vanilla"}},
	{"caramel", []string{"caramel"}},
	{"chocolate", []string{"chocolate", "choco"}},
	{"strawberry", []string{"strawberry", "straw"}},
	{"pistachio", []string{"pistachio", "pist"}},
	{"oreo", []string{"oreo"}},
	{"lotus", []string{"lotus"}},
	{"tiramisu", []string{"tiramisu"}},
	{"cheesecake", []string{"cheesecake", "cheese"}},
	{"waffle", []string{"waffle"}},
	{"pancake", []string{"pancake"}},
	{"crepe", []string{"crepe"}},
	{"cookies", []string{"cookies", "cookie"}},
	{"cake", []string{"cake"}},
	{"smoothie", []string{"smoothie"}},
	{"milkshake", []string{"milkshake", "milk"}},
	{"mojito", []string{"mojito"}},
	{"lemonade", []string{"lemonade", "lemon"}},
	{"juice", []string{"juice"}},
	{"tea", []string{"tea"}},
	{"coffee", []string{"coffee"}},
	{"hot chocolate", []string{"hot chocolate", "hotchoc"}},
	{"white chocolate", []string{"white chocolate", "whitechoc"}},
	{"pina colada", []string{"pina colada", "pinacolada"}},
	{"caribbean", []string{"caribbean", "carib"}},
	{"mango", []string{"mango"}},
	{"peach", []string{"peach"}},
	{"pineapple", []string{"pineapple", "pine"}},
	{"orange", []string{"orange"}},
	{"apple", []string{"apple"}},
	{"banana", []string{"banana"}},
	{"kiwi", []string{"kiwi"}},
	{"passion", []string{"passion"}},
	{"hibiscus", []string{"hibiscus"}},
	{"cool lime", []string{"cool lime", "coollime"}},
	{"ginger", []string{"ginger"}},
	{"mint", []string{"mint", "minted"}},
	{"pink", []string{"pink"}},
	{"blueberry", []string{"blueberry", "blue"}},
	{"raspberry", []string{"raspberry", "rasp"}},
	{"mix berries", []string{"mix berries", "mixberr"}},
	{"marshmallow", []string{"marshmallow", "marsh"}},
	{"fruit", []string{"fruit"}},
	{"mini", []string{"mini"}},
}

// subject is an item with its names already normalized.
type subject struct {
	en, ar   string
	category string
	terms    []string
}

func newSubject(item models.ConsolidatedItem) subject {
	en := NormalizeText(item.NameEN)
	ar := NormalizeText(item.NameAR)
	return subject{
		en:       en,
		ar:       ar,
		category: NormalizeText(item.Category),
		terms:    searchTerms(en, ar),
	}
}

// Score rates how well filename fits item. Zero means no evidence at all.
func Score(item models.ConsolidatedItem, filename string) int {
	return newSubject(item).score(normalizeFilename(filename))
}

func (s subject) score(photo string) int {
	if photo == "" {
		return 0
	}

	score := 0
	if (s.en != "" && photo == s.en) || (s.ar != "" && photo == s.ar) {
		score += scoreExact
	}

	for _, term := range s.terms {
		if strings.Contains(photo, term) {
			score += scoreTerm
		}
		if strings.Contains(term, photo) {
			score += scoreReverse
		}
	}

	for _, kw := range categoryKeywords {
		if strings.Contains(s.category, kw) && strings.Contains(photo, kw) {
			score += scoreCategory
		}
	}

	if s.en != "" {
		for _, syn := range synonyms {
			if !strings.Contains(s.en, syn.keyword) {
				continue
			}
			for _, v := range syn.variants {
				if strings.Contains(photo, v) {
					score += scoreSynonym
					break
				}
			}
		}
	}

	return score
}

package variant

import "menuhub/pkg/models"

// Facet is one independent axis of variation within a grouped item.
type Facet string

const (
	FacetSize        Facet = "size"
	FacetDrink       Facet = "drink_type"
	FacetPreparation Facet = "preparation_type"
)

// Facets lists every facet in classification order.
var Facets = []Facet{FacetSize, FacetDrink, FacetPreparation}

type entry struct {
	phrase string
	value  string
}

// Vocabularies are scanned in order; the first entry found in a name wins.
var (
	sizeVocab = []entry{
		{"وسط", models.SizeMedium},
		{"كبير", models.SizeLarge},
		{"medium", models.SizeMedium},
		{"large", models.SizeLarge},
		{"orta", models.SizeMedium},
		{"büyük", models.SizeLarge},
	}

	drinkVocab = []entry{
		{"ريد بول", models.DrinkRedbull},
		{"redbull", models.DrinkRedbull},
		{"red bull", models.DrinkRedbull},
		{"سفن", models.Drink7up},
		{"7up", models.Drink7up},
		{"صودا", models.DrinkSoda},
		{"soda", models.DrinkSoda},
	}

	prepVocab = []entry{
		{"ميكس", models.PrepMix},
		{"mix", models.PrepMix},
		{"karışık", models.PrepMix},
		{"بابلز", models.PrepBubbles},
		{"bubbles", models.PrepBubbles},
	}
)

func vocabFor(f Facet) []entry {
	switch f {
	case FacetSize:
		return sizeVocab
	case FacetDrink:
		return drinkVocab
	case FacetPreparation:
		return prepVocab
	}
	return nil
}

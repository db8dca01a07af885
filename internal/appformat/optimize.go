// Package appformat reshapes consolidated items into the category-grouped
// optimized menu and then into the flat app menu stored by the backend.
package appformat

import (
	"fmt"

	"menuhub/pkg/models"
)

type OptimizeStats struct {
	Categories        int     `json:"total_categories"`
	Items             int     `json:"total_items"`
	ItemsWithPhotos   int     `json:"items_with_photos"`
	ItemsWithSizes    int     `json:"items_with_sizes"`
	ItemsWithDrinks   int     `json:"items_with_drink_types"`
	ItemsWithPrep     int     `json:"items_with_preparation_types"`
	AverageVariations float64 `json:"average_variations_per_item"`
}

// Optimize groups items by category in first-seen order. Names that map to
// the same CategoryID ("Hot Coffee", "Hot coffee") share one group under the
// first spelling seen. Option lists are only carried for facets the item
// actually varies on.
func Optimize(items []models.ConsolidatedItem) ([]models.OptimizedCategory, OptimizeStats, error) {
	var (
		cats  []models.OptimizedCategory
		index = make(map[string]int)
		st    = OptimizeStats{Items: len(items)}
		vars  int
	)

	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, OptimizeStats{}, fmt.Errorf("item %d: %w", i, err)
		}

		id := CategoryID(it.Category)
		pos, ok := index[id]
		if !ok {
			pos = len(cats)
			index[id] = pos
			cats = append(cats, models.OptimizedCategory{Name: it.Category})
		}
		oi := optimizeItem(it)
		oi.Category = cats[pos].Name
		cats[pos].Items = append(cats[pos].Items, oi)

		vars += it.OriginalVariations
		if it.Image != nil {
			st.ItemsWithPhotos++
		}
		if it.HasSizes {
			st.ItemsWithSizes++
		}
		if it.HasDrinkTypes {
			st.ItemsWithDrinks++
		}
		if it.HasPreparationTypes {
			st.ItemsWithPrep++
		}
	}

	st.Categories = len(cats)
	if len(items) > 0 {
		st.AverageVariations = float64(vars) / float64(len(items))
	}
	return cats, st, nil
}

func optimizeItem(it models.ConsolidatedItem) models.OptimizedItem {
	base := it.BasePrice
	out := models.OptimizedItem{
		ID:                 it.ID,
		Name:               it.Names(),
		Category:           it.Category,
		BasePrice:          &base,
		Image:              it.Image,
		ImageFilename:      it.ImageFilename,
		HasVariations:      it.HasSizes || it.HasDrinkTypes || it.HasPreparationTypes,
		OriginalVariations: it.OriginalVariations,
	}

	if it.HasSizes {
		pr := models.PriceRange{Min: it.SizeOptions[0].Price, Max: it.SizeOptions[0].Price}
		for _, s := range it.SizeOptions {
			price := s.Price
			out.Sizes = append(out.Sizes, models.OptimizedSize{
				Size:  s.Size,
				Price: &price,
				Name:  models.LocalizedNames{AR: s.NameAR, TR: s.NameTR, EN: s.NameEN},
			})
			pr.Min = min(pr.Min, s.Price)
			pr.Max = max(pr.Max, s.Price)
		}
		out.PriceRange = &pr
	}
	if it.HasDrinkTypes {
		out.DrinkTypes = optimizeTypes(it.DrinkTypeOptions)
	}
	if it.HasPreparationTypes {
		out.PreparationTypes = optimizeTypes(it.PreparationTypeOptions)
	}
	return out
}

func optimizeTypes(opts []models.TypeOption) []models.OptimizedType {
	out := make([]models.OptimizedType, 0, len(opts))
	for _, o := range opts {
		price := o.Price
		out = append(out, models.OptimizedType{
			Type:  o.Type,
			Price: &price,
			Name:  models.LocalizedNames{AR: o.NameAR, TR: o.NameTR, EN: o.NameEN},
		})
	}
	return out
}

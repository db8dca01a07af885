package appformat

import (
	"fmt"
	"maps"
	"time"

	"menuhub/pkg/models"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Converter struct {
	Now func() time.Time
}

func NewConverter() *Converter {
	return &Converter{Now: time.Now}
}

type ConvertReport struct {
	Categories             int      `json:"categories"`
	Items                  int      `json:"items"`
	DrinkItems             int      `json:"drink_items"`
	ItemsWithVariants      int      `json:"items_with_variants"`
	UntranslatedCategories []string `json:"untranslated_categories"`
}

// Convert flattens the optimized menu. Sizes become variants on the parent
// item; every non-regular drink type becomes a sibling item. The result is
// validated before it is returned.
func (c *Converter) Convert(optimized []models.OptimizedCategory) (models.AppMenu, ConvertReport, error) {
	now := c.Now().UTC().Format(TimestampLayout)

	var (
		menu models.AppMenu
		rep  ConvertReport
		seen = make(map[string]bool)
	)

	for ci, cat := range optimized {
		if err := cat.Validate(); err != nil {
			return models.AppMenu{}, ConvertReport{}, fmt.Errorf("category %d: %w", ci, err)
		}

		// a second group with the same id adds its items to the first category
		catID := CategoryID(cat.Name)
		if !seen[catID] {
			seen[catID] = true
			names, ok := CategoryNames(cat.Name)
			if !ok {
				rep.UntranslatedCategories = append(rep.UntranslatedCategories, cat.Name)
			}
			menu.Categories = append(menu.Categories, models.AppCategory{
				ID:        catID,
				Names:     names,
				Order:     len(menu.Categories),
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}

		for _, it := range cat.Items {
			parent := models.AppItem{
				ID:         it.ID,
				Names:      it.Name,
				CategoryID: catID,
				Price:      itemPrice(it),
				Image:      it.Image,
				Variants:   variants(it.Sizes),
				Order:      len(menu.Items),
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if parent.Variants != nil {
				rep.ItemsWithVariants++
			}
			menu.Items = append(menu.Items, parent)

			if len(it.DrinkTypes) < 2 {
				continue
			}
			for _, d := range it.DrinkTypes {
				if d.Type == models.Regular {
					continue
				}
				menu.Items = append(menu.Items, drinkItem(it, d, catID, len(menu.Items), now))
				rep.DrinkItems++
			}
		}
	}

	if err := menu.Validate(); err != nil {
		return models.AppMenu{}, ConvertReport{}, fmt.Errorf("converted menu invalid: %w", err)
	}

	rep.Categories = len(menu.Categories)
	rep.Items = len(menu.Items)
	return menu, rep, nil
}

// itemPrice is the regular size price when the item has one, else the base price.
func itemPrice(it models.OptimizedItem) float64 {
	for _, s := range it.Sizes {
		if s.Size == models.Regular && s.Price != nil {
			return *s.Price
		}
	}
	if it.BasePrice != nil {
		return *it.BasePrice
	}
	return 0
}

// variants keeps non-regular sizes with a price. Regular is carried by the item price.
func variants(sizes []models.OptimizedSize) []models.Variant {
	var out []models.Variant
	for _, s := range sizes {
		if s.Size == models.Regular || s.Price == nil {
			continue
		}
		out = append(out, models.Variant{Size: s.Size, Price: *s.Price})
	}
	return out
}

func drinkItem(parent models.OptimizedItem, d models.OptimizedType, catID string, order int, now string) models.AppItem {
	en := d.Name.EN
	if en == "" {
		en = parent.Name.EN
	}
	names := models.LocalizedNames{AR: d.Name.AR, TR: d.Name.TR, EN: fmt.Sprintf("%s (%s)", en, d.Type)}
	if names.AR == "" {
		names.AR = parent.Name.AR
	}
	if names.TR == "" {
		names.TR = parent.Name.TR
	}

	price := itemPrice(parent)
	if d.Price != nil {
		price = *d.Price
	}

	return models.AppItem{
		ID:         fmt.Sprintf("%s_drink_%s", parent.ID, d.Type),
		Names:      names,
		CategoryID: catID,
		Price:      price,
		Image:      parent.Image,
		Order:      order,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SizePrices recovers size->price pairs from an app item: its variants plus
// the regular size at the item price. Regular is left out when a variant
// already carries that price, since the base row was then a sized row.
// Items without variants have no size facet and return nil.
func SizePrices(it models.AppItem) map[string]float64 {
	if len(it.Variants) == 0 {
		return nil
	}
	out := make(map[string]float64, len(it.Variants)+1)
	regular := true
	for _, v := range it.Variants {
		out[v.Size] = v.Price
		if v.Price == it.Price {
			regular = false
		}
	}
	if regular {
		out[models.Regular] = it.Price
	}
	return out
}

// ConsolidatedSizePrices is the size->price view of a consolidated item, nil without size options.
func ConsolidatedSizePrices(it models.ConsolidatedItem) map[string]float64 {
	if len(it.SizeOptions) == 0 {
		return nil
	}
	out := make(map[string]float64, len(it.SizeOptions))
	for _, s := range it.SizeOptions {
		out[s.Size] = s.Price
	}
	return out
}

type SizeCheck struct {
	Checked    int      `json:"checked"`
	Mismatched []string `json:"mismatched"`
}

// CheckSizes compares every sized consolidated item with the sizes its app
// item carries after conversion. Missing items count as mismatches.
func CheckSizes(items []models.ConsolidatedItem, menu models.AppMenu) SizeCheck {
	byID := make(map[string]models.AppItem, len(menu.Items))
	for _, it := range menu.Items {
		byID[it.ID] = it
	}

	var sc SizeCheck
	for _, c := range items {
		want := ConsolidatedSizePrices(c)
		if want == nil {
			continue
		}
		sc.Checked++
		got, ok := byID[c.ID]
		if !ok || !maps.Equal(SizePrices(got), want) {
			sc.Mismatched = append(sc.Mismatched, c.Names().Primary())
		}
	}
	return sc
}

// Package consolidate groups raw menu rows into one item per canonical name,
// merging size, drink and preparation variants into option lists.
package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"menuhub/internal/variant"
	"menuhub/pkg/models"
)

// Uncategorized is used for rows that carry neither a Latin nor an Arabic group name.
const Uncategorized = "Uncategorized"

// CategoryOrder is the display priority of known categories. Anything else sorts after.
var CategoryOrder = []string{
	"Hot Coffee",
	"Ice Coffee",
	"Cold drinks",
	"Blended Coffee",
	"Matcha",
	"Flavored tea",
	"Fresh juices",
	"Milkshakes",
	"Mojitos",
	"Smoothies",
	"Signature",
	"Sweets",
	"Patisserie",
	"Ice Cream",
}

var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:menuhub:item"))

// ItemID derives a stable id from the category and canonical key, so the
// same logical item keeps its id across runs.
func ItemID(category, key string) string {
	return "item_" + uuid.NewSHA1(itemNamespace, []byte(category+"\x00"+key)).String()
}

type Stats struct {
	RowsIn                   int `json:"total_original"`
	ItemsOut                 int `json:"total_consolidated"`
	ItemsWithSizes           int `json:"items_with_sizes"`
	ItemsWithDrinkTypes      int `json:"items_with_drink_types"`
	ItemsWithPreparationType int `json:"items_with_preparation_types"`
}

type member struct {
	row   models.RawRow
	class variant.Classification
}

type group struct {
	key     string
	members []member
}

// Consolidate merges rows sharing a canonical name. The first row of a group
// supplies the category, names and base price. Groups keep first-seen order
// and are then stable-sorted by CategoryOrder.
func Consolidate(rows []models.RawRow) ([]models.ConsolidatedItem, Stats, error) {
	var groups []*group
	byKey := make(map[string]*group)

	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, Stats{}, fmt.Errorf("row %d: %w", i, err)
		}

		key := canonicalKey(r)
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.members = append(g.members, member{row: r, class: variant.Classify(r.DisplayName())})
	}

	items := make([]models.ConsolidatedItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, mergeGroup(g))
	}
	SortByCategory(items)

	st := Stats{RowsIn: len(rows), ItemsOut: len(items)}
	for _, it := range items {
		if it.HasSizes {
			st.ItemsWithSizes++
		}
		if it.HasDrinkTypes {
			st.ItemsWithDrinkTypes++
		}
		if it.HasPreparationTypes {
			st.ItemsWithPreparationType++
		}
	}
	return items, st, nil
}

// canonicalKey groups on the English name; Arabic is used when English is missing.
func canonicalKey(r models.RawRow) string {
	return variant.Key(variant.Canonical(r.DisplayName()))
}

func categoryOf(r models.RawRow) string {
	if c := r.CategoryName(); c != "" {
		return c
	}
	return Uncategorized
}

func mergeGroup(g *group) models.ConsolidatedItem {
	base := g.members[0].row
	category := categoryOf(base)

	item := models.ConsolidatedItem{
		ID:                 ItemID(category, g.key),
		CanonicalKey:       g.key,
		NameAR:             base.NameAR,
		NameTR:             base.NameTR,
		NameEN:             base.NameEN,
		Category:           category,
		CategoryAR:         base.CategoryAR,
		BasePrice:          base.Price,
		OriginalVariations: len(g.members),
	}
	if sizes := facetOptions(g, variant.FacetSize); len(sizes) > 1 {
		item.HasSizes = true
		item.SizeOptions = make([]models.SizeOption, 0, len(sizes))
		for _, m := range sizes {
			item.SizeOptions = append(item.SizeOptions, models.SizeOption{
				Size:   m.class.Size,
				Price:  m.row.Price,
				NameAR: m.row.NameAR,
				NameTR: m.row.NameTR,
				NameEN: m.row.NameEN,
			})
		}
	}
	if drinks := facetOptions(g, variant.FacetDrink); len(drinks) > 1 {
		item.HasDrinkTypes = true
		item.DrinkTypeOptions = typeOptions(drinks, variant.FacetDrink)
	}
	if preps := facetOptions(g, variant.FacetPreparation); len(preps) > 1 {
		item.HasPreparationTypes = true
		item.PreparationTypeOptions = typeOptions(preps, variant.FacetPreparation)
	}

	return item
}

// facetOptions returns the first member for each distinct value of f, in first-seen order.
func facetOptions(g *group, f variant.Facet) []member {
	var out []member
	seen := make(map[string]bool)
	for _, m := range g.members {
		v := m.class.Get(f)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, m)
	}
	return out
}

func typeOptions(ms []member, f variant.Facet) []models.TypeOption {
	out := make([]models.TypeOption, 0, len(ms))
	for _, m := range ms {
		out = append(out, models.TypeOption{
			Type:   m.class.Get(f),
			Price:  m.row.Price,
			NameAR: m.row.NameAR,
			NameTR: m.row.NameTR,
			NameEN: m.row.NameEN,
		})
	}
	return out
}

// CategoryRank is the position of name in CategoryOrder, or len(CategoryOrder) when unknown.
func CategoryRank(name string) int {
	for i, c := range CategoryOrder {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return len(CategoryOrder)
}

// SortByCategory stable-sorts items by CategoryRank.
func SortByCategory(items []models.ConsolidatedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return CategoryRank(items[i].Category) < CategoryRank(items[j].Category)
	})
}

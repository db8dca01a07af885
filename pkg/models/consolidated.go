package models

import (
	"errors"
	"fmt"
	"strings"
)

// Facet values. "regular" is the implicit value of every facet.
const (
	Regular = "regular"

	SizeMedium = "medium"
	SizeLarge  = "large"

	DrinkRedbull = "redbull"
	Drink7up     = "7up"
	DrinkSoda    = "soda"

	PrepMix     = "mix"
	PrepBubbles = "bubbles"
)

// SizeOption is one priced size of a consolidated item.
type SizeOption struct {
	Size   string  `json:"size"`
	Price  float64 `json:"price"`
	NameAR string  `json:"name_ar"`
	NameTR string  `json:"name_tr"`
	NameEN string  `json:"name_en"`
}

// TypeOption is one priced drink or preparation type of a consolidated item.
type TypeOption struct {
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
	NameAR string  `json:"name_ar"`
	NameTR string  `json:"name_tr"`
	NameEN string  `json:"name_en"`
}

// ConsolidatedItem is one logical menu item after its raw variant rows were merged.
// Image and ImageFilename are only set by photo matching.
type ConsolidatedItem struct {
	ID                     string       `json:"id"`
	CanonicalKey           string       `json:"canonical_key"`
	NameAR                 string       `json:"name_ar"`
	NameTR                 string       `json:"name_tr"`
	NameEN                 string       `json:"name_en"`
	Category               string       `json:"category"`
	CategoryAR             string       `json:"category_ar,omitempty"`
	BasePrice              float64      `json:"base_price"`
	Image                  *string      `json:"image"`
	ImageFilename          *string      `json:"image_filename"`
	HasSizes               bool         `json:"has_sizes"`
	HasDrinkTypes          bool         `json:"has_drink_types"`
	HasPreparationTypes    bool         `json:"has_preparation_types"`
	SizeOptions            []SizeOption `json:"size_options"`
	DrinkTypeOptions       []TypeOption `json:"drink_type_options"`
	PreparationTypeOptions []TypeOption `json:"preparation_type_options"`
	OriginalVariations     int          `json:"original_variations"`
}

func (c ConsolidatedItem) Names() LocalizedNames {
	return LocalizedNames{AR: c.NameAR, TR: c.NameTR, EN: c.NameEN}
}

func (c ConsolidatedItem) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("id is empty")
	}
	if c.Names().IsZero() {
		return fmt.Errorf("item %s: no name", c.ID)
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("item %s: category is empty", c.ID)
	}
	if c.BasePrice < 0 {
		return fmt.Errorf("item %s: negative base_price", c.ID)
	}
	if c.HasSizes != (len(c.SizeOptions) > 1) {
		return fmt.Errorf("item %s: has_sizes does not match size_options", c.ID)
	}
	if c.HasDrinkTypes != (len(c.DrinkTypeOptions) > 1) {
		return fmt.Errorf("item %s: has_drink_types does not match drink_type_options", c.ID)
	}
	if c.HasPreparationTypes != (len(c.PreparationTypeOptions) > 1) {
		return fmt.Errorf("item %s: has_preparation_types does not match preparation_type_options", c.ID)
	}
	for _, o := range c.SizeOptions {
		if o.Price < 0 {
			return fmt.Errorf("item %s: negative price for size %s", c.ID, o.Size)
		}
	}
	return nil
}

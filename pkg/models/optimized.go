package models

import (
	"errors"
	"fmt"
)

type OptimizedSize struct {
	Size  string         `json:"size"`
	Price *float64       `json:"price"`
	Name  LocalizedNames `json:"name"`
}

type OptimizedType struct {
	Type  string         `json:"type"`
	Price *float64       `json:"price"`
	Name  LocalizedNames `json:"name"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// OptimizedItem is the nested, UI-oriented view of a consolidated item.
type OptimizedItem struct {
	ID                 string          `json:"id"`
	Name               LocalizedNames  `json:"name"`
	Category           string          `json:"category"`
	BasePrice          *float64        `json:"basePrice"`
	Image              *string         `json:"image"`
	ImageFilename      *string         `json:"imageFilename"`
	Sizes              []OptimizedSize `json:"sizes"`
	DrinkTypes         []OptimizedType `json:"drinkTypes"`
	PreparationTypes   []OptimizedType `json:"preparationTypes"`
	HasVariations      bool            `json:"hasVariations"`
	OriginalVariations int             `json:"originalVariations"`
	PriceRange         *PriceRange     `json:"priceRange"`
}

type OptimizedCategory struct {
	Name  string          `json:"name"`
	Items []OptimizedItem `json:"items"`
}

func (c OptimizedCategory) Validate() error {
	if c.Name == "" {
		return errors.New("category name is empty")
	}
	for i, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("category %q item %d: id is empty", c.Name, i)
		}
		if it.Name.IsZero() {
			return fmt.Errorf("category %q item %s: no name", c.Name, it.ID)
		}
	}
	return nil
}

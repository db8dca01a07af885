package models

import (
	"errors"
	"fmt"
	"strings"
)

// AppCategory is a category row as stored by the hosted database and read by the UI.
type AppCategory struct {
	ID        string         `json:"id"`
	Names     LocalizedNames `json:"names"`
	Order     int            `json:"order"`
	Active    bool           `json:"active"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

// Variant is a priced size nested under its parent item.
type Variant struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

type AppItem struct {
	ID         string         `json:"id"`
	Names      LocalizedNames `json:"names"`
	CategoryID string         `json:"category_id"`
	Price      float64        `json:"price"`
	Image      *string        `json:"image"`
	Variants   []Variant      `json:"variants"`
	Order      int            `json:"order"`
	Active     bool           `json:"active"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

// AppMenu is the final artifact shared by the UI and the hosted database import.
type AppMenu struct {
	Categories []AppCategory `json:"categories"`
	Items      []AppItem     `json:"items"`
}

func (c AppCategory) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("category id is empty")
	}
	if c.Names.IsZero() {
		return fmt.Errorf("category %s: no name", c.ID)
	}
	return nil
}

func (it AppItem) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return errors.New("item id is empty")
	}
	if it.Names.IsZero() {
		return fmt.Errorf("item %s: no name", it.ID)
	}
	if it.CategoryID == "" {
		return fmt.Errorf("item %s: category_id is empty", it.ID)
	}
	if it.Price < 0 {
		return fmt.Errorf("item %s: negative price", it.ID)
	}
	for _, v := range it.Variants {
		if v.Price < 0 {
			return fmt.Errorf("item %s: negative price for variant %s", it.ID, v.Size)
		}
	}
	return nil
}

// Validate checks every record plus id uniqueness and that each item's
// category_id refers to an emitted category.
func (m AppMenu) Validate() error {
	catIDs := make(map[string]struct{}, len(m.Categories))
	for i, c := range m.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
		if _, dup := catIDs[c.ID]; dup {
			return fmt.Errorf("categories[%d]: duplicate id %s", i, c.ID)
		}
		catIDs[c.ID] = struct{}{}
	}

	itemIDs := make(map[string]struct{}, len(m.Items))
	for i, it := range m.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		if _, ok := catIDs[it.CategoryID]; !ok {
			return fmt.Errorf("items[%d]: item %s references unknown category %s", i, it.ID, it.CategoryID)
		}
		if _, dup := itemIDs[it.ID]; dup {
			return fmt.Errorf("items[%d]: duplicate id %s", i, it.ID)
		}
		itemIDs[it.ID] = struct{}{}
	}
	return nil
}

package models

import (
	"fmt"
	"strings"
)

// RawRow is one menu line read from the multilingual CSV export.
type RawRow struct {
	Line       int     `json:"line"`
	NameAR     string  `json:"name_ar"`
	NameEN     string  `json:"name_en"`
	NameTR     string  `json:"name_tr"`
	CategoryAR string  `json:"category_ar"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	ImageRef   string  `json:"image_ref,omitempty"`
}

// DisplayName is the name used for grouping: English when present, Arabic otherwise.
func (r RawRow) DisplayName() string {
	if s := strings.TrimSpace(r.NameEN); s != "" {
		return s
	}
	return strings.TrimSpace(r.NameAR)
}

// CategoryName prefers the Latin group name.
func (r RawRow) CategoryName() string {
	if s := strings.TrimSpace(r.Category); s != "" {
		return s
	}
	return strings.TrimSpace(r.CategoryAR)
}

func (r RawRow) Names() LocalizedNames {
	return LocalizedNames{AR: r.NameAR, TR: r.NameTR, EN: r.NameEN}
}

func (r RawRow) Validate() error {
	if r.DisplayName() == "" {
		return fmt.Errorf("line %d: name is empty", r.Line)
	}
	if r.Price < 0 {
		return fmt.Errorf("line %d: negative price %v", r.Line, r.Price)
	}
	return nil
}

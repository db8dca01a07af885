// Package menucsv flattens an app menu into a spreadsheet-friendly CSV.
package menucsv

import (
	"encoding/csv"
	"io"
	"strconv"

	"menuhub/pkg/models"
)

var Header = []string{
	"Category",
	"Item Name (EN)",
	"Item Name (TR)",
	"Item Name (AR)",
	"Base Price",
	"Variant Size",
	"Variant Price",
}

// Write emits one row per variant, or a single row for items without variants.
func Write(w io.Writer, menu models.AppMenu) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, err
	}

	catNames := make(map[string]string, len(menu.Categories))
	for _, c := range menu.Categories {
		catNames[c.ID] = c.Names.Primary()
	}

	rows := 0
	for _, it := range menu.Items {
		category := it.CategoryID
		if name := catNames[it.CategoryID]; name != "" {
			category = name
		}
		base := []string{category, it.Names.EN, it.Names.TR, it.Names.AR, formatPrice(it.Price)}

		if len(it.Variants) == 0 {
			if err := cw.Write(append(base, "", "")); err != nil {
				return rows, err
			}
			rows++
			continue
		}
		for _, v := range it.Variants {
			rec := append(append([]string(nil), base...), v.Size, formatPrice(v.Price))
			if err := cw.Write(rec); err != nil {
				return rows, err
			}
			rows++
		}
	}

	cw.Flush()
	return rows, cw.Error()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

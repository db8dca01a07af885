// Package pricing reconciles stored item prices against a reference price list.
package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table maps lower-cased item names in any language to a price. Keys keep
// the order in which they first appeared in the file.
type Table struct {
	keys   []string
	prices map[string]float64
	Rows   int
}

func newTable() *Table {
	return &Table{prices: make(map[string]float64)}
}

func (t *Table) set(name string, price float64) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if _, ok := t.prices[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.prices[key] = price
}

func (t *Table) Len() int { return len(t.keys) }

// LoadReference reads a CSV with the header columns item_name_en,
// item_name_tr, item_name_ar and base_price. Rows without an English name
// or with a non-positive price are ignored.
func LoadReference(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}
	for _, col := range []string{"item_name_en", "base_price"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("reference csv: missing column %s", col)
		}
	}

	t := newTable()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference csv: %w", err)
		}

		en := valueAt(header, row, "item_name_en")
		if en == "" {
			continue
		}
		price, err := strconv.ParseFloat(valueAt(header, row, "base_price"), 64)
		if err != nil || price <= 0 {
			continue
		}

		t.set(en, price)
		t.set(valueAt(header, row, "item_name_tr"), price)
		t.set(valueAt(header, row, "item_name_ar"), price)
		t.Rows++
	}
	return t, nil
}

// Match kinds reported by Lookup.
const (
	MatchNone    = ""
	MatchExact   = "exact"
	MatchPartial = "partial"
)

// Lookup finds a price for any of names. Exact key matches win; otherwise
// the first key, in file order, that contains a name or is contained by it.
func (t *Table) Lookup(names ...string) (float64, string, string) {
	var terms []string
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			terms = append(terms, n)
		}
	}

	for _, term := range terms {
		if p, ok := t.prices[term]; ok {
			return p, term, MatchExact
		}
	}
	for _, term := range terms {
		for _, key := range t.keys {
			if strings.Contains(key, term) || strings.Contains(term, key) {
				return t.prices[key], key, MatchPartial
			}
		}
	}
	return 0, "", MatchNone
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		// tolerate a UTF-8 BOM on the first column
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Package parser reads the multilingual menu CSV export into raw rows.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"menuhub/pkg/models"
)

// Positional columns of the export. The file carries no usable header row.
const (
	colNameAR = iota
	colPrice
	colNameTR
	colNameEN
	colCategoryAR
	colCategory
	colImage

	numColumns
)

// HeaderLabel is the Arabic item-name column title; rows repeating it are skipped.
const HeaderLabel = "اسم المادة"

// CategoryCount is the number of valid rows seen for one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Report summarises one parse run. Skipped + Valid == Total - 1.
type Report struct {
	Total      int             `json:"total"`
	Valid      int             `json:"valid"`
	Skipped    int             `json:"skipped"`
	Malformed  int             `json:"malformed"`
	ZeroPrice  []int           `json:"zero_price_lines"`
	EmptyName  []int           `json:"empty_name_lines"`
	Categories []CategoryCount `json:"categories"`
}

func (r *Report) countCategory(name string) {
	for i := range r.Categories {
		if r.Categories[i].Category == name {
			r.Categories[i].Count++
			return
		}
	}
	r.Categories = append(r.Categories, CategoryCount{Category: name, Count: 1})
}

type Parser struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// Parse reads every record of r. The first record is always dropped. Rows
// without an Arabic name are skipped; rows with a zero price or without a
// Latin name are kept and flagged in the report. Only read failures of the
// underlying stream are returned as errors.
func (p *Parser) Parse(r io.Reader) ([]models.RawRow, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		rows []models.RawRow
		rep  Report
	)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, rep, fmt.Errorf("read csv: %w", err)
			}
			rep.Total++
			if rep.Total > 1 {
				rep.Skipped++
				rep.Malformed++
			}
			p.log.Warn("malformed csv record", zap.Int("line", perr.Line), zap.Error(err))
			continue
		}

		rep.Total++
		if rep.Total == 1 {
			continue
		}

		line, _ := cr.FieldPos(0)
		row, ok := rowFromRecord(rec, line)
		if !ok {
			rep.Skipped++
			continue
		}

		if row.Price == 0 {
			rep.ZeroPrice = append(rep.ZeroPrice, row.Line)
			p.log.Debug("zero price row", zap.Int("line", row.Line), zap.String("name", row.NameAR))
		}
		if row.NameEN == "" {
			rep.EmptyName = append(rep.EmptyName, row.Line)
			p.log.Debug("row without latin name", zap.Int("line", row.Line), zap.String("name", row.NameAR))
		}

		rep.Valid++
		rep.countCategory(row.CategoryName())
		rows = append(rows, row)
	}

	p.log.Info("csv parsed",
		zap.Int("total", rep.Total),
		zap.Int("valid", rep.Valid),
		zap.Int("skipped", rep.Skipped),
		zap.Int("zero_price", len(rep.ZeroPrice)),
	)
	return rows, rep, nil
}

func rowFromRecord(rec []string, line int) (models.RawRow, bool) {
	// pad short rows
	for len(rec) < numColumns {
		rec = append(rec, "")
	}

	nameAR := strings.TrimSpace(rec[colNameAR])
	if nameAR == "" || nameAR == HeaderLabel {
		return models.RawRow{}, false
	}

	return models.RawRow{
		Line:       line,
		NameAR:     nameAR,
		NameEN:     strings.TrimSpace(rec[colNameEN]),
		NameTR:     strings.TrimSpace(rec[colNameTR]),
		CategoryAR: strings.TrimSpace(rec[colCategoryAR]),
		Category:   strings.TrimSpace(rec[colCategory]),
		Price:      ParsePrice(rec[colPrice]),
		ImageRef:   strings.TrimSpace(rec[colImage]),
	}, true
}

// ParsePrice reads the leading decimal number of s. Anything that does not
// yield a finite, non-negative number is 0.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot, seenDigit := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
			continue
		case r == '.' && !seenDot:
			seenDot = true
			continue
		case (r == '+' || r == '-') && i == 0:
			continue
		}
		break
	}
	if !seenDigit {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

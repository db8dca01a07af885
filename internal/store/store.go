// Package store persists the app menu in either a local SQLite file or the
// hosted Postgres database. Writes are upserts keyed by id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"menuhub/pkg/database"
	"menuhub/pkg/models"
	"menuhub/pkg/utils"
)

var ErrNotFound = errors.New("not found")

type ItemQuery struct {
	Q          string // substring of any localized name
	CategoryID string
	Limit      int
	Offset     int
}

type Store interface {
	UpsertCategory(ctx context.Context, c models.AppCategory) error
	UpsertItem(ctx context.Context, it models.AppItem) error
	ListCategories(ctx context.Context) ([]models.AppCategory, error)
	ListItems(ctx context.Context, q ItemQuery) ([]models.AppItem, error)
	GetItem(ctx context.Context, id string) (*models.AppItem, error)
	UpdateItemPrice(ctx context.Context, id string, price float64, updatedAt string) error
	Close() error
}

// Open picks the backend named by cfg.Driver.
func Open(ctx context.Context, cfg utils.DatabaseConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "sqlite", "sqlite3":
		db, err := database.Open(database.Config{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		return NewSQLite(db), nil
	case "postgres", "postgresql":
		return NewPostgres(ctx, cfg.PostgresURL)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// categoryRow and itemRow are the column layout shared by both backends.
type categoryRow struct {
	ID        string `db:"id"`
	Names     string `db:"names"`
	SortOrder int    `db:"sort_order"`
	Active    bool   `db:"active"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type itemRow struct {
	ID         string  `db:"id"`
	Names      string  `db:"names"`
	CategoryID string  `db:"category_id"`
	Price      float64 `db:"price"`
	Image      *string `db:"image"`
	Variants   *string `db:"variants"`
	SortOrder  int     `db:"sort_order"`
	Active     bool    `db:"active"`
	CreatedAt  string  `db:"created_at"`
	UpdatedAt  string  `db:"updated_at"`
}

func toCategoryRow(c models.AppCategory) (categoryRow, error) {
	names, err := json.Marshal(c.Names)
	if err != nil {
		return categoryRow{}, fmt.Errorf("encode names: %w", err)
	}
	return categoryRow{
		ID:        c.ID,
		Names:     string(names),
		SortOrder: c.Order,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (r categoryRow) model() (models.AppCategory, error) {
	c := models.AppCategory{
		ID:        r.ID,
		Order:     r.SortOrder,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.Names), &c.Names); err != nil {
		return c, fmt.Errorf("category %s: decode names: %w", r.ID, err)
	}
	return c, nil
}

func toItemRow(it models.AppItem) (itemRow, error) {
	names, err := json.Marshal(it.Names)
	if err != nil {
		return itemRow{}, fmt.Errorf("encode names: %w", err)
	}
	row := itemRow{
		ID:         it.ID,
		Names:      string(names),
		CategoryID: it.CategoryID,
		Price:      it.Price,
		Image:      it.Image,
		SortOrder:  it.Order,
		Active:     it.Active,
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
	if it.Variants != nil {
		b, err := json.Marshal(it.Variants)
		if err != nil {
			return itemRow{}, fmt.Errorf("encode variants: %w", err)
		}
		s := string(b)
		row.Variants = &s
	}
	return row, nil
}

func (r itemRow) model() (models.AppItem, error) {
	it := models.AppItem{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		Price:      r.Price,
		Image:      r.Image,
		Order:      r.SortOrder,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.Names), &it.Names); err != nil {
		return it, fmt.Errorf("item %s: decode names: %w", r.ID, err)
	}
	if r.Variants != nil && *r.Variants != "" && *r.Variants != "null" {
		if err := json.Unmarshal([]byte(*r.Variants), &it.Variants); err != nil {
			return it, fmt.Errorf("item %s: decode variants: %w", r.ID, err)
		}
	}
	return it, nil
}

// buildItemsSQL returns a '?'-placeholder query. nameExprs extract the
// individual localized names from the names column, so the search never
// sees the JSON keys.
func buildItemsSQL(selectCols string, nameExprs []string, q ItemQuery) (string, []any) {
	var (
		where []string
		args  []any
	)

	if kw := strings.TrimSpace(q.Q); kw != "" && len(nameExprs) > 0 {
		like := "%" + strings.ToLower(kw) + "%"
		ors := make([]string, 0, len(nameExprs))
		for _, e := range nameExprs {
			ors = append(ors, "LOWER(COALESCE("+e+", '')) LIKE ?")
			args = append(args, like)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if c := strings.TrimSpace(q.CategoryID); c != "" {
		where = append(where, "category_id = ?")
		args = append(args, c)
	}

	sqlStr := "SELECT " + selectCols + " FROM items"
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}
	sqlStr += " ORDER BY sort_order, id"

	if q.Limit > 0 {
		sqlStr += " LIMIT ? OFFSET ?"
		args = append(args, q.Limit, max(q.Offset, 0))
	}
	return sqlStr, args
}

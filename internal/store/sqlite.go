package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"menuhub/pkg/models"
)

const (
	categoryCols = `id, names, sort_order, active, created_at, updated_at`
	itemCols     = `id, names, category_id, price, image, variants, sort_order, active, created_at, updated_at`
)

type SQLiteStore struct {
	DB *sqlx.DB
}

// NewSQLite wraps a database opened with database.Open.
func NewSQLite(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}

func (s *SQLiteStore) UpsertCategory(ctx context.Context, c models.AppCategory) error {
	row, err := toCategoryRow(c)
	if err != nil {
		return err
	}
	_, err = s.DB.NamedExecContext(ctx, `
		INSERT INTO categories (`+categoryCols+`)
		VALUES (:id, :names, :sort_order, :active, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
		  names = excluded.names,
		  sort_order = excluded.sort_order,
		  active = excluded.active,
		  updated_at = excluded.updated_at
	`, row)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertItem(ctx context.Context, it models.AppItem) error {
	row, err := toItemRow(it)
	if err != nil {
		return err
	}
	_, err = s.DB.NamedExecContext(ctx, `
		INSERT INTO items (`+itemCols+`)
		VALUES (:id, :names, :category_id, :price, :image, :variants, :sort_order, :active, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
		  names = excluded.names,
		  category_id = excluded.category_id,
		  price = excluded.price,
		  image = excluded.image,
		  variants = excluded.variants,
		  sort_order = excluded.sort_order,
		  active = excluded.active,
		  updated_at = excluded.updated_at
	`, row)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	return nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]models.AppCategory, error) {
	var rows []categoryRow
	if err := s.DB.SelectContext(ctx, &rows, `SELECT `+categoryCols+` FROM categories ORDER BY sort_order, id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]models.AppCategory, 0, len(rows))
	for _, r := range rows {
		c, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var sqliteNameExprs = []string{
	"json_extract(names, '$.ar')",
	"json_extract(names, '$.tr')",
	"json_extract(names, '$.en')",
}

func (s *SQLiteStore) ListItems(ctx context.Context, q ItemQuery) ([]models.AppItem, error) {
	sqlStr, args := buildItemsSQL(itemCols, sqliteNameExprs, q)

	var rows []itemRow
	if err := s.DB.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return itemModels(rows)
}

func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.AppItem, error) {
	var row itemRow
	if err := s.DB.GetContext(ctx, &row, `SELECT `+itemCols+` FROM items WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	it, err := row.model()
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *SQLiteStore) UpdateItemPrice(ctx context.Context, id string, price float64, updatedAt string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE items SET price = ?, updated_at = ? WHERE id = ?`, price, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update price %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update price %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func itemModels(rows []itemRow) ([]models.AppItem, error) {
	out := make([]models.AppItem, 0, len(rows))
	for _, r := range rows {
		it, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

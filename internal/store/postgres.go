package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"menuhub/pkg/models"
)

const pgTimestamp = `'YYYY-MM-DD"T"HH24:MI:SS.MS"Z"'`

var (
	pgCategoryCols = `id, names::text AS names, sort_order, active, ` +
		`to_char(created_at AT TIME ZONE 'UTC', ` + pgTimestamp + `) AS created_at, ` +
		`to_char(updated_at AT TIME ZONE 'UTC', ` + pgTimestamp + `) AS updated_at`
	pgItemCols = `id, names::text AS names, category_id, price, image, variants::text AS variants, sort_order, active, ` +
		`to_char(created_at AT TIME ZONE 'UTC', ` + pgTimestamp + `) AS created_at, ` +
		`to_char(updated_at AT TIME ZONE 'UTC', ` + pgTimestamp + `) AS updated_at`
)

// PostgresStore talks to the hosted database.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{Pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS categories (
			id          TEXT PRIMARY KEY,
			names       JSONB NOT NULL,
			sort_order  INTEGER NOT NULL DEFAULT 0,
			active      BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS items (
			id           TEXT PRIMARY KEY,
			names        JSONB NOT NULL,
			category_id  TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			price        DOUBLE PRECISION NOT NULL DEFAULT 0,
			image        TEXT,
			variants     JSONB,
			sort_order   INTEGER NOT NULL DEFAULT 0,
			active       BOOLEAN NOT NULL DEFAULT TRUE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id, sort_order);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}

func (s *PostgresStore) UpsertCategory(ctx context.Context, c models.AppCategory) error {
	row, err := toCategoryRow(c)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO categories (id, names, sort_order, active, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, $5::timestamptz, $6::timestamptz)
		ON CONFLICT (id) DO UPDATE SET
		  names = EXCLUDED.names,
		  sort_order = EXCLUDED.sort_order,
		  active = EXCLUDED.active,
		  updated_at = EXCLUDED.updated_at
	`, row.ID, row.Names, row.SortOrder, row.Active, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", c.ID, err)
	}
	return nil
}

func (s *PostgresStore) UpsertItem(ctx context.Context, it models.AppItem) error {
	row, err := toItemRow(it)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO items (id, names, category_id, price, image, variants, sort_order, active, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6::jsonb, $7, $8, $9::timestamptz, $10::timestamptz)
		ON CONFLICT (id) DO UPDATE SET
		  names = EXCLUDED.names,
		  category_id = EXCLUDED.category_id,
		  price = EXCLUDED.price,
		  image = EXCLUDED.image,
		  variants = EXCLUDED.variants,
		  sort_order = EXCLUDED.sort_order,
		  active = EXCLUDED.active,
		  updated_at = EXCLUDED.updated_at
	`, row.ID, row.Names, row.CategoryID, row.Price, row.Image, row.Variants, row.SortOrder, row.Active, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	return nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]models.AppCategory, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+pgCategoryCols+` FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[categoryRow])
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]models.AppCategory, 0, len(recs))
	for _, r := range recs {
		c, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var pgNameExprs = []string{"names->>'ar'", "names->>'tr'", "names->>'en'"}

func (s *PostgresStore) ListItems(ctx context.Context, q ItemQuery) ([]models.AppItem, error) {
	sqlStr, args := buildItemsSQL(pgItemCols, pgNameExprs, q)

	rows, err := s.Pool.Query(ctx, sqlx.Rebind(sqlx.DOLLAR, sqlStr), args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return itemModels(recs)
}

func (s *PostgresStore) GetItem(ctx context.Context, id string) (*models.AppItem, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+pgItemCols+` FROM items WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	it, err := rec.model()
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *PostgresStore) UpdateItemPrice(ctx context.Context, id string, price float64, updatedAt string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE items SET price = $1, updated_at = $2::timestamptz WHERE id = $3`, price, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update price %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

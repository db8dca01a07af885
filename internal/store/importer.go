package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"menuhub/internal/artifact"
	"menuhub/pkg/models"
)

type Failure struct {
	Kind  string `json:"kind"` // "category" or "item"
	ID    string `json:"id"`
	Error string `json:"error"`
}

type ImportReport struct {
	CategoriesUpserted int       `json:"categories_upserted"`
	ItemsUpserted      int       `json:"items_upserted"`
	Failed             int       `json:"failed"`
	Failures           []Failure `json:"failures,omitempty"`
}

// Importer upserts an app menu into a Store one record at a time.
type Importer struct {
	store Store
	log   *zap.Logger
}

func NewImporter(s Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: s, log: log}
}

// Import validates menu, then upserts categories before items. A record the
// store rejects is logged and counted; the batch carries on. Only an invalid
// menu or a cancelled context stops the import.
func (im *Importer) Import(ctx context.Context, menu models.AppMenu) (ImportReport, error) {
	var rep ImportReport
	if err := menu.Validate(); err != nil {
		return rep, fmt.Errorf("invalid menu: %w", err)
	}

	for _, c := range menu.Categories {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := im.store.UpsertCategory(ctx, c); err != nil {
			im.fail(&rep, "category", c.ID, err)
			continue
		}
		rep.CategoriesUpserted++
	}

	for _, it := range menu.Items {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := im.store.UpsertItem(ctx, it); err != nil {
			im.fail(&rep, "item", it.ID, err)
			continue
		}
		rep.ItemsUpserted++
	}

	im.log.Info("menu imported",
		zap.Int("categories", rep.CategoriesUpserted),
		zap.Int("items", rep.ItemsUpserted),
		zap.Int("failed", rep.Failed),
	)
	return rep, nil
}

// ImportFile reads a converted menu.json and imports it.
func (im *Importer) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	var menu models.AppMenu
	if err := artifact.ReadJSON(path, &menu); err != nil {
		return ImportReport{}, err
	}
	return im.Import(ctx, menu)
}

func (im *Importer) fail(rep *ImportReport, kind, id string, err error) {
	im.log.Warn("upsert failed", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	rep.Failed++
	rep.Failures = append(rep.Failures, Failure{Kind: kind, ID: id, Error: err.Error()})
}

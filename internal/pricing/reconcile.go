package pricing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"menuhub/internal/store"
	"menuhub/pkg/models"
)

type Report struct {
	Items     int      `json:"items"`
	Updated   int      `json:"updated"`
	Unchanged int      `json:"unchanged"`
	NotFound  int      `json:"not_found"`
	Failed    int      `json:"failed"`
	Partial   int      `json:"partial_matches"`
	Missing   []string `json:"not_found_items"`
}

type Reconciler struct {
	store store.Store
	table *Table
	log   *zap.Logger
	Now   func() time.Time
}

func NewReconciler(s store.Store, t *Table, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: s, table: t, log: log, Now: time.Now}
}

// Reconcile updates every stored item whose reference price differs. Items
// without a reference price are skipped; a failed update is logged and the
// run continues.
func (r *Reconciler) Reconcile(ctx context.Context) (Report, error) {
	var rep Report

	items, err := r.store.ListItems(ctx, store.ItemQuery{})
	if err != nil {
		return rep, fmt.Errorf("load items: %w", err)
	}
	rep.Items = len(items)
	now := r.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	for _, it := range items {
		price, key, kind := r.table.Lookup(it.Names.EN, it.Names.TR, it.Names.AR)
		switch {
		case kind == MatchNone:
			rep.NotFound++
			rep.Missing = append(rep.Missing, label(it))
			r.log.Debug("no reference price", zap.String("item", label(it)))
			continue
		case price == it.Price:
			rep.Unchanged++
			continue
		}

		if kind == MatchPartial {
			rep.Partial++
			r.log.Info("partial price match", zap.String("item", label(it)), zap.String("reference", key), zap.Float64("price", price))
		}

		if err := r.store.UpdateItemPrice(ctx, it.ID, price, now); err != nil {
			rep.Failed++
			r.log.Warn("price update failed", zap.String("id", it.ID), zap.Error(err))
			continue
		}
		rep.Updated++
		r.log.Info("price updated", zap.String("item", label(it)), zap.Float64("from", it.Price), zap.Float64("to", price))
	}
	return rep, nil
}

func label(it models.AppItem) string {
	return it.Names.Primary()
}

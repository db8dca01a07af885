package pricing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"menuhub/internal/store"
	"menuhub/pkg/models"
)

const referenceCSV = "\ufeffitem_name_en,item_name_tr,item_name_ar,base_price\n" +
	"Latte,Latte,لاتيه,55\n" +
	"Caramel Macchiato,Karamel Macchiato,كراميل ماكياتو,70\n" +
	"Free Water,Su,ماء,0.00\n" +
	",Boş,فارغ,10\n"

func TestLoadReference(t *testing.T) {
	tbl, err := LoadReference(strings.NewReader(referenceCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Rows != 2 {
		t.Fatalf("expected 2 priced rows, got %d", tbl.Rows)
	}

	if p, _, kind := tbl.Lookup("LATTE"); p != 55 || kind != MatchExact {
		t.Fatalf("exact lookup: %v %q", p, kind)
	}
	if p, _, kind := tbl.Lookup("", "", "كراميل ماكياتو"); p != 70 || kind != MatchExact {
		t.Fatalf("arabic lookup: %v %q", p, kind)
	}
	if p, key, kind := tbl.Lookup("Iced Caramel Macchiato"); p != 70 || kind != MatchPartial || key != "caramel macchiato" {
		t.Fatalf("partial lookup: %v %q %q", p, key, kind)
	}
	if _, _, kind := tbl.Lookup("Free Water"); kind != MatchNone {
		t.Fatalf("zero priced rows must be ignored, got %q", kind)
	}
}

func TestLoadReferenceMissingColumn(t *testing.T) {
	if _, err := LoadReference(strings.NewReader("name,price\nLatte,5\n")); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

// refusingStore fails price updates for one id.
type refusingStore struct {
	store.Store
	id string
}

func (r refusingStore) UpdateItemPrice(ctx context.Context, id string, price float64, updatedAt string) error {
	if id == r.id {
		return errors.New("update refused")
	}
	return r.Store.UpdateItemPrice(ctx, id, price, updatedAt)
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	for i, it := range []models.AppItem{
		{ID: "latte", Names: models.LocalizedNames{EN: "Latte"}, Price: 50},
		{ID: "macchiato", Names: models.LocalizedNames{EN: "Iced Caramel Macchiato"}, Price: 70},
		{ID: "mystery", Names: models.LocalizedNames{EN: "Mystery"}, Price: 5},
		{ID: "broken", Names: models.LocalizedNames{TR: "Latte"}, Price: 1},
	} {
		it.Order = i
		if err := s.UpsertItem(ctx, it); err != nil {
			t.Fatal(err)
		}
	}

	tbl, err := LoadReference(strings.NewReader(referenceCSV))
	if err != nil {
		t.Fatal(err)
	}
	r := NewReconciler(refusingStore{Store: s, id: "broken"}, tbl, nil)
	r.Now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	rep, err := r.Reconcile(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if rep.Items != 4 || rep.Updated != 1 || rep.Unchanged != 1 || rep.NotFound != 1 || rep.Failed != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(rep.Missing) != 1 || rep.Missing[0] != "Mystery" {
		t.Fatalf("unexpected missing list: %v", rep.Missing)
	}

	latte, _ := s.GetItem(ctx, "latte")
	if latte.Price != 55 || latte.UpdatedAt != "2025-01-02T03:04:05.000Z" {
		t.Fatalf("latte not updated: %+v", latte)
	}
	mystery, _ := s.GetItem(ctx, "mystery")
	if mystery.Price != 5 {
		t.Fatalf("unmatched item must keep its price, got %v", mystery.Price)
	}
}

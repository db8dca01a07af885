package appformat

import (
	"testing"
	"time"

	"menuhub/internal/consolidate"
	"menuhub/pkg/models"
)

var fixedNow = time.Date(2025, 10, 6, 12, 30, 0, 0, time.FixedZone("TRT", 3*60*60))

func fixedConverter() *Converter {
	return &Converter{Now: func() time.Time { return fixedNow }}
}

func rawRow(ar, en string, price float64, category string) models.RawRow {
	return models.RawRow{Line: 2, NameAR: ar, NameEN: en, NameTR: en, Category: category, Price: price}
}

func pipeline(t *testing.T, rows []models.RawRow) ([]models.ConsolidatedItem, models.AppMenu) {
	t.Helper()
	items, _, err := consolidate.Consolidate(rows)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	opt, _, err := Optimize(items)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	menu, _, err := fixedConverter().Convert(opt)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	return items, menu
}

func TestConvertLatteExample(t *testing.T) {
	_, menu := pipeline(t, []models.RawRow{
		rawRow("قهوة لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("قهوة لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
	})

	if len(menu.Categories) != 1 || menu.Categories[0].ID != "cat_hot_coffee" {
		t.Fatalf("unexpected categories: %+v", menu.Categories)
	}
	if menu.Categories[0].Names.AR != "قهوة ساخنة" || menu.Categories[0].Names.TR != "Sıcak Kahve" {
		t.Fatalf("category not translated: %+v", menu.Categories[0].Names)
	}
	if len(menu.Items) != 1 {
		t.Fatalf("expected a single item, got %d", len(menu.Items))
	}

	it := menu.Items[0]
	if it.Price != 50 || it.CategoryID != "cat_hot_coffee" {
		t.Fatalf("unexpected item: %+v", it)
	}
	if len(it.Variants) != 1 || it.Variants[0] != (models.Variant{Size: "large", Price: 65}) {
		t.Fatalf("unexpected variants: %+v", it.Variants)
	}
	if it.CreatedAt != "2025-10-06T09:30:00.000Z" || it.UpdatedAt != it.CreatedAt {
		t.Fatalf("unexpected timestamps %q %q", it.CreatedAt, it.UpdatedAt)
	}
}

func TestConvertDrinkTypesExpandToSiblings(t *testing.T) {
	_, menu := pipeline(t, []models.RawRow{
		rawRow("موهيتو", "Mojito", 40, "Mojitos"),
		rawRow("موهيتو ريد بول", "Mojito Red Bull", 60, "Mojitos"),
		rawRow("موهيتو سفن", "Mojito 7up", 45, "Mojitos"),
	})

	if len(menu.Items) != 3 {
		t.Fatalf("expected parent plus 2 drink items, got %d", len(menu.Items))
	}
	parent := menu.Items[0]
	rb := menu.Items[1]
	if rb.ID != parent.ID+"_drink_redbull" || rb.Price != 60 {
		t.Fatalf("unexpected redbull item: %+v", rb)
	}
	if rb.Names.EN != "Mojito Red Bull (redbull)" {
		t.Fatalf("unexpected drink name %q", rb.Names.EN)
	}
	if rb.Order != 1 || menu.Items[2].Order != 2 {
		t.Fatalf("unexpected order: %d %d", rb.Order, menu.Items[2].Order)
	}
	if parent.Variants != nil {
		t.Fatalf("drink types must not become variants: %+v", parent.Variants)
	}
}

func TestConvertReferentialIntegrity(t *testing.T) {
	_, menu := pipeline(t, []models.RawRow{
		rawRow("لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("وافل", "Waffle", 80, "Sweets"),
		rawRow("شيء", "Mystery", 10, "Brunch Specials"),
	})

	ids := make(map[string]bool)
	for _, c := range menu.Categories {
		ids[c.ID] = true
	}
	for _, it := range menu.Items {
		if !ids[it.CategoryID] {
			t.Fatalf("item %s references missing category %s", it.ID, it.CategoryID)
		}
	}
	if menu.Categories[2].ID != "cat_brunch_specials" || menu.Categories[2].Names.AR != "Brunch Specials" {
		t.Fatalf("unknown category should pass through: %+v", menu.Categories[2])
	}
}

func TestConvertReportsUntranslated(t *testing.T) {
	opt := []models.OptimizedCategory{{Name: "Brunch", Items: []models.OptimizedItem{{ID: "x", Name: models.LocalizedNames{EN: "Eggs"}}}}}
	menu, rep, err := fixedConverter().Convert(opt)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(rep.UntranslatedCategories) != 1 || rep.UntranslatedCategories[0] != "Brunch" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if menu.Items[0].Price != 0 {
		t.Fatalf("missing price should default to 0, got %v", menu.Items[0].Price)
	}
}

func TestConvertRejectsInvalidCategory(t *testing.T) {
	_, _, err := fixedConverter().Convert([]models.OptimizedCategory{{Name: ""}})
	if err == nil {
		t.Fatal("expected error for unnamed category")
	}
}

func TestSizeRoundTrip(t *testing.T) {
	items, menu := pipeline(t, []models.RawRow{
		rawRow("لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
		rawRow("موكا وسط", "Mocha Medium", 55, "Hot Coffee"),
		rawRow("موكا كبير", "Mocha Large", 70, "Hot Coffee"),
		rawRow("كابتشينو", "Cappuccino", 45, "Hot Coffee"),
	})

	byID := make(map[string]models.AppItem)
	for _, it := range menu.Items {
		byID[it.ID] = it
	}

	for _, c := range items {
		want := ConsolidatedSizePrices(c)
		got := SizePrices(byID[c.ID])
		if len(got) != len(want) {
			t.Fatalf("%s: got %v, want %v", c.NameEN, got, want)
		}
		for size, price := range want {
			if got[size] != price {
				t.Fatalf("%s: size %s got %v, want %v", c.NameEN, size, got[size], price)
			}
		}
	}
}

func TestCheckSizes(t *testing.T) {
	items, menu := pipeline(t, []models.RawRow{
		rawRow("لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
		rawRow("كابتشينو", "Cappuccino", 45, "Hot Coffee"),
	})

	sc := CheckSizes(items, menu)
	if sc.Checked != 1 || len(sc.Mismatched) != 0 {
		t.Fatalf("unexpected check: %+v", sc)
	}

	menu.Items[0].Variants[0].Price = 60
	sc = CheckSizes(items, menu)
	if len(sc.Mismatched) != 1 || sc.Mismatched[0] != "Latte" {
		t.Fatalf("expected latte mismatch, got %+v", sc)
	}

	sc = CheckSizes(items, models.AppMenu{})
	if len(sc.Mismatched) != 1 {
		t.Fatalf("missing item must be reported, got %+v", sc)
	}
}

func TestCategoryID(t *testing.T) {
	if got := CategoryID("Cold  drinks\tExtra"); got != "cat_cold_drinks_extra" {
		t.Fatalf("unexpected id %q", got)
	}
}

func TestOptimize(t *testing.T) {
	items, _, err := consolidate.Consolidate([]models.RawRow{
		rawRow("لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
		rawRow("وافل", "Waffle", 80, "Sweets"),
	})
	if err != nil {
		t.Fatal(err)
	}

	cats, st, err := Optimize(items)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Hot Coffee" || cats[1].Name != "Sweets" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	latte := cats[0].Items[0]
	if !latte.HasVariations || latte.PriceRange == nil || latte.PriceRange.Min != 50 || latte.PriceRange.Max != 65 {
		t.Fatalf("unexpected latte: %+v", latte)
	}
	if cats[1].Items[0].Sizes != nil || cats[1].Items[0].PriceRange != nil {
		t.Fatalf("waffle should carry no sizes")
	}
	if st.Items != 2 || st.Categories != 2 || st.ItemsWithSizes != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestOptimizeRejectsMalformed(t *testing.T) {
	_, _, err := Optimize([]models.ConsolidatedItem{{ID: "x", NameEN: "Latte", Category: "Hot Coffee", HasSizes: true}})
	if err == nil {
		t.Fatal("expected error for has_sizes without options")
	}
}

func TestCategoriesDifferingOnlyInCase(t *testing.T) {
	_, menu := pipeline(t, []models.RawRow{
		rawRow("لاتيه", "Latte", 50, "Hot Coffee"),
		rawRow("موكا", "Mocha", 55, "Hot coffee"),
		rawRow("وافل", "Waffle", 80, "Sweets"),
	})

	if len(menu.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", menu.Categories)
	}
	hot := menu.Categories[0]
	if hot.ID != "cat_hot_coffee" || hot.Names.EN != "Hot Coffee" {
		t.Fatalf("expected first-seen spelling, got %+v", hot)
	}
	for _, it := range menu.Items[:2] {
		if it.CategoryID != "cat_hot_coffee" {
			t.Fatalf("item %s in %s", it.ID, it.CategoryID)
		}
	}
}

func TestConvertMergesGroupsWithSameID(t *testing.T) {
	price := 10.0
	item := func(id string) models.OptimizedItem {
		return models.OptimizedItem{ID: id, Name: models.LocalizedNames{EN: id}, BasePrice: &price}
	}
	menu, rep, err := fixedConverter().Convert([]models.OptimizedCategory{
		{Name: "Sweets", Items: []models.OptimizedItem{item("a")}},
		{Name: "SWEETS", Items: []models.OptimizedItem{item("b")}},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if rep.Categories != 1 || len(menu.Items) != 2 || menu.Items[1].CategoryID != "cat_sweets" {
		t.Fatalf("unexpected result: %+v %+v", rep, menu)
	}
}

package consolidate

import (
	"strings"
	"testing"

	"menuhub/pkg/models"
)

func row(line int, ar, en string, price float64, category string) models.RawRow {
	return models.RawRow{Line: line, NameAR: ar, NameEN: en, NameTR: en, Category: category, Price: price}
}

func TestConsolidateSizeVariants(t *testing.T) {
	rows := []models.RawRow{
		row(2, "قهوة لاتيه", "Latte", 50, "Hot Coffee"),
		row(3, "قهوة لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
	}

	items, st, err := Consolidate(rows)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	it := items[0]
	if it.NameEN != "Latte" || it.BasePrice != 50 || it.Category != "Hot Coffee" {
		t.Fatalf("unexpected base fields: %+v", it)
	}
	if !it.HasSizes || len(it.SizeOptions) != 2 {
		t.Fatalf("expected 2 size options, got %+v", it.SizeOptions)
	}
	if it.SizeOptions[0].Size != "regular" || it.SizeOptions[0].Price != 50 {
		t.Fatalf("unexpected first size option: %+v", it.SizeOptions[0])
	}
	if it.SizeOptions[1].Size != "large" || it.SizeOptions[1].Price != 65 {
		t.Fatalf("unexpected second size option: %+v", it.SizeOptions[1])
	}
	if it.DrinkTypeOptions != nil || it.PreparationTypeOptions != nil {
		t.Fatalf("single-valued facets must stay nil")
	}
	if it.OriginalVariations != 2 {
		t.Fatalf("expected 2 original variations, got %d", it.OriginalVariations)
	}
	if st.RowsIn != 2 || st.ItemsOut != 1 || st.ItemsWithSizes != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if err := it.Validate(); err != nil {
		t.Fatalf("consolidated item invalid: %v", err)
	}
}

func TestConsolidateMediumAndLargeShareGroup(t *testing.T) {
	items, _, err := Consolidate([]models.RawRow{
		row(2, "لاتيه وسط", "Latte Medium", 55, "Hot Coffee"),
		row(3, "لاتيه كبير", "Latte Large", 65, "Hot Coffee"),
	})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(items) != 1 || len(items[0].SizeOptions) != 2 {
		t.Fatalf("expected one item with 2 sizes, got %+v", items)
	}
}

func TestConsolidateLoneItemHasNoOptions(t *testing.T) {
	items, _, err := Consolidate([]models.RawRow{row(2, "لاتيه", "Latte", 50, "Hot Coffee")})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	it := items[0]
	if it.SizeOptions != nil || it.HasSizes {
		t.Fatalf("lone item must not carry size options: %+v", it)
	}
}

func TestConsolidateDrinkTypesFirstRowWins(t *testing.T) {
	items, _, err := Consolidate([]models.RawRow{
		row(2, "موهيتو", "Mojito", 40, "Mojitos"),
		row(3, "موهيتو ريد بول", "Mojito Red Bull", 60, "Mojitos"),
		row(4, "موهيتو ريد بول", "Mojito Redbull", 99, "Mojitos"),
		row(5, "موهيتو سفن", "Mojito 7up", 45, "Mojitos"),
	})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	it := items[0]
	if len(it.DrinkTypeOptions) != 3 {
		t.Fatalf("expected 3 drink types, got %+v", it.DrinkTypeOptions)
	}
	if rb := it.DrinkTypeOptions[1]; rb.Type != "redbull" || rb.Price != 60 {
		t.Fatalf("expected first redbull row to win, got %+v", rb)
	}
	if it.SizeOptions != nil {
		t.Fatalf("no size variation expected")
	}
}

func TestConsolidateCategoryOrder(t *testing.T) {
	items, _, err := Consolidate([]models.RawRow{
		row(2, "وافل", "Waffle", 80, "Sweets"),
		row(3, "شيء", "Mystery", 10, "Specials"),
		row(4, "لاتيه", "Latte", 50, "Hot Coffee"),
		row(5, "آخر", "Other", 10, "Brunch"),
		row(6, "موهيتو", "Mojito", 40, "Mojitos"),
	})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	var got []string
	for _, it := range items {
		got = append(got, it.NameEN)
	}
	want := "Latte,Mojito,Waffle,Mystery,Other"
	if strings.Join(got, ",") != want {
		t.Fatalf("order = %v, want %s", got, want)
	}
}

func TestConsolidateArabicOnlyNames(t *testing.T) {
	items, _, err := Consolidate([]models.RawRow{
		{Line: 2, NameAR: "شاي", Price: 10, CategoryAR: "شاي"},
		{Line: 3, NameAR: "شاي كبير", Price: 15, CategoryAR: "شاي"},
	})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(items) != 1 || items[0].Category != "شاي" || len(items[0].SizeOptions) != 2 {
		t.Fatalf("unexpected arabic grouping: %+v", items)
	}
}

func TestConsolidateDeterministicIDs(t *testing.T) {
	rows := []models.RawRow{row(2, "لاتيه", "Latte", 50, "Hot Coffee")}
	a, _, _ := Consolidate(rows)
	b, _, _ := Consolidate(rows)
	if a[0].ID != b[0].ID {
		t.Fatalf("ids differ across runs: %s vs %s", a[0].ID, b[0].ID)
	}
	if !strings.HasPrefix(a[0].ID, "item_") {
		t.Fatalf("unexpected id %s", a[0].ID)
	}
	if ItemID("Hot Coffee", "latte") == ItemID("Ice Coffee", "latte") {
		t.Fatalf("category must be part of the id")
	}
}

func TestConsolidateRejectsInvalidRow(t *testing.T) {
	_, _, err := Consolidate([]models.RawRow{
		row(2, "لاتيه", "Latte", 50, "Hot Coffee"),
		{Line: 9, Price: -1},
	})
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("expected error naming row 1, got %v", err)
	}
}

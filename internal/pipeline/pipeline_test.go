package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"menuhub/internal/artifact"
	"menuhub/pkg/models"
)

const menuCSV = `Table 1,,,,,,
قهوة لاتيه,50,Latte,Latte,قهوة,Hot Coffee,
قهوة لاتيه كبير,65,Latte Büyük,Latte Large,قهوة,Hot Coffee,
موهيتو,45,Mojito,Mojito,موهيتو,Mojitos,
موهيتو ريد بول,55,Mojito Redbull,Mojito Redbull,موهيتو,Mojitos,
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestStagesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "menu.csv"), menuCSV)
	writeFile(t, filepath.Join(dir, "photos", "latte.jpg"), "jpg")
	writeFile(t, filepath.Join(dir, "photos", "mojito.png"), "png")
	writeFile(t, filepath.Join(dir, "photos", "notes.txt"), "not a photo")

	p := New(nil)
	p.Converter.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	path := func(name string) string { return filepath.Join(dir, name) }

	prep, a, err := p.Parse(path("menu.csv"), path("rows.json"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if prep.Valid != 4 {
		t.Fatalf("expected 4 valid rows, got %+v", prep)
	}
	if a.CompressErr != nil {
		t.Fatalf("compress: %v", a.CompressErr)
	}
	if _, err := os.Stat(a.GzipPath); err != nil {
		t.Fatalf("expected gzip sibling: %v", err)
	}

	st, _, err := p.Consolidate(path("rows.json"), path("consolidated.json"))
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if st.ItemsOut != 2 || st.ItemsWithSizes != 1 || st.ItemsWithDrinkTypes != 1 {
		t.Fatalf("unexpected consolidate stats: %+v", st)
	}

	mrep, _, err := p.MatchPhotos(path("consolidated.json"), path("menu_with_photos.json"), PhotoOptions{
		Dir:    path("photos"),
		Prefix: "/images",
	})
	if err != nil {
		t.Fatalf("match photos: %v", err)
	}
	if mrep.ItemsWithPhotos != 2 || len(mrep.UnusedPhotos) != 0 {
		t.Fatalf("unexpected match report: %+v", mrep)
	}

	ost, _, err := p.Optimize(path("menu_with_photos.json"), path("optimized_menu.json"))
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if ost.Categories != 2 || ost.Items != 2 {
		t.Fatalf("unexpected optimize stats: %+v", ost)
	}

	crep, _, err := p.Convert(path("optimized_menu.json"), path("menu.json"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if crep.Items != 3 || crep.DrinkItems != 1 || crep.ItemsWithVariants != 1 {
		t.Fatalf("unexpected convert report: %+v", crep)
	}

	sc, err := p.CheckSizes(path("consolidated.json"), path("menu.json"))
	if err != nil {
		t.Fatalf("check sizes: %v", err)
	}
	if sc.Checked != 1 || len(sc.Mismatched) != 0 {
		t.Fatalf("unexpected size check: %+v", sc)
	}

	var menu models.AppMenu
	if err := artifact.ReadJSON(path("menu.json"), &menu); err != nil {
		t.Fatalf("read menu: %v", err)
	}
	if err := menu.Validate(); err != nil {
		t.Fatalf("menu invalid: %v", err)
	}
	latte := menu.Items[0]
	if latte.Names.EN != "Latte" || latte.Price != 50 {
		t.Fatalf("unexpected latte: %+v", latte)
	}
	if len(latte.Variants) != 1 || latte.Variants[0].Size != models.SizeLarge || latte.Variants[0].Price != 65 {
		t.Fatalf("unexpected latte variants: %+v", latte.Variants)
	}
	if latte.Image == nil || *latte.Image != "/images/latte.jpg" {
		t.Fatalf("unexpected latte image: %v", latte.Image)
	}
	if latte.CreatedAt != "2024-05-01T12:00:00.000Z" {
		t.Fatalf("unexpected timestamp %q", latte.CreatedAt)
	}
	if drink := menu.Items[2]; !strings.HasSuffix(drink.ID, "_drink_"+models.DrinkRedbull) || drink.Price != 55 {
		t.Fatalf("unexpected drink sibling: %+v", drink)
	}
}

func TestMalformedRecordIsFatal(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rows.json")
	out := filepath.Join(dir, "consolidated.json")
	writeFile(t, in, `[{"line":2,"name_ar":"قهوة","price":10},{"line":3,"name_ar":"","name_en":"","price":5}]`)

	_, _, err := New(nil).Consolidate(in, out)
	if err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Fatalf("expected error naming record 1, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no output written, stat err = %v", err)
	}
}

func TestMissingInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := New(nil).Optimize(filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.json")); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestCompressFailureKeepsStageResult(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "menu.csv")
	out := filepath.Join(dir, "rows.json")
	writeFile(t, in, menuCSV)
	// a directory in place of the gzip sibling makes the rename fail
	if err := os.MkdirAll(out+artifact.GzipSuffix+string(os.PathSeparator)+"x", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	rep, a, err := New(nil).Parse(in, out)
	if err != nil {
		t.Fatalf("stage should succeed, got %v", err)
	}
	if a.CompressErr == nil {
		t.Fatal("expected compress error")
	}
	if rep.Valid != 4 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected json artifact: %v", err)
	}
}

package variant

import (
	"testing"

	"menuhub/pkg/models"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"english size", "Latte Large", "Latte"},
		{"arabic size", "قهوة لاتيه كبير", "قهوة لاتيه"},
		{"turkish size", "Latte Büyük", "Latte"},
		{"case insensitive", "Latte MEDIUM", "Latte"},
		{"multiple qualifiers", "Mojito Red Bull Large", "Mojito"},
		{"arabic drink and size", "موهيتو ريد بول كبير", "موهيتو"},
		{"preparation", "Lemonade Mix", "Lemonade"},
		{"no qualifier", "Spanish Latte", "Spanish Latte"},
		{"qualifier inside word", "Largest Cake", "Largest Cake"},
		{"never empty", "Large", "Large"},
		{"whole name is qualifier phrase", "Red Bull", "Red Bull"},
		{"surrounding spaces", "  Latte  ", "Latte"},
		{"leading qualifier kept", "Soda Water", "Soda Water"},
		{"turkish upper case", "Limonata KARIŞIK", "Limonata"},
		{"turkish upper size", "LATTE BÜYÜK", "LATTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.in); got != tt.want {
				t.Fatalf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	for _, in := range []string{"Latte Large", "Mojito 7up", "قهوة لاتيه كبير", "Iced Mocha"} {
		once := Canonical(in)
		if twice := Canonical(once); twice != once {
			t.Fatalf("Canonical not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Classification
	}{
		{"Latte", Classification{"regular", "regular", "regular"}},
		{"Latte Large", Classification{"large", "regular", "regular"}},
		{"لاتيه وسط", Classification{"medium", "regular", "regular"}},
		{"Mojito Red Bull Large", Classification{"large", "redbull", "regular"}},
		{"Mojito Redbull", Classification{"regular", "redbull", "regular"}},
		{"موهيتو سفن", Classification{"regular", "7up", "regular"}},
		{"Lemonade Soda Bubbles", Classification{"regular", "soda", "bubbles"}},
		{"Ice Cream Mix", Classification{"regular", "regular", "mix"}},
		{"Orta Latte", Classification{"medium", "regular", "regular"}},
		{"Limonata Karışık", Classification{"regular", "regular", "mix"}},
		{"Limonata KARIŞIK", Classification{"regular", "regular", "mix"}},
	}

	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Fatalf("Classify(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyFirstEntryWins(t *testing.T) {
	// وسط precedes large in the size vocabulary
	if got := Classify("Latte Large وسط").Size; got != "medium" {
		t.Fatalf("expected medium, got %q", got)
	}
}

func TestFoldTurkishI(t *testing.T) {
	for _, in := range []string{"KARIŞIK", "karışık", "Karışık", "KARİŞİK"} {
		if got := Fold(in); got != "karişik" {
			t.Fatalf("Fold(%q) = %q", in, got)
		}
	}
	if Key("Limonata KARIŞIK") != Key("limonata karışık") {
		t.Fatal("keys must not depend on Turkish case")
	}
}

func TestKey(t *testing.T) {
	if got := Key("  Hot-Chocolate  (Large) "); got != "hot chocolate large" {
		t.Fatalf("unexpected key %q", got)
	}
}

// values lists the buckets of a facet in vocabulary order, "regular" first.
func values(f Facet) []string {
	out := []string{models.Regular}
	for _, e := range vocabFor(f) {
		out = appendIfMissing(out, e.value)
	}
	return out
}

func appendIfMissing(slice []string, v string) []string {
	for _, x := range slice {
		if x == v {
			return slice
		}
	}
	return append(slice, v)
}

func TestSizeVocabularyOrder(t *testing.T) {
	got := values(FacetSize)
	want := []string{"regular", "medium", "large"}
	if len(got) != len(want) {
		t.Fatalf("values(size) = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("values(size) = %v, want %v", got, want)
		}
	}
}

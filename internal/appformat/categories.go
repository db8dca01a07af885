package appformat

import (
	"regexp"
	"strings"

	"menuhub/pkg/models"
)

var categoryAR = map[string]string{
	"Hot Coffee":     "قهوة ساخنة",
	"Ice Coffee":     "قهوة باردة",
	"Cold drinks":    "مشروبات باردة",
	"Blended Coffee": "قهوة مخفوقة",
	"Matcha":         "ماتشا",
	"Flavored tea":   "شاي منكه",
	"Fresh juices":   "عصائر طازجة",
	"Milkshakes":     "ميلك شيك",
	"Mojitos":        "موهيتو",
	"Smoothies":      "سموزي",
	"Signature":      "مشروبات مميزة",
	"Sweets":         "حلويات",
	"Patisserie":     "معجنات",
	"Ice Cream":      "آيس كريم",
}

var categoryTR = map[string]string{
	"Hot Coffee":     "Sıcak Kahve",
	"Ice Coffee":     "Soğuk Kahve",
	"Cold drinks":    "Soğuk İçecekler",
	"Blended Coffee": "Karışık Kahve",
	"Matcha":         "Matcha",
	"Flavored tea":   "Aromalı Çay",
	"Fresh juices":   "Taze Meyve Suları",
	"Milkshakes":     "Milkshake",
	"Mojitos":        "Mojito",
	"Smoothies":      "Smoothie",
	"Signature":      "Özel İçecekler",
	"Sweets":         "Tatlılar",
	"Patisserie":     "Hamur İşleri",
	"Ice Cream":      "Dondurma",
}

var whitespace = regexp.MustCompile(`\s+`)

// CategoryID is "cat_" plus the lower-cased name with whitespace runs replaced by "_".
func CategoryID(name string) string {
	return "cat_" + whitespace.ReplaceAllString(strings.ToLower(name), "_")
}

// CategoryNames translates an English category name. Unknown names are
// returned unchanged in every language and reported as not found.
func CategoryNames(name string) (models.LocalizedNames, bool) {
	ar, okAR := categoryAR[name]
	tr, okTR := categoryTR[name]
	if !okAR {
		ar = name
	}
	if !okTR {
		tr = name
	}
	return models.LocalizedNames{AR: ar, TR: tr, EN: name}, okAR && okTR
}

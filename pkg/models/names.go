package models

import "strings"

// LocalizedNames holds the three menu languages side by side.
type LocalizedNames struct {
	AR string `json:"ar"`
	TR string `json:"tr"`
	EN string `json:"en"`
}

// Primary returns the first non-empty name, English first.
func (n LocalizedNames) Primary() string {
	for _, s := range []string{n.EN, n.AR, n.TR} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func (n LocalizedNames) IsZero() bool {
	return n.Primary() == ""
}

package codes

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var regionNames = display.Regions(language.English)

// IsAlpha2 reports whether s is exactly two ASCII letters.
func IsAlpha2(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// userAssigned reports whether an upper-case alpha-2 code is in one of the
// ISO 3166-1 user-assigned ranges: AA, QM-QZ, XA-XZ and ZZ.
func userAssigned(code string) bool {
	switch {
	case code == "AA", code == "ZZ":
		return true
	case code[0] == 'Q':
		return code[1] >= 'M'
	default:
		return code[0] == 'X'
	}
}

// regionCountry resolves an alpha-2 code against the CLDR region data.
// Groupings such as "EU", user-assigned codes such as "XK" and codes that
// CLDR maps to another region are rejected. Tables can still list
// user-assigned codes as countries.
func regionCountry(code string) (Country, bool) {
	if !IsAlpha2(code) {
		return Country{}, false
	}
	upper := strings.ToUpper(code)
	if userAssigned(upper) {
		return Country{}, false
	}
	r, err := language.ParseRegion(upper)
	if err != nil || !r.IsCountry() || r.String() != upper {
		return Country{}, false
	}
	return Country{Code: upper, Name: regionNames.Name(r)}, true
}

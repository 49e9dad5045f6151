// Package codes resolves ISO 3166-1 country codes and ISO 3166-2 subdivision
// codes for the geofeed fields.
//
// Countries are resolved from the CLDR region data shipped with
// golang.org/x/text. Subdivisions come from an embedded YAML table that can be
// extended at runtime with Table.LoadYAML. Any Lookup can be wrapped in an LRU
// cache with NewCached.
package codes

import "errors"

// ErrUnknownCode is returned when a code does not resolve.
var ErrUnknownCode = errors.New("unknown code")

// Lookup resolves country and subdivision codes. Lookups are
// case-insensitive and return canonical upper-case codes.
type Lookup interface {
	// Country resolves an ISO 3166-1 alpha-2 code.
	Country(code string) (Country, bool)

	// Subdivision resolves an ISO 3166-2 code such as "AT-1".
	Subdivision(code string) (Subdivision, bool)
}

// Country is an assigned ISO 3166-1 country.
type Country struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// String returns the country code.
func (c Country) String() string { return c.Code }

// Subdivision is an ISO 3166-2 subdivision.
type Subdivision struct {
	Code    string `yaml:"code" json:"code"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Country string `yaml:"country" json:"country"`
}

// String returns the subdivision code.
func (s Subdivision) String() string { return s.Code }

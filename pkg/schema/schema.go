// Package schema provides the built-in geofeed dialects and registers them:
//
//   - draft02: network, country, subdivision, city, zipcode
//   - draft02-allocationsize: draft02 plus an allocation_size column
//   - final: ip_prefix, alpha2code, region, city, postal_code (RFC 8805)
//
// Importing the package is enough to make the dialects available by name.
package schema

import (
	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/registry"
	"github.com/geofeed/validator/pkg/result"
	"github.com/geofeed/validator/pkg/validator"
)

// Registered schema names.
const (
	NameDraft02               = "draft02"
	NameDraft02AllocationSize = "draft02-allocationsize"
	NameFinal                 = "final"

	// NameDefault is used when no schema is selected.
	NameDefault = NameFinal
)

var (
	draft02 = &validator.Schema{
		Name:        NameDraft02,
		Description: "self-published IP geolocation feeds, draft 02",
		Fields:      draft02Fields,
	}

	draft02AllocationSize = &validator.Schema{
		Name:        NameDraft02AllocationSize,
		Description: "draft 02 with a default allocation size per network",
		Fields: func(l codes.Lookup) []*field.Field {
			return append(draft02Fields(l), field.AllocationSize())
		},
		Rules: []validator.Rule{
			{Name: "allocation-size", Apply: AllocationSizeRule},
		},
	}

	final = &validator.Schema{
		Name:        NameFinal,
		Description: "RFC 8805 geofeeds",
		Fields: func(l codes.Lookup) []*field.Field {
			return []*field.Field{
				field.IPPrefix(),
				field.Alpha2Code(l),
				field.Region(l),
				field.City(),
				field.PostalCode(),
			}
		},
		// Trailing fields are optional in RFC 8805.
		MissingKind: result.KindWarning,
	}
)

func init() {
	registry.MustRegister(draft02)
	registry.MustRegister(draft02AllocationSize)
	registry.MustRegister(final)
}

func draft02Fields(l codes.Lookup) []*field.Field {
	return []*field.Field{
		field.Network(),
		field.Country(l),
		field.Subdivision(l),
		field.City(),
		field.ZipCode(),
	}
}

// Draft02 returns the draft02 schema.
func Draft02() *validator.Schema { return draft02 }

// Draft02AllocationSize returns the draft02-allocationsize schema.
func Draft02AllocationSize() *validator.Schema { return draft02AllocationSize }

// Final returns the final schema.
func Final() *validator.Schema { return final }

package validator

import (
	"fmt"

	"inet.af/netaddr"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
)

// Messages of the common rules.
const (
	MsgSubdivisionMismatch       = "Subdivision not a subdivison of given country."
	MsgSubdivisionWithoutCountry = "Subdivision specified, but country missing/invalid."
	MsgCityWithoutCountry        = "City specified, but country missing/invalid."
	MsgPostalWithoutCountry      = "Zipcode specified, but country missing/invalid."
)

// CommonRules returns the rules applied to every schema, in order.
func CommonRules() []Rule {
	return []Rule{
		{Name: "duplicate-networks", Apply: DuplicateNetworks},
		{Name: "geo-hierarchy", Apply: GeoHierarchy},
	}
}

// DuplicateNetworks reports every pair of records sharing a network. Both
// records of a pair get an error naming the other one.
func DuplicateNetworks(b *result.Builder, recordName string) {
	seen := make(map[string][]*result.RecordBuilder)

	for _, rb := range b.Records() {
		fr := rb.FieldByRole(field.RoleNetwork)
		if fr == nil {
			continue
		}
		p, ok := fr.Value.(netaddr.IPPrefix)
		if !ok {
			continue
		}

		key := p.Masked().String()
		for _, prev := range seen[key] {
			rb.AddFieldErrors(fr.Field, fmt.Sprintf("Duplicate of %s #%d", recordName, prev.No()))
			prev.AddFieldErrors(fr.Field, fmt.Sprintf("Duplicate of %s #%d", recordName, rb.No()))
		}
		seen[key] = append(seen[key], rb)
	}
}

// GeoHierarchy checks that subdivision, city and postal code are only given
// together with a valid country, and that the subdivision belongs to it.
func GeoHierarchy(b *result.Builder, _ string) {
	for _, rb := range b.Records() {
		if rb.Ignored() {
			continue
		}

		var country codes.Country
		hasCountry := false
		if fr := rb.FieldByRole(field.RoleCountry); fr != nil {
			country, hasCountry = fr.Value.(codes.Country)
		}

		if fr := rb.FieldByRole(field.RoleSubdivision); fr != nil {
			if sub, ok := fr.Value.(codes.Subdivision); ok {
				if hasCountry && sub.Country != country.Code {
					rb.AddFieldErrors(fr.Field, MsgSubdivisionMismatch)
				} else if !hasCountry {
					rb.AddFieldErrors(fr.Field, MsgSubdivisionWithoutCountry)
				}
			}
		}

		if hasCountry {
			continue
		}
		if fr := rb.FieldByRole(field.RoleCity); fr != nil && nonEmpty(fr.Value) {
			rb.AddFieldErrors(fr.Field, MsgCityWithoutCountry)
		}
		if fr := rb.FieldByRole(field.RolePostal); fr != nil && nonEmpty(fr.Value) {
			rb.AddFieldErrors(fr.Field, MsgPostalWithoutCountry)
		}
	}
}

func nonEmpty(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return s != ""
	default:
		return true
	}
}

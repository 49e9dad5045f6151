package field

import (
	"fmt"

	"github.com/geofeed/validator/pkg/codes"
)

func parseCountry(l codes.Lookup) Parser {
	return func(raw string) (any, error) {
		if raw == "" {
			return nil, nil
		}
		c, ok := l.Country(raw)
		if !ok {
			return nil, fmt.Errorf("%w: country %q", codes.ErrUnknownCode, raw)
		}
		return c, nil
	}
}

func parseSubdivision(l codes.Lookup) Parser {
	return func(raw string) (any, error) {
		if raw == "" {
			return nil, nil
		}
		s, ok := l.Subdivision(raw)
		if !ok {
			return nil, fmt.Errorf("%w: subdivision %q", codes.ErrUnknownCode, raw)
		}
		return s, nil
	}
}

func formatCode(v any) string {
	switch c := v.(type) {
	case codes.Country:
		return c.Code
	case codes.Subdivision:
		return c.Code
	default:
		return fmt.Sprint(v)
	}
}

// Country returns the draft schema's country field.
func Country(l codes.Lookup) *Field {
	parse := parseCountry(l)
	return MustNew(Definition{
		Name:      "country",
		ErrorText: "Not a valid ISO3166-1 country code",
		Role:      RoleCountry,
		Errors:    ParseCheck(parse),
		Parse:     parse,
		Format:    formatCode,
	})
}

// Alpha2Code returns the final schema's alpha2code field. Malformed codes
// are errors; well-formed codes that are not assigned are warnings.
func Alpha2Code(l codes.Lookup) *Field {
	parse := parseCountry(l)
	return MustNew(Definition{
		Name:        "alpha2code",
		ErrorText:   "Not a valid ISO3166-1 alpha-2 code",
		WarningText: "Not an assigned ISO3316-1 alpha-2 code",
		Role:        RoleCountry,
		Errors:      FormatCheck(codes.IsAlpha2),
		Warnings:    When(codes.IsAlpha2, ParseCheck(parse)),
		Parse:       parse,
		Format:      formatCode,
	})
}

// Subdivision returns the draft schema's subdivision field.
func Subdivision(l codes.Lookup) *Field {
	return subdivision("subdivision", l)
}

// Region returns the final schema's region field.
func Region(l codes.Lookup) *Field {
	return subdivision("region", l)
}

func subdivision(name string, l codes.Lookup) *Field {
	parse := parseSubdivision(l)
	return MustNew(Definition{
		Name:      name,
		ErrorText: "Not a valid ISO3166-2 subdivision code",
		Role:      RoleSubdivision,
		Errors:    ParseCheck(parse),
		Parse:     parse,
		Format:    formatCode,
	})
}

package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
	"github.com/geofeed/validator/pkg/validator"
)

// ErrSchemaMismatch is returned by Decode when the report was produced with
// a different schema.
var ErrSchemaMismatch = errors.New("report: schema mismatch")

// EncodeJSON writes r as indented JSON.
func EncodeJSON(w io.Writer, r *Report) error { return encodeJSON(w, r) }

// EncodeAllJSON writes rs as an indented JSON array.
func EncodeAllJSON(w io.Writer, rs []*Report) error { return encodeJSON(w, rs) }

// EncodeYAML writes r as YAML.
func EncodeYAML(w io.Writer, r *Report) error { return encodeYAML(w, r) }

// EncodeAllYAML writes rs as a YAML sequence.
func EncodeAllYAML(w io.Writer, rs []*Report) error { return encodeYAML(w, rs) }

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Parse reads a report in JSON or YAML.
func Parse(data []byte) (*Report, error) {
	var r Report
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("report: decode json: %w", err)
		}
		return &r, nil
	}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: decode yaml: %w", err)
	}
	return &r, nil
}

// Decode reads a report and rebuilds its ValidationResult against s, which
// must be the schema the report was made with. Values are restored by
// parsing each value string of a present field with the schema field of
// the same name.
func Decode(data []byte, s *validator.Schema) (*result.ValidationResult, error) {
	return DecodeWithLookup(data, s, codes.Default())
}

// DecodeWithLookup is like Decode with an explicit code lookup.
func DecodeWithLookup(data []byte, s *validator.Schema, l codes.Lookup) (*result.ValidationResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if r.Schema != "" && r.Schema != s.Name {
		return nil, fmt.Errorf("%w: report has %q, want %q", ErrSchemaMismatch, r.Schema, s.Name)
	}
	return r.Restore(s.Fields(l)), nil
}

// Restore rebuilds the ValidationResult of r with the given fields. Field
// results naming no field of the list keep a nil Field and value.
func (r *Report) Restore(fields []*field.Field) *result.ValidationResult {
	byName := make(map[string]*field.Field, len(fields))
	for _, f := range fields {
		byName[f.Name()] = f
	}

	parts := make([]result.RecordParts, len(r.Records))
	for i, rec := range r.Records {
		p := result.RecordParts{
			No:          rec.No,
			Raw:         rec.Raw,
			Ignored:     rec.Ignored,
			Extra:       rec.Extra,
			ExtraOffset: rec.ExtraOffset,
		}
		for _, fr := range rec.Fields {
			out := result.FieldResult{
				Name:        fr.Name,
				Field:       byName[fr.Name],
				Raw:         fr.Raw,
				Present:     fr.Present,
				ValueString: fr.ValueString,
				Errors:      fr.Errors,
				Warnings:    fr.Warnings,
			}
			if out.Field != nil && fr.Present {
				if v, err := out.Field.Parse(fr.ValueString); err == nil {
					out.Value = v
				}
			}
			p.Fields = append(p.Fields, out)
		}
		parts[i] = p
	}
	return result.Restore(fields, r.StoresRaw, parts)
}

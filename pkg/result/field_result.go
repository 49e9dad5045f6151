// Package result holds the outcome of validating a geofeed.
//
// Results are built in two stages. While a feed is being validated, a Builder
// collects one RecordBuilder per record; rules running after the per-field
// pass append diagnostics to those builders. Finalize then freezes everything
// into an immutable ValidationResult.
package result

import (
	"slices"

	"github.com/geofeed/validator/pkg/field"
)

// Kind is the severity of a diagnostic.
type Kind string

// Diagnostic kinds.
const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// MissingText is reported for schema fields absent from a record.
const MissingText = "Field is missing."

// FieldResult is the outcome of one field of one record.
type FieldResult struct {
	Name string

	// Field is nil for diagnostics attached to a name outside the schema.
	Field *field.Field

	// Value is the parsed value, nil when absent or unparsable.
	Value any

	// Raw is the input text; Present is false when the record did not
	// carry the field at all.
	Raw     string
	Present bool

	// ValueString is the canonical form of Raw.
	ValueString string

	Errors   []string
	Warnings []string
}

// NewFieldResult validates raw against f.
func NewFieldResult(f *field.Field, raw string) (*FieldResult, error) {
	out, err := f.Validate(raw)
	if err != nil {
		return nil, err
	}
	return &FieldResult{
		Name:        f.Name(),
		Field:       f,
		Value:       out.Value,
		Raw:         raw,
		Present:     true,
		ValueString: f.Format(out.Value),
		Errors:      out.Errors,
		Warnings:    out.Warnings,
	}, nil
}

// missingFieldResult reports a schema field absent from a record.
func missingFieldResult(f *field.Field, kind Kind) *FieldResult {
	fr := &FieldResult{Name: f.Name(), Field: f}
	fr.add(kind, MissingText)
	return fr
}

func (fr *FieldResult) add(kind Kind, texts ...string) {
	switch kind {
	case KindWarning:
		fr.Warnings = append(fr.Warnings, texts...)
	default:
		fr.Errors = append(fr.Errors, texts...)
	}
}

// HasErrors returns true if the field has at least one error.
func (fr *FieldResult) HasErrors() bool { return len(fr.Errors) > 0 }

// HasWarnings returns true if the field has at least one warning.
func (fr *FieldResult) HasWarnings() bool { return len(fr.Warnings) > 0 }

func (fr *FieldResult) clone() FieldResult {
	c := *fr
	c.Errors = slices.Clone(fr.Errors)
	c.Warnings = slices.Clone(fr.Warnings)
	return c
}

// Package validator drives the validation of a geofeed: it reads records,
// validates every field, then applies the cross-record rules.
//
// A Schema describes one dialect: its fields, how records are read and any
// rules beyond the common ones. Schemas are registered by name in the
// registry package; the schema package provides the built-in dialects.
package validator

import (
	"errors"
	"fmt"
	"iter"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
)

// ErrInvalidSchema is returned for schemas that cannot validate anything.
var ErrInvalidSchema = errors.New("invalid schema")

// DefaultRecordName labels records in diagnostics when the reader does not
// provide a more specific name.
const DefaultRecordName = "record"

// RecordReader turns a buffered feed into records. Each record is paired
// with its raw text. The sequence must be finite.
type RecordReader interface {
	// RecordName labels records in diagnostics, e.g. "line".
	RecordName() string

	// Records yields the feed's records in order.
	Records(data []byte, fields []*field.Field) iter.Seq2[result.Values, string]
}

// ReaderFunc adapts a function to a RecordReader named DefaultRecordName.
type ReaderFunc func(data []byte, fields []*field.Field) iter.Seq2[result.Values, string]

// RecordName implements RecordReader.
func (f ReaderFunc) RecordName() string { return DefaultRecordName }

// Records implements RecordReader.
func (f ReaderFunc) Records(data []byte, fields []*field.Field) iter.Seq2[result.Values, string] {
	return f(data, fields)
}

// Rule is a check over the complete set of records.
type Rule struct {
	Name string

	// Apply appends diagnostics to the records of b. recordName labels
	// records in messages.
	Apply func(b *result.Builder, recordName string)
}

// Schema describes a geofeed dialect.
type Schema struct {
	// Name identifies the schema in the registry.
	Name string

	// Description is a one-line summary for listings.
	Description string

	// Fields returns the ordered field list. It is called once per
	// validation with the code lookup in use.
	Fields func(l codes.Lookup) []*field.Field

	// Reader defaults to CSVReader.
	Reader RecordReader

	// Rules run after the common rules.
	Rules []Rule

	// MissingKind is the severity of "Field is missing.". Defaults to error.
	MissingKind result.Kind
}

// Validate checks that the schema is usable.
func (s *Schema) Validate() error {
	switch {
	case s == nil:
		return ErrInvalidSchema
	case s.Name == "":
		return fmt.Errorf("%w: schema has no name", ErrInvalidSchema)
	case s.Fields == nil:
		return fmt.Errorf("%w: schema %q has no fields", ErrInvalidSchema, s.Name)
	}
	for _, r := range s.Rules {
		if r.Apply == nil {
			return fmt.Errorf("%w: rule %q of schema %q has no Apply", ErrInvalidSchema, r.Name, s.Name)
		}
	}
	return nil
}

// RecordName returns the label the schema's reader gives records.
func (s *Schema) RecordName() string { return s.reader().RecordName() }

func (s *Schema) reader() RecordReader {
	if s.Reader == nil {
		return CSVReader{}
	}
	return s.Reader
}

func (s *Schema) missingKind() result.Kind {
	if s.MissingKind == "" {
		return result.KindError
	}
	return s.MissingKind
}

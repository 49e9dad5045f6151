// Package report turns validation results into serializable reports.
//
// A Report carries the textual form of every field result: its canonical
// value string, the raw input and its diagnostics. Parsed values are not
// serialized; Decode restores them by parsing the value strings again with
// the schema's fields.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/geofeed/validator/pkg/result"
)

// Report is the serializable form of a ValidationResult.
type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	Schema      string    `json:"schema" yaml:"schema"`
	RecordName  string    `json:"record_name" yaml:"record_name"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Valid    bool `json:"valid" yaml:"valid"`
	Errors   int  `json:"errors" yaml:"errors"`
	Warnings int  `json:"warnings" yaml:"warnings"`

	StoresRaw bool     `json:"stores_raw" yaml:"stores_raw"`
	Fields    []string `json:"fields" yaml:"fields"`
	Records   []Record `json:"records" yaml:"records"`
}

// Record is one record of a report.
type Record struct {
	No          int      `json:"no" yaml:"no"`
	Raw         string   `json:"raw,omitempty" yaml:"raw,omitempty"`
	Ignored     bool     `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	Fields      []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Extra       []string `json:"extra,omitempty" yaml:"extra,omitempty"`
	ExtraOffset int      `json:"extra_offset,omitempty" yaml:"extra_offset,omitempty"`
}

// Field is one field result of a record.
type Field struct {
	Name        string   `json:"name" yaml:"name"`
	ValueString string   `json:"value_string" yaml:"value_string"`
	Raw         string   `json:"raw" yaml:"raw"`
	Present     bool     `json:"present" yaml:"present"`
	Errors      []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasErrors reports whether the record has errors.
func (r Record) HasErrors() bool {
	for _, f := range r.Fields {
		if len(f.Errors) > 0 {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the record has warnings.
func (r Record) HasWarnings() bool {
	for _, f := range r.Fields {
		if len(f.Warnings) > 0 {
			return true
		}
	}
	return false
}

// DefaultRecordName labels records when the caller sets none.
const DefaultRecordName = "line"

// New builds a report for res. Valid is true if res has no errors.
func New(res *result.ValidationResult, schemaName string) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		Schema:      schemaName,
		RecordName:  DefaultRecordName,
		GeneratedAt: time.Now().UTC(),
		Valid:       res.IsValid(true),
		Errors:      res.ErrorCount(),
		Warnings:    res.WarningCount(),
		StoresRaw:   res.StoresRaw(),
	}

	for _, f := range res.Fields() {
		r.Fields = append(r.Fields, f.Name())
	}

	r.Records = make([]Record, 0, res.Len())
	for _, rec := range res.Records() {
		out := Record{
			No:          rec.No(),
			Raw:         rec.Raw(),
			Ignored:     rec.Ignored(),
			Extra:       rec.Extra(),
			ExtraOffset: rec.ExtraOffset(),
		}
		if len(out.Extra) == 0 {
			out.Extra = nil
			out.ExtraOffset = 0
		}
		for _, fr := range rec.Fields() {
			out.Fields = append(out.Fields, Field{
				Name:        fr.Name,
				ValueString: fr.ValueString,
				Raw:         fr.Raw,
				Present:     fr.Present,
				Errors:      fr.Errors,
				Warnings:    fr.Warnings,
			})
		}
		r.Records = append(r.Records, out)
	}
	return r
}

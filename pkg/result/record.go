package result

import (
	"slices"

	"github.com/geofeed/validator/pkg/field"
)

// Values is one parsed input record: raw values by field name, plus any
// values beyond the schema's last field.
type Values struct {
	Fields map[string]string
	Extra  []string
}

// RecordBuilder accumulates the diagnostics of one record.
type RecordBuilder struct {
	no          int
	raw         string
	ignored     bool
	fields      []*FieldResult
	extra       []string
	extraOffset int
}

func newRecordBuilder(no int, raw string) *RecordBuilder {
	return &RecordBuilder{no: no, raw: raw}
}

// validate runs the per-field pass. A record without values is ignored.
func (b *RecordBuilder) validate(fields []*field.Field, v Values, missing Kind) error {
	if len(v.Fields) == 0 {
		b.ignored = true
		return nil
	}

	b.fields = make([]*FieldResult, 0, len(fields))
	for _, f := range fields {
		raw, ok := v.Fields[f.Name()]
		if !ok {
			b.fields = append(b.fields, missingFieldResult(f, missing))
			continue
		}
		fr, err := NewFieldResult(f, raw)
		if err != nil {
			return err
		}
		b.fields = append(b.fields, fr)
	}

	if len(v.Extra) > 0 {
		b.extra = slices.Clone(v.Extra)
		b.extraOffset = len(v.Fields)
	}
	return nil
}

// No returns the 0-based record number.
func (b *RecordBuilder) No() int { return b.no }

// Ignored returns true for blank and comment records.
func (b *RecordBuilder) Ignored() bool { return b.ignored }

// FieldResult returns the result for a field, or nil.
func (b *RecordBuilder) FieldResult(ref field.Ref) *FieldResult {
	name := ref.Name()
	for _, fr := range b.fields {
		if fr.Name == name {
			return fr
		}
	}
	return nil
}

// FieldValue returns the parsed value of a field, or nil.
func (b *RecordBuilder) FieldValue(ref field.Ref) any {
	if fr := b.FieldResult(ref); fr != nil {
		return fr.Value
	}
	return nil
}

// FieldByRole returns the result of the first field with the given role,
// or nil.
func (b *RecordBuilder) FieldByRole(role field.Role) *FieldResult {
	for _, fr := range b.fields {
		if fr.Field != nil && fr.Field.Role() == role {
			return fr
		}
	}
	return nil
}

// Append adds diagnostics to a field. If the record has no result for the
// field yet, a placeholder without value or raw text is added.
func (b *RecordBuilder) Append(ref field.Ref, kind Kind, texts ...string) {
	fr := b.FieldResult(ref)
	if fr == nil {
		fr = &FieldResult{Name: ref.Name()}
		if f, ok := ref.(*field.Field); ok {
			fr.Field = f
		}
		b.fields = append(b.fields, fr)
	}
	fr.add(kind, texts...)
}

// AddFieldErrors appends errors to a field.
func (b *RecordBuilder) AddFieldErrors(ref field.Ref, texts ...string) {
	b.Append(ref, KindError, texts...)
}

// AddFieldWarnings appends warnings to a field.
func (b *RecordBuilder) AddFieldWarnings(ref field.Ref, texts ...string) {
	b.Append(ref, KindWarning, texts...)
}

// ErrorCount returns the number of errors over all fields.
func (b *RecordBuilder) ErrorCount() int {
	n := 0
	for _, fr := range b.fields {
		n += len(fr.Errors)
	}
	return n
}

// WarningCount returns the number of warnings over all fields.
func (b *RecordBuilder) WarningCount() int {
	n := 0
	for _, fr := range b.fields {
		n += len(fr.Warnings)
	}
	return n
}

func (b *RecordBuilder) finalize() *Record {
	r := &Record{
		no:          b.no,
		raw:         b.raw,
		ignored:     b.ignored,
		extra:       slices.Clone(b.extra),
		extraOffset: b.extraOffset,
		errors:      b.ErrorCount(),
		warnings:    b.WarningCount(),
	}
	if len(b.fields) > 0 {
		r.fields = make([]FieldResult, len(b.fields))
		for i, fr := range b.fields {
			r.fields[i] = fr.clone()
		}
	}
	return r
}

// Record is the finalized outcome of one record.
type Record struct {
	no          int
	raw         string
	ignored     bool
	fields      []FieldResult
	extra       []string
	extraOffset int
	errors      int
	warnings    int
}

// No returns the 0-based record number.
func (r *Record) No() int { return r.no }

// Raw returns the record text, or "" if raw records are not stored.
func (r *Record) Raw() string { return r.raw }

// Ignored returns true for blank and comment records.
func (r *Record) Ignored() bool { return r.ignored }

// Fields returns the field results in schema order. Diagnostics attached to
// names outside the schema follow the schema fields.
func (r *Record) Fields() []FieldResult {
	out := make([]FieldResult, len(r.fields))
	for i := range r.fields {
		out[i] = r.fields[i].clone()
	}
	return out
}

// FieldResult returns a copy of the result for a field.
func (r *Record) FieldResult(ref field.Ref) (FieldResult, bool) {
	name := ref.Name()
	for i := range r.fields {
		if r.fields[i].Name == name {
			return r.fields[i].clone(), true
		}
	}
	return FieldResult{}, false
}

// FieldValue returns the parsed value of a field, or nil.
func (r *Record) FieldValue(ref field.Ref) any {
	if fr, ok := r.FieldResult(ref); ok {
		return fr.Value
	}
	return nil
}

// Extra returns the values beyond the schema's last field.
func (r *Record) Extra() []string { return slices.Clone(r.extra) }

// ExtraOffset returns the number of schema fields preceding Extra.
func (r *Record) ExtraOffset() int { return r.extraOffset }

// ErrorCount returns the number of errors in the record.
func (r *Record) ErrorCount() int { return r.errors }

// WarningCount returns the number of warnings in the record.
func (r *Record) WarningCount() int { return r.warnings }

// IsValid returns true if the record has no errors, and no warnings unless
// allowWarnings is set.
func (r *Record) IsValid(allowWarnings bool) bool {
	return r.errors == 0 && (allowWarnings || r.warnings == 0)
}

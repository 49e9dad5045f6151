package result

import (
	"errors"
	"slices"

	"github.com/geofeed/validator/pkg/field"
)

// ErrFinalized is returned when records are added to a finalized Builder.
var ErrFinalized = errors.New("result already finalized")

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRawRecords keeps the raw text of every record.
func WithRawRecords(store bool) BuilderOption {
	return func(b *Builder) { b.storeRaw = store }
}

// WithMissingKind sets the severity of "Field is missing." diagnostics.
// The default is KindError.
func WithMissingKind(kind Kind) BuilderOption {
	return func(b *Builder) { b.missing = kind }
}

// Builder collects the records of one feed.
type Builder struct {
	fields    []*field.Field
	storeRaw  bool
	missing   Kind
	records   []*RecordBuilder
	finalized bool
}

// NewBuilder creates a builder over the schema's ordered field list.
func NewBuilder(fields []*field.Field, opts ...BuilderOption) *Builder {
	b := &Builder{
		fields:  slices.Clone(fields),
		missing: KindError,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddRecord numbers, validates and appends a record.
func (b *Builder) AddRecord(v Values, raw string) (*RecordBuilder, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	if !b.storeRaw {
		raw = ""
	}
	rb := newRecordBuilder(len(b.records), raw)
	if err := rb.validate(b.fields, v, b.missing); err != nil {
		return nil, err
	}
	b.records = append(b.records, rb)
	return rb, nil
}

// Fields returns the schema's field list.
func (b *Builder) Fields() []*field.Field { return slices.Clone(b.fields) }

// Records returns the records added so far.
func (b *Builder) Records() []*RecordBuilder { return b.records }

// ErrorCount returns the number of errors over all records.
func (b *Builder) ErrorCount() int {
	n := 0
	for _, r := range b.records {
		n += r.ErrorCount()
	}
	return n
}

// WarningCount returns the number of warnings over all records.
func (b *Builder) WarningCount() int {
	n := 0
	for _, r := range b.records {
		n += r.WarningCount()
	}
	return n
}

// Finalize freezes the builder into a ValidationResult. The builder rejects
// further records afterwards.
func (b *Builder) Finalize() *ValidationResult {
	b.finalized = true
	vr := &ValidationResult{
		fields:   slices.Clone(b.fields),
		storeRaw: b.storeRaw,
		records:  make([]*Record, len(b.records)),
	}
	for i, rb := range b.records {
		r := rb.finalize()
		vr.records[i] = r
		vr.errors += r.errors
		vr.warnings += r.warnings
	}
	return vr
}

// ValidationResult is the immutable outcome of validating a feed.
type ValidationResult struct {
	fields   []*field.Field
	storeRaw bool
	records  []*Record
	errors   int
	warnings int
}

// Fields returns the schema's field list.
func (v *ValidationResult) Fields() []*field.Field { return slices.Clone(v.fields) }

// Records returns all records in input order, ignored ones included.
func (v *ValidationResult) Records() []*Record { return slices.Clone(v.records) }

// Len returns the number of records.
func (v *ValidationResult) Len() int { return len(v.records) }

// Record returns the record with the given number, or nil.
func (v *ValidationResult) Record(no int) *Record {
	if no < 0 || no >= len(v.records) {
		return nil
	}
	return v.records[no]
}

// ErrorCount returns the number of errors over all records.
func (v *ValidationResult) ErrorCount() int { return v.errors }

// WarningCount returns the number of warnings over all records.
func (v *ValidationResult) WarningCount() int { return v.warnings }

// IsValid returns true if the feed has no errors, and no warnings unless
// allowWarnings is set.
func (v *ValidationResult) IsValid(allowWarnings bool) bool {
	return v.errors == 0 && (allowWarnings || v.warnings == 0)
}

// StoresRaw reports whether raw record texts were kept.
func (v *ValidationResult) StoresRaw() bool { return v.storeRaw }

// RawRecords returns the raw text of every record, or nil if raw records
// were not stored.
func (v *ValidationResult) RawRecords() []string {
	if !v.storeRaw {
		return nil
	}
	out := make([]string, len(v.records))
	for i, r := range v.records {
		out[i] = r.raw
	}
	return out
}

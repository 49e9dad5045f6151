package validator

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/logger"
	"github.com/geofeed/validator/pkg/result"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLookup sets the code lookup used by the schema's fields.
// The default is codes.Default().
func WithLookup(l codes.Lookup) Option {
	return func(v *Validator) {
		if l != nil {
			v.lookup = l
		}
	}
}

// WithRawRecords keeps the raw text of every record in the result.
func WithRawRecords(store bool) Option {
	return func(v *Validator) { v.storeRaw = store }
}

// WithLogger sets the logger for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// Validator validates one feed against one schema.
// The result is computed once and cached.
type Validator struct {
	schema   *Schema
	feed     io.Reader
	lookup   codes.Lookup
	storeRaw bool
	logger   zerolog.Logger

	fields []*field.Field
	reader RecordReader

	done   bool
	result *result.ValidationResult
	err    error
}

// New creates a Validator reading the feed from r.
func New(schema *Schema, r io.Reader, opts ...Option) (*Validator, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("schema %s: feed reader is nil", schema.Name)
	}

	v := &Validator{
		schema: schema,
		feed:   r,
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.lookup == nil {
		v.lookup = codes.Default()
	}

	v.fields = schema.Fields(v.lookup)
	if len(v.fields) == 0 {
		return nil, fmt.Errorf("%w: schema %q has no fields", ErrInvalidSchema, schema.Name)
	}
	v.reader = schema.reader()
	return v, nil
}

// Schema returns the schema in use.
func (v *Validator) Schema() *Schema { return v.schema }

// Fields returns the schema's ordered field list.
func (v *Validator) Fields() []*field.Field {
	out := make([]*field.Field, len(v.fields))
	copy(out, v.fields)
	return out
}

// RecordName returns the label used for records in diagnostics.
func (v *Validator) RecordName() string { return v.reader.RecordName() }

// Validate reads the whole feed, validates every record and applies the
// common and schema rules. Later calls return the same result.
// Errors are returned for unreadable feeds and broken field definitions,
// never for invalid feed content.
func (v *Validator) Validate() (*result.ValidationResult, error) {
	if v.done {
		return v.result, v.err
	}
	v.done = true
	v.result, v.err = v.validate()
	return v.result, v.err
}

func (v *Validator) validate() (*result.ValidationResult, error) {
	start := time.Now()

	data, err := io.ReadAll(v.feed)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	b := result.NewBuilder(v.fields,
		result.WithRawRecords(v.storeRaw),
		result.WithMissingKind(v.schema.missingKind()),
	)
	for values, raw := range v.reader.Records(data, v.fields) {
		if _, err := b.AddRecord(values, raw); err != nil {
			return nil, fmt.Errorf("schema %s: %w", v.schema.Name, err)
		}
	}

	name := v.RecordName()
	rules := append(CommonRules(), v.schema.Rules...)
	for _, rule := range rules {
		errsBefore, warnsBefore := b.ErrorCount(), b.WarningCount()
		rule.Apply(b, name)
		v.logger.Debug().
			Str("schema", v.schema.Name).
			Str("rule", rule.Name).
			Int("errors", b.ErrorCount()-errsBefore).
			Int("warnings", b.WarningCount()-warnsBefore).
			Msg("rule applied")
	}

	res := b.Finalize()
	v.logger.Debug().
		Str("schema", v.schema.Name).
		Int("records", res.Len()).
		Int("errors", res.ErrorCount()).
		Int("warnings", res.WarningCount()).
		Dur("took", time.Since(start)).
		Msg("feed validated")
	return res, nil
}

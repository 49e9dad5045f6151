package geofeed

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/registry"
	"github.com/geofeed/validator/pkg/result"
	"github.com/geofeed/validator/pkg/schema"
	"github.com/geofeed/validator/pkg/validator"
)

// Errors returned by New.
var (
	ErrUnknownSchema = errors.New("unknown schema")
	ErrInvalidFeed   = errors.New("invalid feed")
)

type selectorKind uint8

const (
	selectDefault selectorKind = iota
	selectName
	selectSchema
)

// Selector chooses the schema a feed is validated against, either by
// registered name or directly. The zero value selects the default schema.
type Selector struct {
	kind   selectorKind
	name   string
	schema *validator.Schema
}

// ByName selects a registered schema.
func ByName(name string) Selector {
	return Selector{kind: selectName, name: name}
}

// BySchema selects s as is. s does not need to be registered.
func BySchema(s *validator.Schema) Selector {
	return Selector{kind: selectSchema, schema: s}
}

// String returns the selected schema name.
func (s Selector) String() string {
	switch s.kind {
	case selectName:
		return s.name
	case selectSchema:
		if s.schema == nil {
			return "<nil>"
		}
		return s.schema.Name
	default:
		return schema.NameDefault
	}
}

func (s Selector) resolve() (*validator.Schema, error) {
	switch s.kind {
	case selectName:
		found, err := registry.Find(s.name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownSchema, err)
		}
		return found, nil
	case selectSchema:
		if s.schema == nil {
			return nil, fmt.Errorf("%w: nil schema", ErrUnknownSchema)
		}
		if err := s.schema.Validate(); err != nil {
			return nil, err
		}
		return s.schema, nil
	default:
		return ByName(schema.NameDefault).resolve()
	}
}

// Feed is the input of a validation: literal text or a reader.
type Feed struct {
	r io.Reader
}

// FromString reads the feed from s.
func FromString(s string) Feed {
	return Feed{r: strings.NewReader(s)}
}

// FromReader reads the feed from r. The reader is consumed on the first
// call to Validate.
func FromReader(r io.Reader) Feed {
	return Feed{r: r}
}

// GeoFeedValidator validates one feed against one schema. The feed is read
// on the first call to Validate and the result is kept for later calls.
type GeoFeedValidator struct {
	schema *validator.Schema
	feed   io.Reader
	opts   *Options

	inner    *validator.Validator
	initErr  error
	observed bool
}

// New resolves the schema selected by the options and prepares the feed.
// It fails with ErrUnknownSchema or ErrInvalidFeed; it never reads the feed.
func New(feed Feed, opts ...Option) (*GeoFeedValidator, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if feed.r == nil {
		return nil, ErrInvalidFeed
	}
	s, err := o.Schema.resolve()
	if err != nil {
		return nil, err
	}

	o.Logger.Debug().
		Str("selector", o.Schema.String()).
		Str("schema", s.Name).
		Msg("schema resolved")

	return &GeoFeedValidator{
		schema: s,
		feed:   feed.r,
		opts:   o,
	}, nil
}

// build creates the underlying validator once.
func (g *GeoFeedValidator) build() (*validator.Validator, error) {
	if g.inner == nil && g.initErr == nil {
		g.inner, g.initErr = validator.New(g.schema, g.feed,
			validator.WithLookup(g.opts.Lookup),
			validator.WithRawRecords(g.opts.StoreRawRecords),
			validator.WithLogger(g.opts.Logger),
		)
	}
	return g.inner, g.initErr
}

// Schema returns the resolved schema.
func (g *GeoFeedValidator) Schema() *validator.Schema { return g.schema }

// Fields returns the schema's ordered field list, or nil if the schema
// yields no usable fields.
func (g *GeoFeedValidator) Fields() []*field.Field {
	v, err := g.build()
	if err != nil {
		return nil
	}
	return v.Fields()
}

// RecordName returns the label used for records in diagnostics.
func (g *GeoFeedValidator) RecordName() string {
	v, err := g.build()
	if err != nil {
		return validator.DefaultRecordName
	}
	return v.RecordName()
}

// Validate validates the feed. The first call reads the feed; later calls
// return the same result and error.
func (g *GeoFeedValidator) Validate() (*result.ValidationResult, error) {
	v, err := g.build()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := v.Validate()
	if err != nil || g.observed {
		return res, err
	}
	g.observed = true

	g.opts.Metrics.RecordValidation(g.schema.Name, res, time.Since(start))
	g.opts.Logger.Debug().
		Str("schema", g.schema.Name).
		Int("records", res.Len()).
		Int("errors", res.ErrorCount()).
		Int("warnings", res.WarningCount()).
		Bool("valid", res.IsValid(true)).
		Msg("validation finished")
	return res, nil
}

// IsValid validates the feed if necessary and reports whether it has no
// errors, and no warnings unless allowWarnings is set. A feed that cannot be
// read is not valid.
func (g *GeoFeedValidator) IsValid(allowWarnings bool) bool {
	res, err := g.Validate()
	if err != nil {
		return false
	}
	return res.IsValid(allowWarnings)
}

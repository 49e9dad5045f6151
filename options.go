package geofeed

import (
	"github.com/rs/zerolog"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/logger"
)

// Option configures a GeoFeedValidator.
type Option func(*Options)

// Options holds all configuration for a GeoFeedValidator.
type Options struct {
	// Schema selects the dialect. The zero value selects the default schema.
	Schema Selector

	// Lookup resolves country and subdivision codes.
	Lookup codes.Lookup

	// StoreRawRecords keeps the raw text of every record in the result.
	StoreRawRecords bool

	Logger zerolog.Logger

	// Metrics is optional.
	Metrics *Metrics
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Lookup:          codes.Default(),
		StoreRawRecords: true,
		Logger:          logger.Default(),
	}
}

// WithSchema selects the schema.
func WithSchema(s Selector) Option {
	return func(o *Options) {
		o.Schema = s
	}
}

// WithLookup sets the code lookup. A nil lookup keeps the default.
func WithLookup(l codes.Lookup) Option {
	return func(o *Options) {
		if l != nil {
			o.Lookup = l
		}
	}
}

// WithRawRecords enables or disables storing the raw record text.
func WithRawRecords(store bool) Option {
	return func(o *Options) {
		o.StoreRawRecords = store
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics records every validation in m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

package geofeed

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/geofeed/validator/pkg/result"
)

// Metrics tracks validations as Prometheus collectors.
// All methods are safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	validations *prometheus.CounterVec
	records     *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofeed",
			Name:      "validations_total",
			Help:      "Number of validated feeds.",
		}, []string{"schema", "valid"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofeed",
			Name:      "records_total",
			Help:      "Number of validated records, including comments and blank lines.",
		}, []string{"schema"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geofeed",
			Name:      "diagnostics_total",
			Help:      "Number of reported errors and warnings.",
		}, []string{"schema", "severity"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "geofeed",
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating a feed.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"schema"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.validations, m.records, m.diagnostics, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// RecordValidation records a completed validation.
func (m *Metrics) RecordValidation(schema string, res *result.ValidationResult, took time.Duration) {
	if m == nil || res == nil {
		return
	}
	valid := res.IsValid(true)
	m.validations.WithLabelValues(schema, strconv.FormatBool(valid)).Inc()
	m.records.WithLabelValues(schema).Add(float64(res.Len()))
	m.diagnostics.WithLabelValues(schema, string(result.KindError)).Add(float64(res.ErrorCount()))
	m.diagnostics.WithLabelValues(schema, string(result.KindWarning)).Add(float64(res.WarningCount()))
	m.duration.WithLabelValues(schema).Observe(took.Seconds())
}

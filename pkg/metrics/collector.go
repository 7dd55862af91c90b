package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/blueprint"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "blueprint"

// Reload status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Collector records blueprint metrics into its own registry.
type Collector struct {
	registry *prometheus.Registry

	validationsTotal   *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	fieldErrorsTotal   *prometheus.CounterVec
	filtersTotal       *prometheus.CounterVec
	reloadsTotal       *prometheus.CounterVec
	missingTotal       *prometheus.CounterVec
}

type options struct {
	namespace string
	registry  *prometheus.Registry
	buckets   []float64
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithRegistry registers the metrics into reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithDurationBuckets sets the validation duration histogram buckets.
func WithDurationBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// New creates a Collector and registers its metrics.
func New(opts ...Option) *Collector {
	o := &options{
		namespace: DefaultNamespace,
		// tree walks are in-memory: 10µs .. ~160ms
		buckets: prometheus.ExponentialBuckets(0.00001, 4, 9),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: o.registry,
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "validations_total",
				Help:      "Total number of validations by blueprint and outcome",
			},
			[]string{"blueprint", "outcome"},
		),
		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of blueprint validation in seconds",
				Buckets:   o.buckets,
			},
			[]string{"blueprint"},
		),
		fieldErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "field_errors_total",
				Help:      "Total number of fields reported invalid",
			},
			[]string{"blueprint"},
		),
		filtersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "filters_total",
				Help:      "Total number of filter operations",
			},
			[]string{"blueprint"},
		),
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "reloads_total",
				Help:      "Total number of blueprint set reloads by status",
			},
			[]string{"status"},
		),
		missingTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      "missing_translations_total",
				Help:      "Total number of translation lookups without a result by language",
			},
			[]string{"lang"},
		),
	}

	c.registry.MustRegister(
		c.validationsTotal,
		c.validationDuration,
		c.fieldErrorsTotal,
		c.filtersTotal,
		c.reloadsTotal,
		c.missingTotal,
	)
	return c
}

// ObserveValidation records one Check call.
func (c *Collector) ObserveValidation(name string, res blueprint.Result, took time.Duration) {
	if c == nil {
		return
	}
	c.validationsTotal.WithLabelValues(name, res.Outcome.String()).Inc()
	c.validationDuration.WithLabelValues(name).Observe(took.Seconds())
	if res.Outcome == blueprint.OutcomeInvalid {
		c.fieldErrorsTotal.WithLabelValues(name).Add(float64(len(res.Messages)))
	}
}

// ObserveFilter records one Filter call.
func (c *Collector) ObserveFilter(name string) {
	if c == nil {
		return
	}
	c.filtersTotal.WithLabelValues(name).Inc()
}

// ObserveReload records a blueprint store load. Its signature matches
// loader.WithReloadHook.
func (c *Collector) ObserveReload(err error) {
	if c == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	c.reloadsTotal.WithLabelValues(status).Inc()
}

// ObserveMissingTranslation counts a translation key not found for lang.
func (c *Collector) ObserveMissingTranslation(lang, _ string) {
	if c == nil {
		return
	}
	c.missingTotal.WithLabelValues(lang).Inc()
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

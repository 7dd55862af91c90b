// Package metrics exposes Prometheus instrumentation for blueprint
// validation, filtering and blueprint reloads.
//
// Metrics (namespace "blueprint" by default):
//   - blueprint_validations_total{blueprint,outcome}
//   - blueprint_validation_duration_seconds{blueprint}
//   - blueprint_field_errors_total{blueprint}
//   - blueprint_filters_total{blueprint}
//   - blueprint_reloads_total{status}
//
// A nil *Collector is valid and records nothing, so callers can keep
// instrumentation optional without branching:
//
//	collector := metrics.New()
//	store := loader.NewDirectoryStore(dir, loader.WithReloadHook(collector.ObserveReload))
//	r.Handle("/metrics", collector.Handler())
package metrics

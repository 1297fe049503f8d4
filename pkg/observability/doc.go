/*
Package observability turns the coordination layer's lifecycle hooks into
Prometheus metrics and structured log lines.

Combine both with domain.LifecycleHooks.Merge:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
*/
package observability

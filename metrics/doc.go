// Package metrics exposes fit events as Prometheus metrics.
//
// Collector implements ideal.Observer; pass it with ideal.WithObserver and
// register it on any prometheus.Registerer. Metric names are prefixed with
// "oavi_":
//
//	oavi_terms_classified_total{degree, outcome}   outcome = vanishing | order
//	oavi_oracle_iterations                         histogram, per oracle call
//	oavi_oracle_unconverged_total                  calls that hit the budget
//	oavi_oracle_loss                               histogram, per oracle call
//	oavi_inverse_dropped_total{reason}             reason = unstable | cap
//	oavi_degrees_committed_total
//	oavi_border_purged_total
//
// The command line tool writes these in text exposition format after a fit.
package metrics

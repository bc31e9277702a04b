// Package metrics exports provider activity to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	obs, err := metrics.NewObserver(reg)
//	if err != nil {
//	    return err
//	}
//	p, err := wavecx.New("acme", wavecx.WithObserver(obs))
//
// Exported series:
//
//	wavecx_remote_calls_total{operation,outcome}
//	wavecx_remote_call_duration_seconds{operation}
//	wavecx_queued_events_total{event}
//	wavecx_content_presented_total{presentation}
//	wavecx_content_dismissed_total
package metrics

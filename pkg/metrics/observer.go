package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/wavecx/wavecx-go"
	"github.com/wavecx/wavecx-go/pkg/targetedcontent"
)

// Values of the outcome label on remote call counters.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Option configures an Observer.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace replaces the "wavecx" metric prefix.
func WithNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithBuckets sets the latency histogram buckets in seconds.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// Observer implements wavecx.Observer with Prometheus collectors.
type Observer struct {
	calls     *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	queued    *prometheus.CounterVec
	presented *prometheus.CounterVec
	dismissed prometheus.Counter
}

var _ wavecx.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its collectors on reg.
func NewObserver(reg prometheus.Registerer, opts ...Option) (*Observer, error) {
	o := options{
		namespace: "wavecx",
		buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}
	for _, opt := range opts {
		opt(&o)
	}

	obs := &Observer{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "remote_calls_total",
			Help:      "Session initiation and content-delivery calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Latency of remote calls.",
			Buckets:   o.buckets,
		}, []string{"operation"}),
		queued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "queued_events_total",
			Help:      "Events deferred because a session fetch was in flight.",
		}, []string{"event"}),
		presented: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "content_presented_total",
			Help:      "Content items presented, by presentation type.",
		}, []string{"presentation"}),
		dismissed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "content_dismissed_total",
			Help:      "Presented content closed by the user.",
		}),
	}

	for _, c := range []prometheus.Collector{obs.calls, obs.latency, obs.queued, obs.presented, obs.dismissed} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return obs, nil
}

// MustNewObserver is like NewObserver but panics on error.
func MustNewObserver(reg prometheus.Registerer, opts ...Option) *Observer {
	obs, err := NewObserver(reg, opts...)
	if err != nil {
		panic(err)
	}
	return obs
}

// RemoteCall counts a session initiation or gateway call and records its latency.
func (o *Observer) RemoteCall(op wavecx.Operation, took time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	o.calls.WithLabelValues(string(op), outcome).Inc()
	o.latency.WithLabelValues(string(op)).Observe(took.Seconds())
}

// EventQueued counts an event deferred behind an in-flight session fetch.
func (o *Observer) EventQueued(kind wavecx.EventKind) {
	o.queued.WithLabelValues(string(kind)).Inc()
}

// ContentPresented counts content shown to the user by presentation type.
func (o *Observer) ContentPresented(pt targetedcontent.PresentationType) {
	o.presented.WithLabelValues(string(pt)).Inc()
}

// ContentDismissed counts presented content closed by the user.
func (o *Observer) ContentDismissed() {
	o.dismissed.Inc()
}

// Handler serves g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// WriteText writes every metric family of g in the text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

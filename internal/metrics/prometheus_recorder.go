package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration     prom.Histogram
	buildOutcome      *prom.CounterVec
	postsPublished    prom.Gauge
	rebuilds          prom.Counter
	livereloadClients prom.Gauge
	broadcasts        prom.Counter
	droppedClients    prom.Counter
}

// NewPrometheusRecorder constructs and registers the blog metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pageturtle",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pageturtle",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		postsPublished: prom.NewGauge(prom.GaugeOpts{
			Namespace: "pageturtle",
			Name:      "posts_published",
			Help:      "Posts in the publish set of the last build",
		}),
		rebuilds: prom.NewCounter(prom.CounterOpts{
			Namespace: "pageturtle",
			Name:      "dev_rebuilds_total",
			Help:      "Rebuilds triggered by content changes in dev mode",
		}),
		livereloadClients: prom.NewGauge(prom.GaugeOpts{
			Namespace: "pageturtle",
			Name:      "livereload_clients",
			Help:      "Currently connected live-reload sessions",
		}),
		broadcasts: prom.NewCounter(prom.CounterOpts{
			Namespace: "pageturtle",
			Name:      "livereload_broadcasts_total",
			Help:      "Change signals broadcast to live-reload sessions",
		}),
		droppedClients: prom.NewCounter(prom.CounterOpts{
			Namespace: "pageturtle",
			Name:      "livereload_dropped_clients_total",
			Help:      "Live-reload sessions dropped for not draining their queue",
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.postsPublished, pr.rebuilds, pr.livereloadClients, pr.broadcasts, pr.droppedClients)
	return pr
}

func (pr *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncBuildOutcome(outcome string) {
	pr.buildOutcome.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) SetPostsPublished(n int) {
	pr.postsPublished.Set(float64(n))
}

func (pr *PrometheusRecorder) IncRebuild() {
	pr.rebuilds.Inc()
}

func (pr *PrometheusRecorder) SetLiveReloadClients(n int) {
	pr.livereloadClients.Set(float64(n))
}

func (pr *PrometheusRecorder) IncLiveReloadBroadcast() {
	pr.broadcasts.Inc()
}

func (pr *PrometheusRecorder) IncLiveReloadDropped() {
	pr.droppedClients.Inc()
}

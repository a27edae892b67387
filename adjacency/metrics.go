package adjacency

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//*******************************************
// metrics
//*******************************************

// Prometheus metrics of adjacency runs, a nil *Metrics records nothing.
type Metrics struct {
	RunsTotal     prometheus.Counter
	RunDuration   prometheus.Histogram
	TilesTotal    *prometheus.CounterVec
	TileDuration  prometheus.Histogram
	EdgesProduced prometheus.Counter
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		RunsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "adjacency_runs_total",
				Help: "Total number of finished adjacency computations",
			},
		),
		RunDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "adjacency_run_duration_seconds",
				Help:    "Duration of adjacency computations in seconds",
				Buckets: []float64{0.1, 1, 10, 60, 300, 1800, 3600},
			},
		),
		TilesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "adjacency_tiles_total",
				Help: "Total number of solved tiles",
			},
			[]string{"status"},
		),
		TileDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "adjacency_tile_duration_seconds",
				Help:    "Duration of single tile solves in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
			},
		),
		EdgesProduced: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "adjacency_edges_total",
				Help: "Total number of adjacency edges produced by tiles",
			},
		),
	}
}

func (self *Metrics) ObserveTile(duration time.Duration, edges int) {
	if self == nil {
		return
	}
	self.TilesTotal.WithLabelValues("success").Inc()
	self.TileDuration.Observe(duration.Seconds())
	self.EdgesProduced.Add(float64(edges))
}

func (self *Metrics) ObserveTileFailed() {
	if self == nil {
		return
	}
	self.TilesTotal.WithLabelValues("error").Inc()
}

func (self *Metrics) ObserveRun(duration time.Duration) {
	if self == nil {
		return
	}
	self.RunsTotal.Inc()
	self.RunDuration.Observe(duration.Seconds())
}

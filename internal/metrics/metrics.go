// Package metrics exposes Prometheus metrics for hosted game sessions.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Collector bundles the session metrics and serves them over HTTP.
// A nil *Collector is valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	SessionsActive prometheus.Gauge
	SessionsTotal  *prometheus.CounterVec
	FramesTotal    *prometheus.CounterVec
	RunsEnded      *prometheus.CounterVec
	PointsTotal    *prometheus.CounterVec
	RunScores      *prometheus.HistogramVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	active, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "flappy_sessions_active",
		Help: "Number of sessions currently playing.",
	}), "flappy_sessions_active")
	if err != nil {
		return nil, err
	}

	sessions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flappy_sessions_total",
		Help: "Sessions started, labeled by variant.",
	}, []string{"variant"}), "flappy_sessions_total")
	if err != nil {
		return nil, err
	}

	frames, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flappy_frames_total",
		Help: "Simulation ticks executed, labeled by variant.",
	}, []string{"variant"}), "flappy_frames_total")
	if err != nil {
		return nil, err
	}

	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flappy_runs_ended_total",
		Help: "Runs ended by a collision or ground contact, labeled by variant.",
	}, []string{"variant"}), "flappy_runs_ended_total")
	if err != nil {
		return nil, err
	}

	points, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flappy_points_total",
		Help: "Obstacles cleared, labeled by variant.",
	}, []string{"variant"}), "flappy_points_total")
	if err != nil {
		return nil, err
	}

	scores, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flappy_run_score",
		Help:    "Score at the end of each run.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"variant"}), "flappy_run_score")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		SessionsActive: active,
		SessionsTotal:  sessions,
		FramesTotal:    frames,
		RunsEnded:      runs,
		PointsTotal:    points,
		RunScores:      scores,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SessionStarted records a new session of the given variant.
func (c *Collector) SessionStarted(variant string) {
	if c == nil {
		return
	}
	c.SessionsActive.Inc()
	c.SessionsTotal.WithLabelValues(variant).Inc()
}

// SessionEnded records the end of a session.
func (c *Collector) SessionEnded() {
	if c == nil {
		return
	}
	c.SessionsActive.Dec()
}

// ObserveStep records one simulation tick and the signals it emitted.
func (c *Collector) ObserveStep(variant string, res core.StepResult) {
	if c == nil {
		return
	}
	c.FramesTotal.WithLabelValues(variant).Inc()
	for _, s := range res.Events {
		switch s {
		case core.SignalPoint:
			c.PointsTotal.WithLabelValues(variant).Inc()
		case core.SignalHit:
			c.RunsEnded.WithLabelValues(variant).Inc()
			c.RunScores.WithLabelValues(variant).Observe(float64(res.State.Score))
		}
	}
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

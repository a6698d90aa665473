// Package metrics exports Prometheus metrics for Sky Battle servers and
// simulation batches.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/sky-battle/internal/games/skybattle/sim"
)

const namespace = "skybattle"

// Metrics holds every collector on its own registry, so several instances
// can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	sessions      prometheus.Gauge
	sessionsTotal prometheus.Counter
	ticks         prometheus.Counter
	kills         prometheus.Counter
	spawned       *prometheus.CounterVec
	levels        *prometheus.CounterVec
	runs          *prometheus.CounterVec
	runKills      prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of connected play sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Play sessions opened since start.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks advanced.",
		}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Enemies and bosses destroyed.",
		}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_spawned_total",
			Help:      "Entities entering play, by kind.",
		}, []string{"kind"}),
		levels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_results_total",
			Help:      "Finished levels, by level and result.",
		}, []string{"level", "result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished campaigns, by outcome.",
		}, []string{"outcome"}),
		runKills: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_kills",
			Help:      "Kills per finished campaign.",
			Buckets:   []float64{0, 5, 10, 15, 20, 30, 50},
		}),
	}

	m.registry.MustRegister(
		m.sessions, m.sessionsTotal, m.ticks, m.kills,
		m.spawned, m.levels, m.runs, m.runKills,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SessionOpened records a new play session and returns a func that closes it.
func (m *Metrics) SessionOpened() func() {
	m.sessions.Inc()
	m.sessionsTotal.Inc()
	return func() { m.sessions.Dec() }
}

// ObserveTicks counts n simulation ticks.
func (m *Metrics) ObserveTicks(n int) {
	if n > 0 {
		m.ticks.Add(float64(n))
	}
}

// ObserveRun records a finished campaign.
func (m *Metrics) ObserveRun(r sim.Result) {
	outcome := r.Outcome.String()
	if r.Outcome == sim.OutcomeNone {
		outcome = "abandoned"
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runKills.Observe(float64(r.Kills))
}

// Listener returns a sim.Listener feeding the event driven collectors.
// Kills are counted from KillsChanged deltas within each level.
func (m *Metrics) Listener() sim.Listener {
	last := 0
	return sim.ListenerFunc(func(ev sim.Event) {
		switch e := ev.(type) {
		case sim.LevelStarted:
			last = 0
		case sim.EntitySpawned:
			m.spawned.WithLabelValues(e.Kind.String()).Inc()
		case sim.KillsChanged:
			if d := e.Kills - last; d > 0 {
				m.kills.Add(float64(d))
			}
			last = e.Kills
		case sim.AdvanceToLevel:
			m.levels.WithLabelValues(string(e.From), "cleared").Inc()
		case sim.LevelWon:
			m.levels.WithLabelValues(string(e.Level), "won").Inc()
		case sim.LevelLost:
			m.levels.WithLabelValues(string(e.Level), "lost").Inc()
		}
	})
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Package metrics exports session events as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.Observer = (*Collector)(nil)

var allStates = []domain.SessionState{
	domain.StateIdle,
	domain.StateListening,
	domain.StatePaused,
	domain.StateProcessing,
	domain.StateEnded,
}

// Collector is a session observer backed by its own registry.
type Collector struct {
	registry *prometheus.Registry
	now      func() time.Time

	transitions     *prometheus.CounterVec
	state           *prometheus.GaugeVec
	signals         *prometheus.CounterVec
	messages        *prometheus.CounterVec
	feedback        *prometheus.CounterVec
	sessionDuration prometheus.Histogram

	startedAt time.Time
}

// NewCollector registers the voice-mode metrics under namespace.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,
		now:      time.Now,
	}

	c.transitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Session state transitions",
		},
		[]string{"from", "to"},
	)

	c.state = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_state",
			Help:      "1 for the current session state, 0 otherwise",
		},
		[]string{"state"},
	)

	c.signals = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trust_signals_total",
			Help:      "Trust signals shown, by trigger",
		},
		[]string{"trigger"},
	)

	c.messages = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages committed to the log, by role",
		},
		[]string{"role"},
	)

	c.feedback = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_total",
			Help:      "Post-session feedback, by rating",
		},
		[]string{"rating"},
	)

	c.sessionDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Wall time from opening voice mode to leaving it",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
		},
	)

	c.setState(domain.StateIdle)
	return c
}

func (c *Collector) StateChanged(from, to domain.SessionState) {
	c.transitions.WithLabelValues(from.String(), to.String()).Inc()
	c.setState(to)

	switch {
	case from == domain.StateIdle && to.Active():
		c.startedAt = c.now()
	case from.Active() && to == domain.StateIdle && !c.startedAt.IsZero():
		c.sessionDuration.Observe(c.now().Sub(c.startedAt).Seconds())
		c.startedAt = time.Time{}
	}
}

func (c *Collector) SignalShown(sig domain.TrustSignal) {
	c.signals.WithLabelValues(string(sig.Trigger)).Inc()
}

func (c *Collector) MessageCommitted(msg domain.Message) {
	c.messages.WithLabelValues(string(msg.Role)).Inc()
}

func (c *Collector) FeedbackSubmitted(fb domain.Feedback) {
	c.feedback.WithLabelValues(fb.Rating.String()).Inc()
}

func (c *Collector) setState(current domain.SessionState) {
	for _, s := range allStates {
		v := 0.0
		if s == current {
			v = 1
		}
		c.state.WithLabelValues(s.String()).Set(v)
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. Blocking.
func (c *Collector) Serve(ctx context.Context, addr string, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

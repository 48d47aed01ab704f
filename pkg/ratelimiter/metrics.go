package ratelimiter

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Decision outcomes used as the "outcome" label.
const (
	OutcomeAllowed   = "allowed"
	OutcomeDenied    = "denied"
	OutcomeUnlimited = "unlimited"
	OutcomeFallback  = "fallback"
)

// Metrics exports engine counters to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	decisions   *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	storeErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered by another engine are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planguard",
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Rate limit decisions by outcome.",
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planguard",
			Subsystem: "ratelimit",
			Name:      "fallbacks_total",
			Help:      "Calls permitted because of an internal failure, by reason.",
		}, []string{"reason"}),
		storeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "planguard",
			Subsystem: "ratelimit",
			Name:      "store_errors_total",
			Help:      "Usage store calls that failed or timed out.",
		}),
	}

	var err error
	m.decisions, err = register(reg, m.decisions)
	if err != nil {
		return nil, err
	}
	m.fallbacks, err = register(reg, m.fallbacks)
	if err != nil {
		return nil, err
	}
	m.storeErrors, err = register(reg, m.storeErrors)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(d Decision) {
	if m == nil {
		return
	}

	outcome := OutcomeAllowed
	switch {
	case !d.Allowed:
		outcome = OutcomeDenied
	case d.Fallback:
		outcome = OutcomeFallback
	case d.Unlimited():
		outcome = OutcomeUnlimited
	}
	m.decisions.WithLabelValues(outcome).Inc()

	if d.Fallback {
		m.fallbacks.WithLabelValues(d.FallbackReason).Inc()
	}
}

func (m *Metrics) storeFailure() {
	if m == nil {
		return
	}
	m.storeErrors.Inc()
}

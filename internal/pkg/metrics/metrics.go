// Package metrics defines and registers all custom Prometheus metrics for the
// login API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation. HTTP request metrics are handled separately by the
// echoprometheus middleware in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "login"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts completed login attempts.
// Label:
//   - outcome: "success", "invalid-input", "invalid-credentials" or "internal-error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginDuration measures a login attempt from validation to result.
// Label:
//   - outcome: same values as LoginAttemptsTotal
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Duration of login attempts including password hashing.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"outcome"},
)

// TokensIssuedTotal counts signed tokens handed out.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// ── Credential store metrics ──────────────────────────────────────────────────

// CredentialCacheTotal counts lookups through the Redis credential cache.
// Label:
//   - result: "hit", "miss" or "error"
var CredentialCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_cache_total",
		Help:      "Total number of credential cache lookups, labelled by result.",
	},
	[]string{"result"},
)

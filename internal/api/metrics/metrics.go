// Package metrics defines and registers the custom Prometheus metrics of the
// users API. It is the single source of truth for metric names, labels and
// help strings.
//
// All metrics are registered with the default Prometheus registry at package
// init through promauto. HTTP request metrics come from echoprometheus and
// are wired in the router.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsTotal counts session creation attempts.
// Label:
//   - result: "issued", "invalid_credentials" or "error"
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of session creation attempts, by result.",
	},
	[]string{"result"},
)

// SessionDuration measures a full session creation: store lookup, bcrypt
// comparison and signing.
// Label:
//   - result: same values as SessionsTotal
var SessionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_duration_seconds",
		Help:      "Duration of session creation including credential verification and signing.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// CredentialVerificationDuration measures the store lookup plus bcrypt
// comparison of a single credential check.
// Label:
//   - result: "ok", "invalid_credentials", "verification_error" or "store_error"
var CredentialVerificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "credential_verification_duration_seconds",
		Help:      "Duration of credential verification (store lookup and bcrypt comparison), by result.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ObserveCredentialVerification records one credential check.
func ObserveCredentialVerification(result string, elapsed time.Duration) {
	CredentialVerificationDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts gate decisions on protected routes.
// Labels:
//   - policy: "public", "authenticated" or "role:<min>"
//   - outcome: "admitted", "unauthenticated" or "forbidden"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access gate decisions, by route policy and outcome.",
	},
	[]string{"policy", "outcome"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// channel was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)

// UserCacheTotal counts user cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user cache lookups, labelled by result.",
	},
	[]string{"result"},
)

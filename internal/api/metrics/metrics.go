// Package metrics defines and registers all custom Prometheus metrics for the
// blood donation API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blood_donation"

// ── Lifecycle metrics ─────────────────────────────────────────────────────────

// RequestsCreatedTotal counts newly created donation requests.
// Label:
//   - blood_group: requested blood group (e.g. "O+")
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of donation requests created, by blood group.",
	},
	[]string{"blood_group"},
)

// TransitionsTotal counts lifecycle operations that were applied.
// Labels:
//   - operation: confirm, finalize, moderate, patch, replace, delete
//   - from / to: request status before and after
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of applied donation request operations.",
	},
	[]string{"operation", "from", "to"},
)

// RejectionsTotal counts lifecycle operations refused by the policy or the store guard.
// Labels:
//   - operation: the attempted operation
//   - reason: forbidden, invalid_transition, validation, conflict, not_pending
var RejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejections_total",
		Help:      "Total number of rejected donation request operations.",
	},
	[]string{"operation", "reason"},
)

// IdempotentReplaysTotal counts create calls answered from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of donation request creations replayed via Idempotency-Key.",
	},
)

// ── Access gate metrics ───────────────────────────────────────────────────────

// GateDeniedTotal counts calls rejected by the access gate.
// Labels:
//   - operation: the gated operation name
//   - reason: unauthenticated, unknown_user, blocked, role
var GateDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denied_total",
		Help:      "Total number of calls rejected by authentication or role checks.",
	},
	[]string{"operation", "reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit events that could not be persisted.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
)

// AuditProcessingDuration measures how long a single audit write takes.
var AuditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

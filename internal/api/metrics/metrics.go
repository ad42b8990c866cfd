// Package metrics defines and registers all custom Prometheus metrics for the
// ordering gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register on the default registry at package init and are served by
// promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering_gateway"

// ── Session / guard metrics ───────────────────────────────────────────────────

// GuardDecisionsTotal counts route-guard verdicts.
// Label:
//   - decision: "allow", "login", "clear_and_login", "wait", "role_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// SessionsResolvedTotal counts session resolutions.
// Label:
//   - outcome: "anonymous", "profile", "hint", "invalid", "pending"
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of session resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// OrdersSubmittedTotal counts orders accepted by the ordering API.
var OrdersSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of orders successfully submitted upstream.",
	},
)

// PaymentsInitiatedTotal counts payment handoffs issued to the browser.
var PaymentsInitiatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initiated_total",
		Help:      "Total number of payment handoffs issued.",
	},
)

// CheckoutFailuresTotal counts aborted checkout sequences.
// Label:
//   - stage: "order" (submission failed) or "payment" (initiation failed)
var CheckoutFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of checkout sequences aborted, by failing stage.",
	},
	[]string{"stage"},
)

// CompensationsTotal counts best-effort cancellations of unpaid orders.
// Label:
//   - result: "cancelled", "exhausted", "dropped"
var CompensationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compensations_total",
		Help:      "Total number of unpaid-order compensation attempts, by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures one GraphQL round trip to the ordering API.
// Labels:
//   - operation: GraphQL operation name (e.g. "CreateOrder")
//   - result: "ok" or "error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of GraphQL requests against the ordering API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation", "result"},
)

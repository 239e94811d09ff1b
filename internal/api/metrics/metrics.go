// Package metrics defines and registers all custom Prometheus metrics for the
// class scheduler API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scheduler"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential login attempts.
// Label:
//   - result: "success", "demo", "failure" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of credential login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: "TEACHER" or "STUDENT"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// SessionRefreshTotal counts session claim refreshes.
// Labels:
//   - strategy: "demo", "store", "storeless"
//   - outcome: "ok" or "error"
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refresh_total",
		Help:      "Total number of session claim refreshes, by strategy and outcome.",
	},
	[]string{"strategy", "outcome"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts guard decisions on owned resources.
// Label:
//   - decision: "allow", "unauthorized", "forbidden"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization guard decisions.",
	},
	[]string{"decision"},
)

// ClassMutationsTotal counts successful class writes.
// Label:
//   - operation: "create", "update", "delete"
var ClassMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "class_mutations_total",
		Help:      "Total number of class create/update/delete operations.",
	},
	[]string{"operation"},
)

// Package metrics defines the custom Prometheus metrics for the auth
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "store_unavailable"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization decisions on protected routes.
// Labels:
//   - policy: the policy declared by the route (e.g. "AdminPolicy")
//   - decision: "allowed", "unauthenticated", or "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by policy and outcome.",
	},
	[]string{"policy", "decision"},
)

// LoginDuration measures login latency end-to-end, dominated by the
// deliberately slow password verification.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login requests from receipt to response.",
		Buckets:   prometheus.DefBuckets,
	},
)

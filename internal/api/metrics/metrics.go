// Package metrics defines and registers all custom Prometheus metrics for the
// VeícSys API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "veicsys"

// ── Access metrics ────────────────────────────────────────────────────────────

// GateDecisionsTotal counts access gate outcomes on protected views.
// Labels:
//   - view: the view name declared in the route table (e.g. "admin_home")
//   - outcome: "pending", "login", "role_home" or "render"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by view and outcome.",
	},
	[]string{"view", "outcome"},
)

// SessionResolutionsTotal counts how session resolution ended.
// Label:
//   - result: "no_token", "invalid_token", "present", "no_profile", "profile_error"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolutions, by result.",
	},
	[]string{"result"},
)

// ProfileCacheTotal counts profile cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, by result.",
	},
	[]string{"result"},
)

// ── CNPJ metrics ──────────────────────────────────────────────────────────────

// CNPJLookupsTotal counts CNPJ lookups.
// Label:
//   - result: "hit", "miss", "invalid" or "upstream_error"
var CNPJLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cnpj_lookups_total",
		Help:      "Total number of CNPJ lookups, by result.",
	},
	[]string{"result"},
)

// CNPJRegistryDuration measures round trips to the external registry.
var CNPJRegistryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cnpj_registry_duration_seconds",
		Help:      "Duration of CNPJ registry requests.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Process metrics ───────────────────────────────────────────────────────────

// ProcessesCreatedTotal counts newly opened service processes.
// Label:
//   - type: "emplacamento", "transferencia" or "licenciamento"
var ProcessesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "processes_created_total",
		Help:      "Total number of service processes opened, by type.",
	},
	[]string{"type"},
)

// EventsProcessedTotal counts process events applied successfully.
// Labels:
//   - status: the new process status applied by the event
//   - source: who reported it
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of process events successfully applied.",
	},
	[]string{"status", "source"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: "invalid_transition", "process_not_found", "update_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of process events that failed processing.",
	},
	[]string{"reason"},
)

// EventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var EventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

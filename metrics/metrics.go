// Package metrics defines and registers the Prometheus metrics of the owner
// front-end. It is the single source of truth for metric names and labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "owner_panel"

// BackendRequestsTotal counts calls to the backend API.
// Labels:
//   - operation: logical call name (e.g. "list_owner_properties")
//   - outcome: "ok", "http_error", "transport_error" or "bad_shape"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// BackendRequestDuration measures backend call latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "not_owner" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of owner login attempts, by result.",
	},
	[]string{"result"},
)

// GuardRedirectsTotal counts navigations redirected by the route guard.
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of page navigations redirected by the route guard.",
	},
	[]string{"to"},
)

// DraftSubmissionsTotal counts property form submissions.
// Labels:
//   - mode: "create" or "edit"
//   - result: "success", "invalid" or "failed"
var DraftSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draft_submissions_total",
		Help:      "Total number of property form submissions, by mode and result.",
	},
	[]string{"mode", "result"},
)

// PropertiesDeletedTotal counts confirmed deletes by result.
var PropertiesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_deleted_total",
		Help:      "Total number of confirmed property deletes, by result.",
	},
	[]string{"result"},
)

// WorkflowsEvictedTotal counts per-browser workflow state dropped by the TTL sweep.
// Label:
//   - kind: "draft" or "list"
var WorkflowsEvictedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflows_evicted_total",
		Help:      "Total number of idle property drafts and lists evicted.",
	},
	[]string{"kind"},
)

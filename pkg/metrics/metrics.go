package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Run metrics
	RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_runs_total",
			Help: "Total number of completed reconciliation passes",
		},
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dnset_run_duration_seconds",
			Help:    "Duration of a full reconciliation pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// IPSet metrics
	SetsInspected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_ipsets_inspected_total",
			Help: "Total number of ipsets inspected across all scopes",
		},
	)

	SetsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_ipsets_skipped_total",
			Help: "Total number of ipsets without a domain directive",
		},
	)

	SetsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_ipsets_applied_total",
			Help: "Total number of ipsets whose members were rewritten",
		},
	)

	// Resolution metrics
	DomainsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_domains_resolved_total",
			Help: "Total number of domains that resolved to at least one address",
		},
	)

	DomainsEmpty = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_domains_empty_total",
			Help: "Total number of domains that resolved to no addresses",
		},
	)

	// Member operation metrics
	MembersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_members_created_total",
			Help: "Total number of ipset members created",
		},
	)

	MembersDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_members_deleted_total",
			Help: "Total number of ipset members deleted",
		},
	)

	MemberOpFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dnset_member_op_failures_total",
			Help: "Total number of member create/delete calls that failed",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(SetsInspected)
	prometheus.MustRegister(SetsSkipped)
	prometheus.MustRegister(SetsApplied)
	prometheus.MustRegister(DomainsResolved)
	prometheus.MustRegister(DomainsEmpty)
	prometheus.MustRegister(MembersCreated)
	prometheus.MustRegister(MembersDeleted)
	prometheus.MustRegister(MemberOpFailures)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

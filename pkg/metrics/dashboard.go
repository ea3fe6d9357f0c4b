package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DashboardMetrics records aggregation runs and data-quality counters.
type DashboardMetrics struct {
	refreshDuration *prometheus.HistogramVec
	refreshSuccess  *prometheus.CounterVec
	refreshFailure  *prometheus.CounterVec
	superseded      prometheus.Counter
	skippedRecords  prometheus.Counter
}

// NewDashboardMetrics registers the dashboard metrics on the provided registerer.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}
	refreshDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_refresh_duration_seconds",
		Help:    "Duration of dashboard summary computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	refreshSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_success",
		Help: "Successful dashboard summary computations.",
	}, []string{"trigger"})
	refreshFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_failure",
		Help: "Failed dashboard summary computations.",
	}, []string{"trigger"})
	superseded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_refresh_superseded",
		Help: "In-flight summary computations discarded because a newer one started.",
	})
	skippedRecords := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_skipped_records",
		Help: "Order records skipped during aggregation because of missing timestamps.",
	})
	reg.MustRegister(refreshDuration, refreshSuccess, refreshFailure, superseded, skippedRecords)
	return &DashboardMetrics{
		refreshDuration: refreshDuration,
		refreshSuccess:  refreshSuccess,
		refreshFailure:  refreshFailure,
		superseded:      superseded,
		skippedRecords:  skippedRecords,
	}
}

// ObserveRefresh records the duration for a summary computation.
func (d *DashboardMetrics) ObserveRefresh(trigger string, duration time.Duration) {
	if d == nil || d.refreshDuration == nil {
		return
	}
	d.refreshDuration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// IncRefreshSuccess increments the success counter for the trigger.
func (d *DashboardMetrics) IncRefreshSuccess(trigger string) {
	if d == nil || d.refreshSuccess == nil {
		return
	}
	d.refreshSuccess.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// IncRefreshFailure increments the failure counter for the trigger.
func (d *DashboardMetrics) IncRefreshFailure(trigger string) {
	if d == nil || d.refreshFailure == nil {
		return
	}
	d.refreshFailure.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// IncSuperseded counts a discarded stale computation.
func (d *DashboardMetrics) IncSuperseded() {
	if d == nil || d.superseded == nil {
		return
	}
	d.superseded.Inc()
}

// AddSkippedRecords counts malformed order records skipped by aggregation.
func (d *DashboardMetrics) AddSkippedRecords(n int) {
	if d == nil || d.skippedRecords == nil || n <= 0 {
		return
	}
	d.skippedRecords.Add(float64(n))
}

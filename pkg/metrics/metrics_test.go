package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %q not found", name)
	return nil
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/orders", "200", 25*time.Millisecond)
	m.Observe("GET", "/api/v1/orders", "200", 40*time.Millisecond)
	m.Observe("POST", "/api/v1/orders", "500", 10*time.Millisecond)

	mf := gatherFamily(t, reg, "http_requests_total")
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Fatalf("expected 3 requests recorded, got %v", total)
	}

	mf = gatherFamily(t, reg, "http_request_duration_seconds")
	var samples uint64
	for _, m := range mf.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Fatalf("expected 3 duration samples, got %d", samples)
	}
}

func TestDashboardMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDashboardMetrics(reg)

	m.IncRefreshSuccess("signal")
	m.IncRefreshSuccess("signal")
	m.IncRefreshFailure("interval")
	m.IncSuperseded()
	m.AddSkippedRecords(4)
	m.AddSkippedRecords(0)
	m.ObserveRefresh("signal", 12*time.Millisecond)

	mf := gatherFamily(t, reg, "dashboard_refresh_success")
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}

	mf = gatherFamily(t, reg, "dashboard_skipped_records")
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 4 {
		t.Fatalf("expected 4 skipped records, got %v", got)
	}
}

func TestDashboardMetricsNilRegisterer(t *testing.T) {
	m := NewDashboardMetrics(nil)
	m.IncRefreshSuccess("signal")
	m.IncSuperseded()
	m.AddSkippedRecords(1)
	m.ObserveRefresh("signal", time.Millisecond)
}

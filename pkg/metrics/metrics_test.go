package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.IncInflight()
	m.ObserveRequest("POST", "/api/recharge", 201, 40*time.Millisecond)
	m.DecInflight()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/recharge"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/recharge"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsStatusBuckets(t *testing.T) {
	cases := map[int]string{
		102: "1xx",
		200: "2xx",
		301: "3xx",
		404: "4xx",
		503: "5xx",
	}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Fatalf("statusLabel(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestRechargeMetricsRevenueOnlyCountsCompleted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRechargeMetrics(reg)

	m.ObserveRecharge("Jio", "completed", 299)
	m.ObserveRecharge("Jio", "completed", 199)
	m.ObserveRecharge("Airtel", "failed", 399)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "recharges_total", "operator", "Jio"); err != nil {
		t.Fatalf("fetch recharges: %v", err)
	} else if got != 2 {
		t.Fatalf("expected recharges=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "recharge_revenue_total", "operator", "Jio"); err != nil {
		t.Fatalf("fetch revenue: %v", err)
	} else if got != 498 {
		t.Fatalf("expected revenue=498, got %f", got)
	}

	if _, err := fetchCounterValue(mfs, "recharge_revenue_total", "operator", "Airtel"); err == nil {
		t.Fatal("expected no revenue series for failed recharges")
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	h := NewHTTPMetrics(nil)
	h.IncInflight()
	h.ObserveRequest("GET", "/api/plans", 200, time.Millisecond)
	h.DecInflight()

	r := NewRechargeMetrics(nil)
	r.ObserveRecharge("Vi", "completed", 100)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

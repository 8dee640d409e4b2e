package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getHistogramCount(hv *prometheus.HistogramVec, labels ...string) uint64 {
	o, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetrics_CatalogRequestsTotal(t *testing.T) {
	before := getCounterVecValue(CatalogRequestsTotal, "search", "ok")
	CatalogRequestsTotal.WithLabelValues("search", "ok").Inc()
	after := getCounterVecValue(CatalogRequestsTotal, "search", "ok")

	if after != before+1 {
		t.Errorf("Expected ok counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_CatalogRequestsTotal_Error(t *testing.T) {
	before := getCounterVecValue(CatalogRequestsTotal, "episodes", "transport_error")
	CatalogRequestsTotal.WithLabelValues("episodes", "transport_error").Inc()
	after := getCounterVecValue(CatalogRequestsTotal, "episodes", "transport_error")

	if after != before+1 {
		t.Errorf("Expected error counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_CatalogRequestDuration(t *testing.T) {
	before := getHistogramCount(CatalogRequestDuration, "search")
	CatalogRequestDuration.WithLabelValues("search").Observe(0.25)
	after := getHistogramCount(CatalogRequestDuration, "search")

	if after != before+1 {
		t.Errorf("Expected one more observation, got diff %d", after-before)
	}
}

func TestMetrics_UIEventsTotal(t *testing.T) {
	before := getCounterVecValue(UIEventsTotal, "click", "handled")
	UIEventsTotal.WithLabelValues("click", "handled").Inc()
	after := getCounterVecValue(UIEventsTotal, "click", "handled")

	if after != before+1 {
		t.Errorf("Expected click counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9090)

	if srv.Addr != "localhost:9090" {
		t.Errorf("Expected address 'localhost:9090', got '%s'", srv.Addr)
	}

	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	UIEventsTotal.WithLabelValues("submit", "handled").Inc()

	rec := httptest.NewRecorder()
	Handler(prometheus.DefaultGatherer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `showfinder_ui_events_total{event="submit",outcome="handled"}`) {
		t.Error("Expected UI event counter in the exposition")
	}

	rec = httptest.NewRecorder()
	Handler(prometheus.DefaultGatherer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 outside /metrics, got %d", rec.Code)
	}
}

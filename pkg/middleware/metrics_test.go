package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectMetric extracts the label-matched metric from a collector.
func collectMetric(t *testing.T, c prometheus.Collector, labels map[string]string) *dto.Metric {
	if t != nil {
		t.Helper()
	}
	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}

		match := true
		for k, v := range labels {
			found := false
			for _, lp := range d.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			return d
		}
	}
	return nil
}

func serveWithChi(mw func(http.Handler) http.Handler, pattern string, handler http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get(pattern, handler)
	return r
}

func TestPrometheusMetrics_RequestCountingByRoutePattern(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("count-svc"), "/api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"product-1", "product-2", "product-3"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	labels := map[string]string{"service": "count-svc", "method": "GET", "path": "/api/v1/products/{id}", "status": "200"}
	m := collectMetric(t, httpRequestsTotal, labels)
	require.NotNil(t, m)
	assert.Equal(t, float64(3), m.GetCounter().GetValue())
}

func TestPrometheusMetrics_DurationHistogram(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("hist-svc"), "/api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	labels := map[string]string{"service": "hist-svc", "status": "201"}
	m := collectMetric(t, httpRequestDuration, labels)
	require.NotNil(t, m)
	assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
}

func TestPrometheusMetrics_InFlightGauge(t *testing.T) {
	inFlightSeen := float64(-1)
	handler := serveWithChi(PrometheusMetrics("inflight-svc"), "/test", func(w http.ResponseWriter, r *http.Request) {
		if m := collectMetric(nil, httpRequestsInFlight, map[string]string{"service": "inflight-svc"}); m != nil {
			inFlightSeen = m.GetGauge().GetValue()
		}
		w.WriteHeader(http.StatusOK)
	})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, float64(1), inFlightSeen)
	m := collectMetric(t, httpRequestsInFlight, map[string]string{"service": "inflight-svc"})
	require.NotNil(t, m)
	assert.Equal(t, float64(0), m.GetGauge().GetValue())
}

func TestPrometheusMetrics_DefaultStatusCode(t *testing.T) {
	handler := serveWithChi(PrometheusMetrics("default-status-svc"), "/test", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	m := collectMetric(t, httpRequestsTotal, map[string]string{"service": "default-status-svc", "status": "200"})
	require.NotNil(t, m)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest(http.MethodGet, http.StatusOK, 25*time.Millisecond)
	c.RecordHTTPRequest(http.MethodGet, http.StatusOK, 10*time.Millisecond)
	c.RecordHTTPRequest(http.MethodPost, http.StatusSeeOther, 5*time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "303")))
}

func TestCollector_RecordLoginAndMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("success")
	c.RecordLogin("state_mismatch")
	c.RecordMutation("item", "create")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.logins.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("state_mismatch")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.mutations.WithLabelValues("item", "create")))
}

func TestSetupMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordHTTPRequest(http.MethodGet, http.StatusOK, time.Millisecond)

	handler := SetupMetricsRoute(reg)
	require.NotNil(t, handler)

	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_http_requests_total")
	assert.Contains(t, w.Body.String(), "catalog_http_request_duration_seconds")
}

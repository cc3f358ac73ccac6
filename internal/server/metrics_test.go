package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *MetricsServer) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsExposure(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPM = 60
	s, h := newTestServer(t, cfg)
	m := NewMetricsServer("127.0.0.1:0")

	rec := do(h, http.MethodGet, "/api/palette?base=808080&ratio=21&variations=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	do(h, http.MethodGet, "/api/palette?base=nope", "")
	s.prune(time.Hour)

	body := scrape(t, m)
	assert.Contains(t, body, "palette_generated_total ")
	assert.Contains(t, body, `palette_requests_total{code="200",endpoint="/api/palette"}`)
	assert.Contains(t, body, `palette_errors_total{kind="invalid_format"}`)
	assert.Contains(t, body, `palette_shortfalls_total{tone="light"}`)
	assert.Contains(t, body, "palette_generation_duration_seconds_count ")
	assert.Contains(t, body, "palette_rate_limit_clients 1\n")
}

func TestMetricsNotOnAPIHandler(t *testing.T) {
	_, h := newTestServer(t, testConfig())
	rec := do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

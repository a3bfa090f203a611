package internal

import (
	"activitydash/internal/controllers"
	"activitydash/internal/monitor"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"activitydash/internal/testutil"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeTestMonitor struct{}

func (m *routeTestMonitor) Init()                                {}
func (m *routeTestMonitor) Stop()                                {}
func (m *routeTestMonitor) Check(context.Context) monitor.Status { return monitor.Status{Up: true} }
func (m *routeTestMonitor) Last() (monitor.Status, bool)         { return monitor.Status{Up: true}, true }

type routeTestMetrics struct {
	endpoints []string
}

func (m *routeTestMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.endpoints = append(m.endpoints, endpoint)
}
func (m *routeTestMetrics) ObserveRequestDuration(string, time.Duration) {}
func (m *routeTestMetrics) IncCacheHits()                                {}
func (m *routeTestMetrics) IncCacheMisses()                              {}
func (m *routeTestMetrics) IncBackendCalls(string, int)                  {}
func (m *routeTestMetrics) ObserveBackendDuration(string, time.Duration) {}
func (m *routeTestMetrics) SetBackendUp(bool)                            {}

func testRouter() providers.RouterProviderInterface {
	conf := &structures.Config{}
	logger := &testutil.MockLogger{}
	return InitRoutes(
		controllers.NewDashboardController(logger, conf, nil, nil),
		controllers.NewCommandController(logger, conf, nil, nil, nil, nil, nil, nil),
	)
}

func TestInitRoutes_RegistersDashboardRoutes(t *testing.T) {
	routes := testRouter().GetRoutes()

	require.Len(t, routes, 3)

	got := make(map[string]string, len(routes))
	for _, r := range routes {
		got[r.Url] = r.Method
	}
	assert.Equal(t, map[string]string{
		"/{$}":             http.MethodGet,
		"/views/{section}": http.MethodGet,
		"/commands":        http.MethodPost,
	}, got)
}

func TestNewHandler_MethodEnforcement(t *testing.T) {
	metrics := &routeTestMetrics{}
	handler := NewHandler(controllers.NewHealthController(&routeTestMonitor{}), &structures.Config{}, testRouter(), metrics)

	tests := []struct {
		method, target string
		code           int
	}{
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/commands", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/views/profiles", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/static/dashboard.css", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.code, rr.Code)
		})
	}

	assert.Contains(t, metrics.endpoints, "/commands")
	assert.NotContains(t, metrics.endpoints, "/health")
}

func TestNewHandler_MetricsOnlyWhenEnabled(t *testing.T) {
	health := controllers.NewHealthController(&routeTestMonitor{})

	rr := httptest.NewRecorder()
	NewHandler(health, &structures.Config{}, testRouter(), &routeTestMetrics{}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	NewHandler(health, &structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}, testRouter(), &routeTestMetrics{}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/evently/internal/app"
	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/service"
	"github.com/MKhiriev/evently/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Route table ----

// expectedRoutes lists every route Init must register. Protected routes are
// probed without a token, so 401 proves the route exists.
var expectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/events/create"},
	{http.MethodPost, "/api/events/e-1/image"},
	{http.MethodGet, "/api/users/me"},
	{http.MethodGet, "/me"},
	{http.MethodGet, "/"},
	{http.MethodGet, "/api/version"},
}

func TestInit_RegistersRoutes(t *testing.T) {
	auth := tokenAuth()
	auth.currentUserFn = func(_ context.Context, token string) (models.Profile, error) {
		return models.Profile{}, service.ErrUnauthorized
	}
	router := newHandlerWith(t, &service.Services{AuthService: auth}).Init()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doJSON(t, router, tc.method, tc.path, "")

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInit_Root(t *testing.T) {
	router := newHandlerWith(t, &service.Services{}).Init()

	rec := doJSON(t, router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgAPIRunning, messageOf(t, rec))
}

// ---- Unknown routes and wrong methods answer with JSON 404 ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newHandlerWith(t, &service.Services{}).Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/api/users/unknown"},
		{http.MethodPost, "/api/version"},
		{http.MethodDelete, "/"},
		{http.MethodGet, "/api/users/login"},
		{http.MethodPatch, "/api/events/e-1"},
		{http.MethodGet, "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doJSON(t, router, tt.method, tt.path, "")

			assert.Equal(t, http.StatusNotFound, rec.Code, "CheckHTTPMethod should replace 405 with 404")
			assert.Equal(t, app.MsgRouteNotFound, messageOf(t, rec))
		})
	}
}

// ---- Cross-cutting middleware ----

func TestInit_TraceIDHeader(t *testing.T) {
	router := newHandlerWith(t, &service.Services{}).Init()

	rec := doJSON(t, router, http.MethodGet, "/", "")
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	req := newRequest(http.MethodGet, "/api/nope", "")
	req.Header.Set(traceIDHeader, "trace-42")
	rec = serve(router, req)
	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}

func TestInit_SecurityHeaders(t *testing.T) {
	router := newHandlerWith(t, &service.Services{}).Init()

	rec := doJSON(t, router, http.MethodGet, "/", "")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
}

func TestInit_CORSPreflight(t *testing.T) {
	cfg := config.StructuredConfig{Server: config.Server{AllowedOrigins: []string{"https://app.evently.example"}}}
	router := NewHandler(&service.Services{}, cfg, nil, logger.Nop()).Init()

	req := newRequest(http.MethodOptions, "/api/users/login", "")
	req.Header.Set("Origin", "https://app.evently.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(router, req)

	assert.Equal(t, "https://app.evently.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = newRequest(http.MethodOptions, "/api/users/login", "")
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = serve(router, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestInit_RateLimit(t *testing.T) {
	cfg := config.StructuredConfig{Server: config.Server{RateLimit: 2, RateWindow: time.Minute}}
	router := NewHandler(&service.Services{AppInfoService: &mockAppInfoService{}}, cfg, nil, logger.Nop()).Init()

	for i := 0; i < 2; i++ {
		rec := doJSON(t, router, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, app.MsgTooManyRequests, messageOf(t, rec))
}

func TestInit_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("evently_http_requests_total 1\n"))
	})
	router := NewHandler(&service.Services{}, config.StructuredConfig{}, metrics, logger.Nop()).Init()

	rec := doJSON(t, router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "evently_http_requests_total"))
}

func TestInit_PanicBecomesJSON500(t *testing.T) {
	events := &mockEventService{} // listFn is nil, so the handler panics
	router := newHandlerWith(t, &service.Services{EventService: events}).Init()

	rec := doJSON(t, router, http.MethodGet, "/api/events", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeBody[models.ErrorResponse](t, rec)
	assert.Equal(t, app.MsgInternalServerError, resp.Message)
	assert.NotEmpty(t, resp.Stack)
}

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAPI_HealthCheck(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	app.server.now = func() time.Time { return fixed }

	rr := httptest.NewRecorder()
	app.server.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"healthy","timestamp":"2024-05-01T12:00:00Z"}`, rr.Body.String())
}

func TestAPI_RootRedirect(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())

	resp := app.get(t, app.newClient(t), "/")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "http://localhost:3000", resp.Header.Get("Location"))
}

func TestAPI_NotFoundAndMethodNotAllowed(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())
	client := app.newClient(t)

	resp := app.get(t, client, "/api/does-not-exist")
	requireError(t, resp, http.StatusNotFound, "Not found")

	resp = app.do(t, client, http.MethodPut, "/api/auth/login", nil, "")
	requireError(t, resp, http.StatusMethodNotAllowed, "Method not allowed")
}

func TestAPI_CORS(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/photos/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr := httptest.NewRecorder()
	app.server.Routes().ServeHTTP(rr, req)

	require.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rr = httptest.NewRecorder()
	app.server.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_MetricsEndpoint(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())
	client := app.newClient(t)

	resp := app.get(t, client, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.get(t, client, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `http_requests_total{method="GET",route="/api/health",status="200"}`)
	require.Contains(t, string(body), "gallery_photos_uploaded_total")
}

func TestAPI_SwaggerDoc(t *testing.T) {
	app := newTestApp(t, newSQLiteStore(t), testConfig())

	resp := app.get(t, app.newClient(t), "/swagger/doc.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/photos/upload")
}

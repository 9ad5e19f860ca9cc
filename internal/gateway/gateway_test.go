package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhatje/Spur-AMP/internal/gateway/proxy"
)

type seen struct {
	method, path, query, auth, contentType, body string
}

func upstream(t *testing.T, name string, got *seen) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready" {
			w.WriteHeader(http.StatusOK)
			return
		}
		body, _ := io.ReadAll(r.Body)
		*got = seen{r.Method, r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization"), r.Header.Get("Content-Type"), string(body)}
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("X-Upstream", name)
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, name)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, conv, proj *seen) *fiber.App {
	t.Helper()
	app := fiber.New()
	Register(app,
		proxy.New("converter", upstream(t, "converter", conv).URL, time.Second),
		proxy.New("projects", upstream(t, "projects", proj).URL, time.Second))
	return app
}

func TestProxyRoutes(t *testing.T) {
	var conv, proj seen
	app := newGateway(t, &conv, &proj)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert/manufacturing?project=Cabin", strings.NewReader(`{"floors":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "converter", resp.Header.Get("X-Upstream"))
	assert.Equal(t, seen{"POST", "/manufacturing", "project=Cabin", "", "application/json", `{"floors":[]}`}, conv)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/projects/p1/panels?x=1&y=2&type=floor_panel", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "projects", string(body))
	assert.Equal(t, "/projects/p1/panels", proj.path)
	assert.Equal(t, "x=1&y=2&type=floor_panel", proj.query)
	assert.Equal(t, "Bearer tok", proj.auth)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(`{}`)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "/login", proj.path)
}

func TestReadiness(t *testing.T) {
	var conv, proj seen
	app := newGateway(t, &conv, &proj)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	down := fiber.New()
	Register(down,
		proxy.New("converter", "http://127.0.0.1:1", 200*time.Millisecond),
		proxy.New("projects", upstream(t, "projects", &proj).URL, time.Second))
	resp, err = down.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestUnreachableUpstream(t *testing.T) {
	app := fiber.New()
	Register(app, proxy.New("converter", "http://127.0.0.1:1", 200*time.Millisecond), proxy.New("projects", "http://127.0.0.1:1", 200*time.Millisecond))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/convert/revit", nil), fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestDocs(t *testing.T) {
	var conv, proj seen
	resp, err := newGateway(t, &conv, &proj).Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "openapi: 3.0.3"))
}

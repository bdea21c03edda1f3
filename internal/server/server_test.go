package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Gateway.Root = filepath.Join(t.TempDir(), "sandbox")
	// keeps gin in test mode
	cfg.Logging.Development = true
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)
	return srv
}

func do(srv *Server, method, target, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gateway.Prefix = "/metrics"

	_, err := NewServer(cfg, logging.NewNop())
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Gateway.Mode = config.ModeStatic
	cfg.Gateway.StaticDir = filepath.Join(t.TempDir(), "missing")

	_, err = NewServer(cfg, logging.NewNop())
	assert.ErrorIs(t, err, errNoStaticDir)
}

func TestGatewayMountedUnderPrefix(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	w := do(srv, http.MethodPost, "/api/writeFile?path=hello.txt", "text/plain", "Hello World!", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodGet, "/api/readFile?path=hello.txt", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World!", decode(t, w)["data"])

	onDisk, err := os.ReadFile(filepath.Join(cfg.Gateway.Root, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(onDisk))
}

func TestPrefixRootServesInfo(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	for _, target := range []string{"/api", "/api/"} {
		w := do(srv, http.MethodGet, target, "", "", nil)
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "Sandboxed filesystem API", decode(t, w)["message"], target)
	}
}

func TestCustomPrefix(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gateway.Prefix = "/fs/v1"
	srv := newTestServer(t, cfg)

	w := do(srv, http.MethodGet, "/fs/v1/methods", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["methods"], 14)

	w = do(srv, http.MethodGet, "/api/methods", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIModeRejectsOtherPaths(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	w := do(srv, http.MethodGet, "/index.html", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String())

	w = do(srv, http.MethodGet, "/api/unknown", "", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String())
}

func TestOptionsAndPreflight(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	w := do(srv, http.MethodOptions, "/api/writeFile", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodOptions, "/api/writeFile", "", "", map[string]string{
		"Origin":                        "http://client.test",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	w := do(srv, http.MethodGet, "/healthz", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.True(t, filepath.IsAbs(body["root"].(string)))

	do(srv, http.MethodGet, "/api/readFile?path=../escape", "", "", nil)

	w = do(srv, http.MethodGet, "/metrics", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fsgateway_rejected_paths_total 1")
	assert.Contains(t, w.Body.String(), `fsgateway_operations_total{op="readFile",outcome="error"} 1`)

	w = do(srv, http.MethodGet, "/metrics/json", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode(t, w)
	assert.Equal(t, float64(1), snap["rejected_paths"])
	assert.Equal(t, float64(1), snap["total_operations"])
	assert.Equal(t, float64(1), snap["failed_operations"])
	assert.GreaterOrEqual(t, snap["total_requests"].(float64), float64(3))
	assert.Contains(t, snap, "uptime_seconds")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	w := do(srv, http.MethodGet, "/healthz", "", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(srv, http.MethodGet, "/healthz", "", "", map[string]string{"X-Request-ID": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimitEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1
	srv := newTestServer(t, cfg)

	w := do(srv, http.MethodGet, "/healthz", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(srv, http.MethodGet, "/healthz", "", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestStaticMode(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>home</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "docs", "index.html"), []byte("<html>docs</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "blob"), []byte("%PDF-1.4\n"), 0o644))

	cfg := testConfig(t)
	cfg.Gateway.Mode = config.ModeStatic
	cfg.Gateway.StaticDir = staticDir
	srv := newTestServer(t, cfg)

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantType string
		wantBody string
	}{
		{name: "root index", target: "/", wantCode: http.StatusOK, wantType: "text/html", wantBody: "<html>home</html>"},
		{name: "nested index", target: "/docs/", wantCode: http.StatusOK, wantType: "text/html", wantBody: "<html>docs</html>"},
		{name: "by extension", target: "/app.css", wantCode: http.StatusOK, wantType: "text/css", wantBody: "body{}"},
		{name: "sniffed", target: "/blob", wantCode: http.StatusOK, wantType: "application/pdf", wantBody: "%PDF-1.4\n"},
		{name: "missing", target: "/nope.js", wantCode: http.StatusNotFound},
		{name: "traversal", target: "/../../etc/passwd", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(srv, http.MethodGet, tt.target, "", "", nil)
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			assert.Contains(t, w.Header().Get("Content-Type"), tt.wantType)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}

	w := do(srv, http.MethodPost, "/index.html", "text/plain", "x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(srv, http.MethodGet, "/api/methods", "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, testConfig(t))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.NoError(t, srv.Close())
}

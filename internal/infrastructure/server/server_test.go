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

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hostbridge/tests/helpers/testutil"
)

const bundleOrigin = "http://bundle.test"

type harness struct {
	server   *Server
	http     *httptest.Server
	platform *testutil.MockPlatform
	home     string
	apps     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ws := testutil.NewWorkspace(t)
	h := &harness{
		platform: testutil.NewMockPlatform(),
		home:     ws.Home,
		// Created by NewServer.
		apps: filepath.Join(ws.Root, "bundle"),
	}

	cfg := config.Default()
	cfg.Bridge.AppsPath = h.apps
	cfg.Bridge.AllowedOrigins = []string{bundleOrigin}
	cfg.Server.Port = "0"

	srv, err := NewServer(cfg,
		WithLogger(logging.NewNop()),
		WithPlatform(h.platform),
		WithHomeDir(ws.HomeDir()),
	)
	require.NoError(t, err)
	h.server = srv

	h.http = httptest.NewServer(srv.Handler())
	t.Cleanup(h.http.Close)
	return h
}

func (h *harness) syscall(t *testing.T, body string) map[string]any {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, h.http.URL+"/syscall", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Origin", bundleOrigin)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return reply
}

func TestNewServerCreatesAppsDir(t *testing.T) {
	h := newHarness(t)

	info, err := os.Stat(h.apps)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	reply := h.syscall(t, `{"syscall":"config","config":{"workspaces":{"music":"/mnt/music"}}}`)
	require.Equal(t, true, reply["success"])
	_, err = os.Stat(filepath.Join(h.apps, "config.json"))
	assert.NoError(t, err)
}

func TestSyscallWriteThenRead(t *testing.T) {
	h := newHarness(t)

	reply := h.syscall(t, `{"syscall":"write","path":"[home]/notes/todo.txt","data":"milk"}`)
	assert.Equal(t, true, reply["success"])
	assert.Equal(t, "file created", reply["status"])
	assert.Equal(t, filepath.Join(h.home, "notes", "todo.txt"), reply["realPath"])

	reply = h.syscall(t, `{"syscall":"read","path":"[home]/notes/todo.txt","ticket":9}`)
	assert.Equal(t, true, reply["success"])
	assert.Equal(t, "milk", reply["data"])
	assert.Equal(t, float64(9), reply["ticket"])

	reply = h.syscall(t, `{"syscall":"read","path":"[nowhere]/x"}`)
	assert.Equal(t, false, reply["success"])
	assert.Equal(t, "illegal path", reply["status"])
}

func TestSyscallRejectsForeignOrigin(t *testing.T) {
	h := newHarness(t)

	for _, o := range []string{"", "http://evil.test"} {
		req, err := http.NewRequest(http.MethodPost, h.http.URL+"/syscall",
			strings.NewReader(`{"syscall":"probe","path":"[home]"}`))
		require.NoError(t, err)
		if o != "" {
			req.Header.Set("Origin", o)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode, o)
		assert.Empty(t, body, o)
	}
}

func TestBridgeWebSocket(t *testing.T) {
	h := newHarness(t)

	url := "ws" + strings.TrimPrefix(h.http.URL, "http") + "/bridge"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {bundleOrigin}})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"syscall":"config","id":"c1"}`)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var reply struct {
		ID      string `json:"id"`
		Success bool   `json:"success"`
		Config  struct {
			AppsURL    string            `json:"appsUrl"`
			Workspaces map[string]string `json:"workspaces"`
		} `json:"config"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "c1", reply.ID)
	assert.True(t, reply.Success)
	assert.Equal(t, "http://127.0.0.1:0/apps/", reply.Config.AppsURL)
	assert.Equal(t, h.home, reply.Config.Workspaces["home"])
	assert.Equal(t, h.apps, reply.Config.Workspaces["apps"])

	_, _, err = websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.test"}})
	assert.Error(t, err)
}

func TestStaticBundleAndMetrics(t *testing.T) {
	h := newHarness(t)
	testutil.WriteFile(t, filepath.Join(h.apps, "index.html"), "<html>bundle</html>")

	resp, err := http.Get(h.http.URL + "/apps/index.html")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "bundle")

	h.syscall(t, `{"syscall":"probe","path":"[apps]/index.html"}`)

	resp, err = http.Get(h.http.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `bridge_syscalls_total{status="ok",syscall="probe"} 1`)

	resp, err = http.Get(h.http.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOpenUsesPlatform(t *testing.T) {
	h := newHarness(t)
	h.platform.On("OpenURL", "https://example.com").Return(nil).Once()
	h.platform.On("OpenFile", filepath.Join(h.home, "report.pdf")).Return(nil).Once()

	reply := h.syscall(t, `{"syscall":"open","url":"https://example.com"}`)
	assert.Equal(t, true, reply["success"])

	reply = h.syscall(t, `{"syscall":"open","path":"[home]/report.pdf"}`)
	assert.Equal(t, true, reply["success"])

	h.platform.AssertExpectations(t)
}

func TestQuitIntentStopsServe(t *testing.T) {
	h := newHarness(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- h.server.Serve(context.Background(), ln)
	}()

	body := strings.NewReader(`{"intent":"quit"}`)
	req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/syscall", body)
	require.NoError(t, err)
	req.Header.Set("Origin", bundleOrigin)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after quit intent")
	}

	select {
	case <-h.server.Quit():
	default:
		t.Fatal("quit channel not closed")
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	h := newHarness(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.server.Serve(ctx, ln)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

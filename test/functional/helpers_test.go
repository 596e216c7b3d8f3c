//go:build functional

// Package functional provides functional tests that drive the items
// API over a real listener.
package functional

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"itemsvc/internal/config"
	"itemsvc/internal/model"
	"itemsvc/internal/server"
	"itemsvc/internal/store"
)

// Environment variable names for test configuration.
const (
	EnvTestServerHost = "TEST_SERVER_HOST"
	EnvTestServerPort = "TEST_SERVER_PORT"
	EnvTestLogLevel   = "TEST_LOG_LEVEL"
)

// Default test configuration values.
const (
	DefaultTestHost         = "localhost"
	DefaultTestPort         = 0 // 0 means auto-assign
	DefaultRequestTimeout   = 5 * time.Second
	DefaultWebSocketTimeout = 10 * time.Second
	DefaultShutdownTimeout  = 5 * time.Second
	DefaultReadyTimeout     = 10 * time.Second
)

// TestConfig holds test configuration loaded from environment.
type TestConfig struct {
	Host string
	Port int
}

// LoadTestConfig loads test configuration from environment variables.
func LoadTestConfig() *TestConfig {
	cfg := &TestConfig{
		Host: DefaultTestHost,
		Port: DefaultTestPort,
	}

	if host := os.Getenv(EnvTestServerHost); host != "" {
		cfg.Host = host
	}

	if portStr := os.Getenv(EnvTestServerPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}

	return cfg
}

// TestServer wraps the server for functional testing.
type TestServer struct {
	Server  *server.Server
	Store   *store.MemoryStore
	BaseURL string

	t      *testing.T
	errCh  chan error
	cancel context.CancelFunc
}

// NewTestServer creates a server on a free port with a seeded store.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testCfg := LoadTestConfig()
	port := testCfg.Port
	if port == 0 {
		port = freePort(t)
	}

	cfg := &config.Config{
		ServerPort:      port,
		LogLevel:        "error",
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  false,
	}

	itemStore := store.NewSeededStore()
	srv := server.New(cfg, zap.NewNop(), itemStore)

	return &TestServer{
		Server:  srv,
		Store:   itemStore,
		BaseURL: fmt.Sprintf("http://%s:%d", testCfg.Host, port),
		t:       t,
		errCh:   make(chan error, 1),
	}
}

// Start launches the server and waits until it answers health checks.
func (ts *TestServer) Start() {
	ts.t.Helper()

	go func() {
		ts.errCh <- ts.Server.Start()
	}()

	deadline := time.Now().Add(DefaultReadyTimeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(ts.BaseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		select {
		case err := <-ts.errCh:
			ts.t.Fatalf("server exited before becoming ready: %v", err)
		default:
		}
		time.Sleep(50 * time.Millisecond)
	}

	ts.t.Fatal("server did not become ready in time")
}

// Stop shuts the server down gracefully.
func (ts *TestServer) Stop() {
	ts.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := ts.Server.Shutdown(ctx); err != nil {
		ts.t.Errorf("server shutdown failed: %v", err)
	}

	if err := <-ts.errCh; err != nil {
		ts.t.Errorf("server returned error: %v", err)
	}
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	defer func() {
		_ = l.Close()
	}()

	return l.Addr().(*net.TCPAddr).Port
}

// HTTPClient is a thin helper around http.Client for API requests.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
}

// NewHTTPClient creates an HTTPClient for the given base URL.
func NewHTTPClient(t *testing.T, baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultRequestTimeout},
		t:       t,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}

	return resp
}

// Get performs a GET request against the API.
func (c *HTTPClient) Get(ctx context.Context, path string) *http.Response {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body []byte) *http.Response {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *HTTPClient) Put(ctx context.Context, path string, body []byte) *http.Response {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request against the API.
func (c *HTTPClient) Delete(ctx context.Context, path string) *http.Response {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// ReadBody reads and closes the response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return string(data)
}

// DecodeItem decodes and closes a single-item response body.
func DecodeItem(t *testing.T, resp *http.Response) model.Item {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	var item model.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode item: %v", err)
	}

	return item
}

// DecodeItems decodes and closes an item-list response body.
func DecodeItems(t *testing.T, resp *http.Response) []model.Item {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	var items []model.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode items: %v", err)
	}

	return items
}

// AssertStatusCode fails the test if the response status differs.
func AssertStatusCode(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// requestCtx returns a context bounded by the default request timeout.
func requestCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	t.Cleanup(cancel)
	return ctx
}

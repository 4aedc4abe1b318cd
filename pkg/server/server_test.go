// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikstur/uapi-version/pkg/defaults"
	"github.com/nikstur/uapi-version/pkg/version"
	"golang.org/x/time/rate"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")
	return New(WithName("uapi-version-test"), WithVersion("0.0.0-test"))
}

func TestNew(t *testing.T) {
	s := newTestServer(t)

	if s.config == nil {
		t.Error("expected config to be initialized")
	}
	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}
	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}
	if s.config.Name != "uapi-version-test" {
		t.Errorf("expected name uapi-version-test, got %s", s.config.Name)
	}
	if s.isReady() {
		t.Error("expected new server not to be ready")
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := &Config{
		Address:         "127.0.0.1",
		Port:            9999,
		RateLimit:       5,
		RateLimitBurst:  1,
		MaxVersions:     10,
		ShutdownTimeout: time.Second,
	}
	s := New(WithConfig(cfg), WithVersion("1.2.3"))

	if s.httpServer.Addr != "127.0.0.1:9999" {
		t.Errorf("expected addr 127.0.0.1:9999, got %s", s.httpServer.Addr)
	}
	if s.rateLimiter.Burst() != 1 {
		t.Errorf("expected burst 1, got %d", s.rateLimiter.Burst())
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("expected version applied to config, got %s", cfg.Version)
	}

	// nil config keeps the defaults
	if s := New(WithConfig(nil)); s.config == nil {
		t.Error("expected default config")
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rec.Code)
	}

	rec = serve(t, s, http.MethodGet, "/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected ready 503 before start, got %d", rec.Code)
	}

	s.SetReady(true)
	rec = serve(t, s, http.MethodGet, "/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected ready 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ready" {
		t.Errorf("expected status ready, got %s", resp.Status)
	}
	if resp.Service != "uapi-version-test" || resp.Version != "0.0.0-test" {
		t.Errorf("unexpected identity %s %s", resp.Service, resp.Version)
	}
	if resp.Precedence != version.Precedence {
		t.Errorf("unexpected precedence %q", resp.Precedence)
	}
	if resp.Limits == nil {
		t.Fatal("expected limits in ready response")
	}
	if resp.Limits.MaxVersions != defaults.ServerMaxVersions {
		t.Errorf("expected max versions %d, got %d", defaults.ServerMaxVersions, resp.Limits.MaxVersions)
	}
	if resp.Limits.MaxBodyBytes != defaults.MaxInputBytes {
		t.Errorf("expected max body bytes %d, got %d", defaults.MaxInputBytes, resp.Limits.MaxBodyBytes)
	}
	if resp.Limits.RateLimit != defaults.ServerRateLimit || resp.Limits.RateBurst != defaults.ServerRateLimitBurst {
		t.Errorf("unexpected rate limits %+v", resp.Limits)
	}

	rec = serve(t, s, http.MethodPost, "/health", "", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodGet {
		t.Errorf("expected Allow GET, got %q", rec.Header().Get("Allow"))
	}
}

func TestReady_NotReadyOmitsLimits(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, http.MethodGet, "/ready", "", "")
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "not_ready" || resp.Reason == "" {
		t.Errorf("unexpected not-ready response %+v", resp)
	}
	if resp.Limits != nil || resp.Precedence != "" {
		t.Errorf("expected no limits before ready, got %+v", resp)
	}
}

func TestReady_UnlimitedRate(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = rate.Inf
	s := New(WithConfig(cfg))
	s.SetReady(true)

	rec := serve(t, s, http.MethodGet, "/ready", "", "")
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Limits == nil || resp.Limits.RateLimit != 0 {
		t.Errorf("expected zero rate limit when unlimited, got %+v", resp.Limits)
	}
}

func TestDefaultRoute(t *testing.T) {
	s := newTestServer(t)

	rec := serve(t, s, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Routes  []string `json:"routes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "uapi-version-test" || resp.Version != "0.0.0-test" {
		t.Errorf("unexpected identity %s %s", resp.Name, resp.Version)
	}
	if len(resp.Routes) != len(routes) {
		t.Errorf("expected %d routes, got %d", len(routes), len(resp.Routes))
	}

	rec = serve(t, s, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Generate at least one instrumented request.
	serve(t, s, http.MethodGet, "/v1/compare?a=1&b=2", "", "")

	rec := serve(t, s, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{
		"uapi_version_http_requests_total",
		"uapi_version_versions_per_request",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("expected metric %s in output", name)
		}
	}
}

func TestServeAndShutdown(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	base := fmt.Sprintf("http://%s", ln.Addr().String())
	var resp *http.Response
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err = http.Get(base + "/ready")
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never became ready: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if s.isReady() {
		t.Error("expected server not ready after shutdown")
	}
}

func TestServeNotifiesServiceManager(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "notify.sock")
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: sockPath, Net: "unixgram"})
	if err != nil {
		t.Skipf("unix datagram sockets unavailable: %v", err)
	}
	defer func() { _ = conn.Close() }()
	t.Setenv("NOTIFY_SOCKET", sockPath)

	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	read := func() string {
		t.Helper()
		buf := make([]byte, 256)
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		n, err := conn.Read(buf)
		if err != nil {
			t.Fatalf("failed to read notification: %v", err)
		}
		return string(buf[:n])
	}

	if got := read(); got != "READY=1" {
		t.Errorf("expected READY=1, got %q", got)
	}

	cancel()
	if got := read(); got != "STOPPING=1" {
		t.Errorf("expected STOPPING=1, got %q", got)
	}

	if err := <-done; err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

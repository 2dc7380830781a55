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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"
)

// validateRoute stands in for the pet spec API: it echoes the body with a
// 200, or 422 when the body is "invalid".
func validateRoute() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /v1/validate": func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				WriteError(w, r, http.StatusRequestEntityTooLarge, "INVALID_REQUEST", err.Error(), false, nil)
				return
			}
			if string(body) == "invalid" {
				Annotate(r.Context(), "valid", false)
				WriteError(w, r, http.StatusUnprocessableEntity, "INVALID_SPEC", "invalid spec", false, nil)
				return
			}
			Annotate(r.Context(), "valid", true)
			_, _ = w.Write(body)
		},
	}
}

func serve(h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestNew(t *testing.T) {
	s := New(WithHandler(validateRoute()))

	if s.config == nil || s.httpServer == nil || s.rateLimiter == nil {
		t.Fatal("expected config, http server and rate limiter to be initialized")
	}
	if s.config.Name != "server" {
		t.Errorf("expected default name server, got %s", s.config.Name)
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		t.Error("expected default root handler")
	}
	if s.isReady() {
		t.Error("server must not be ready before Start")
	}
}

func TestOptions(t *testing.T) {
	s := New(WithName("petspecd"), WithVersion("v0.3.0"))

	if s.config.Name != "petspecd" {
		t.Errorf("expected name petspecd, got %s", s.config.Name)
	}
	if s.config.Version != "v0.3.0" {
		t.Errorf("expected version v0.3.0, got %s", s.config.Version)
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "petspecd"
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := New(WithConfig(cfg))

	if s.config.Name != "petspecd" || s.config.Port != 9090 || s.config.RateLimit != 500 {
		t.Errorf("config not applied: %+v", s.config)
	}
	if s.config == cfg {
		t.Error("expected server to keep its own copy of the config")
	}
}

func TestWithConfig_KeepsEarlierHandlers(t *testing.T) {
	fromConfig := func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "config") }

	cfg := NewConfig()
	cfg.Handlers = map[string]http.HandlerFunc{
		"GET /v1/version": fromConfig,
		"GET /v1/shared":  fromConfig,
	}

	s := New(
		WithHandler(validateRoute()),
		WithHandler(map[string]http.HandlerFunc{
			"GET /v1/shared": func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "option") },
		}),
		WithConfig(cfg),
	)
	h := s.Handler()

	if w := serve(h, http.MethodPost, "/v1/validate", "{}"); w.Code != http.StatusOK {
		t.Errorf("handler added before WithConfig was lost: %d", w.Code)
	}
	if w := serve(h, http.MethodGet, "/v1/version", ""); w.Body.String() != "config" {
		t.Errorf("expected config handler, got %d %q", w.Code, w.Body.String())
	}
	if w := serve(h, http.MethodGet, "/v1/shared", ""); w.Body.String() != "config" {
		t.Errorf("expected config to win on a shared pattern, got %q", w.Body.String())
	}
	if len(cfg.Handlers) != 2 {
		t.Errorf("WithConfig must not modify the caller's handlers, got %d", len(cfg.Handlers))
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := New(WithVersion("v0.3.0")).Handler()

	w := serve(h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	resp := decodeHealth(t, w)
	if resp.Status != statusHealthy || resp.Version != "v0.3.0" {
		t.Errorf("unexpected health response %+v", resp)
	}

	if w := serve(h, http.MethodPost, "/health", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	errStale := errors.New("validator rejected sample spec")
	failing := true

	s := New(
		WithReadinessCheck("always", func(context.Context) error { return nil }),
		WithReadinessCheck("validator", func(context.Context) error {
			if failing {
				return errStale
			}
			return nil
		}),
	)
	h := s.Handler()

	t.Run("not serving", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/ready", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
		}
		if resp := decodeHealth(t, w); resp.Status != statusNotReady || resp.Checks != nil {
			t.Errorf("checks must not run before the server listens: %+v", resp)
		}
	})

	s.setReady(true)

	t.Run("failing check", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/ready", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
		}
		resp := decodeHealth(t, w)
		if resp.Checks["validator"] != errStale.Error() || resp.Checks["always"] != checkOK {
			t.Errorf("unexpected check results %v", resp.Checks)
		}
		if resp.Reason == "" {
			t.Error("expected reason for not ready")
		}
	})

	failing = false

	t.Run("all checks pass", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/ready", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if resp := decodeHealth(t, w); resp.Status != statusReady || len(resp.Checks) != 2 {
			t.Errorf("unexpected ready response %+v", resp)
		}
	})
}

func TestReadyEndpoint_CheckDeadline(t *testing.T) {
	s := New(WithReadinessCheck("slow", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("no deadline")
		}
		return nil
	}))
	s.setReady(true)

	if w := serve(s.Handler(), http.MethodGet, "/ready", ""); w.Code != http.StatusOK {
		t.Errorf("expected checks to run under a deadline, got %d %s", w.Code, w.Body.String())
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 0.5
	cfg.RateLimitBurst = 1
	h := New(WithConfig(cfg), WithHandler(validateRoute())).Handler()

	if w := serve(h, http.MethodPost, "/v1/validate", "{}"); w.Code != http.StatusOK {
		t.Fatalf("first request: expected status %d, got %d", http.StatusOK, w.Code)
	}

	w := serve(h, http.MethodPost, "/v1/validate", "{}")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "2" {
		t.Errorf("expected Retry-After 2 at half a request per second, got %q", got)
	}

	if w := serve(h, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("system endpoints bypass the rate limit, got %d", w.Code)
	}
}

func TestHandler_RoutesThroughMux(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxBodyBytes = 8
	h := New(WithConfig(cfg), WithHandler(validateRoute())).Handler()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"valid spec", http.MethodPost, "/v1/validate", "{}", http.StatusOK},
		{"invalid spec", http.MethodPost, "/v1/validate", "invalid", http.StatusUnprocessableEntity},
		{"body over limit", http.MethodPost, "/v1/validate", "much more than eight bytes", http.StatusRequestEntityTooLarge},
		{"wrong method", http.MethodGet, "/v1/validate", "", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/v1/nope", "", http.StatusNotFound},
		{"root", http.MethodGet, "/", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := serve(h, tt.method, tt.target, tt.body); w.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}

	t.Run("metrics count validate route", func(t *testing.T) {
		w := serve(h, http.MethodGet, "/metrics", "")
		if !strings.Contains(w.Body.String(), `petspec_http_requests_total{method="POST",path="POST /v1/validate",status="422"}`) {
			t.Error("expected request counter labeled by route pattern")
		}
	})
}

func TestRootHandler(t *testing.T) {
	h := New(WithName("petspecd"), WithHandler(validateRoute())).Handler()

	w := serve(h, http.MethodGet, "/", "")
	var resp struct {
		Name   string   `json:"name"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Name != "petspecd" {
		t.Errorf("expected name petspecd, got %s", resp.Name)
	}
	want := []string{patternHealth, patternMetrics, patternReady, "POST /v1/validate"}
	if !slices.Equal(resp.Routes, want) {
		t.Errorf("expected routes %v, got %v", want, resp.Routes)
	}

	if w := serve(h, http.MethodPost, "/", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	h := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "custom") },
	})).Handler()

	if w := serve(h, http.MethodGet, "/", ""); w.Body.String() != "custom" {
		t.Errorf("expected custom root handler, got %q", w.Body.String())
	}
}

func TestStart_GracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond
	s := New(WithConfig(cfg), WithHandler(validateRoute()))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	deadline := time.Now().Add(time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !s.isReady() {
		t.Fatal("server did not become ready")
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
	if s.isReady() {
		t.Error("server must not report ready after shutdown")
	}
}

func TestStart_ListenError(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = -1
	s := New(WithConfig(cfg))

	done := make(chan error, 1)
	go func() { done <- s.Start(t.Context()) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected listen error for invalid port")
		}
	case <-time.After(time.Second):
		t.Error("Start did not return on listen error")
	}
}

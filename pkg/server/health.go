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
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m3org/petspec/pkg/defaults"
	"github.com/m3org/petspec/pkg/serializer"
)

const (
	statusHealthy  = "healthy"
	statusReady    = "ready"
	statusNotReady = "not_ready"

	// checkOK is reported for a readiness check that returned nil.
	checkOK = "ok"
)

// ReadinessCheck reports whether something the server depends on can
// serve traffic. It must return once ctx is done.
type ReadinessCheck func(ctx context.Context) error

// WithReadinessCheck registers a named check that runs on every GET /ready.
// A failing check turns the response into 503.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) {
		if s.checks == nil {
			s.checks = make(map[string]ReadinessCheck)
		}
		s.checks[name] = check
	}
}

// handleHealth handles GET /health. It only reports that the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    statusHealthy,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
	})
}

// handleReady handles GET /ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  statusReady,
		Version: s.config.Version,
	}

	if !s.isReady() {
		resp.Status = statusNotReady
		resp.Reason = "server is not accepting connections"
		resp.Timestamp = time.Now().UTC()
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Checks = s.runReadinessChecks(r.Context())
	resp.Timestamp = time.Now().UTC()

	for _, result := range resp.Checks {
		if result != checkOK {
			resp.Status = statusNotReady
			resp.Reason = "readiness check failed"
			serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// runReadinessChecks runs all checks concurrently under a shared deadline
// and returns checkOK or the error text for each.
func (s *Server) runReadinessChecks(ctx context.Context) map[string]string {
	if len(s.checks) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ReadinessCheckTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]string, len(s.checks))
	)
	for name, check := range s.checks {
		g.Go(func() error {
			result := checkOK
			if err := check(ctx); err != nil {
				slog.Warn("readiness check failed", "check", name, "error", err)
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

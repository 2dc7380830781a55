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
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pserrors "github.com/m3org/petspec/pkg/errors"
	"github.com/m3org/petspec/pkg/serializer"
)

const (
	patternHealth  = "GET /health"
	patternReady   = "GET /ready"
	patternMetrics = "GET /metrics"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// System endpoints bypass the middleware chain
	mux.HandleFunc(patternHealth, s.handleHealth)
	mux.HandleFunc(patternReady, s.handleReady)
	mux.Handle(patternMetrics, promhttp.Handler())

	// API endpoints with middleware
	for pattern, handler := range s.config.Handlers {
		if pattern == "/" {
			// root only, so unknown paths and methods get the mux's 404/405
			pattern = "/{$}"
		}
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return mux
}

// rootHandler lists the server routes. It is installed at "/" unless the
// caller registered its own root handler.
func (s *Server) rootHandler(routes []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling default route",
			"path", r.URL.Path,
			"method", r.Method,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, r, http.StatusMethodNotAllowed, pserrors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, map[string]any{"method": r.Method})
			return
		}

		resp := struct {
			Name      string   `json:"name"`
			Version   string   `json:"version"`
			Ready     bool     `json:"ready"`
			Timestamp string   `json:"timestamp"`
			Routes    []string `json:"routes"`
		}{
			Name:      s.config.Name,
			Version:   s.config.Version,
			Ready:     s.isReady(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Routes:    routes,
		}

		serializer.RespondJSON(w, http.StatusOK, resp)
	}
}

// routeList returns the registered patterns plus the system endpoints.
func (s *Server) routeList() []string {
	routes := []string{patternHealth, patternReady, patternMetrics}
	for pattern := range s.config.Handlers {
		if pattern != "/" {
			routes = append(routes, pattern)
		}
	}
	slices.Sort(routes)
	return routes
}

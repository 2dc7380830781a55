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

// Package server provides the HTTP server shared by petspec services.
//
// # Architecture
//
// The server is stateless and wraps caller-supplied handlers in a
// middleware chain, outermost first:
//
//   - Prometheus RED metrics per route pattern
//   - Request ID tracking (X-Request-Id, UUID)
//   - One log line per request, carrying attributes added with Annotate
//   - Panic recovery
//   - API version taken from the route's /vN prefix (X-API-Version); an
//     Accept header naming another version gets 406
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request body size limit
//
// System endpoints bypass the chain:
//
//   - GET /health  - process liveness
//   - GET /ready   - 200 once listening and every WithReadinessCheck passes
//   - GET /metrics - Prometheus metrics
//
// # Usage
//
//	s := server.New(
//	    server.WithName("petspecd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "POST /v1/validate": h.HandleValidate,
//	    }),
//	    server.WithReadinessCheck("validator", h.SelfCheck),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// WithConfig copies its argument and keeps handlers registered by earlier
// WithHandler options.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests for up to Config.ShutdownTimeout.
//
// # Configuration
//
// NewConfig starts from pkg/defaults and applies these environment variables:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget
//	RATE_LIMIT                requests per second
//	RATE_LIMIT_BURST          token bucket size
//	MAX_BODY_BYTES            request body limit
//
// # Errors
//
// Errors are returned as ErrorResponse JSON with a code, message, request ID
// and retryable flag. WriteErrorFromErr maps pkg/errors StructuredError codes
// to HTTP statuses.
package server

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

// Package api provides the HTTP API layer for petspecd, the pet spec
// validation service.
//
// # Usage
//
//	import (
//	    "log"
//	    "github.com/m3org/petspec/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Registering the /v1 route handlers
//   - Registering the "validator" readiness check, which validates a
//     built-in spec at the supported version (Handler.SelfCheck)
//   - Adding the validation outcome (valid, code) to the request log line
//   - Delegating server lifecycle management to pkg/server
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - POST /v1/validate - Validate a pet spec sent as the request body
//   - GET /v1/version   - Build version and the newest supported spec version
//
// System Endpoints (no rate limiting):
//   - GET /health  - Process liveness
//   - GET /ready   - Readiness, including the validator self check
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /v1/validate)
//
// The body is a single pet spec document in JSON, or YAML when the request
// carries a YAML content type (application/yaml, application/x-yaml).
// Bodies larger than MAX_BODY_BYTES are rejected with 413.
//
// The optional "require" query parameter adds a version constraint:
//
//	curl -X POST 'http://localhost:8080/v1/validate?require=%3E%3D0.1.0' \
//	  -H "Content-Type: application/yaml" \
//	  --data-binary @rex.yaml
//
// # Responses
//
// An accepted spec returns 200 with the normalized record:
//
//	{"kind":"SpecValidation","apiVersion":"petspec.m3org.dev/v1alpha1",
//	 "valid":true,"spec":{"type":"M3_pet","emotes":[],...}}
//
// A rejected spec returns 422 with the first violation found:
//
//	{"valid":false,"code":"INVALID_ATTRIBUTE","message":"invalid 'type' attribute",
//	 "field":"type","suggestion":"did you mean \"M3_pet\"?"}
//
// Bodies that cannot be decoded return 400 with a server.ErrorResponse.
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - RATE_LIMIT, RATE_LIMIT_BURST: Token bucket settings
//   - MAX_BODY_BYTES: Request body limit
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown budget
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/m3org/petspec/pkg/api.version=1.0.0'"
package api

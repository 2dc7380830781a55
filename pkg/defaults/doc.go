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

// Package defaults provides centralized configuration constants for petspec.
//
// This package defines timeout values, limits, and other configuration
// defaults used across the codebase.
//
// # Categories
//
//   - Handler limits: per-request timeout and body size for the API
//   - Server timeouts and rate limits: HTTP server configuration
//   - HTTP client timeouts: fetching specs from URLs
//   - CLI defaults: command timeout and load concurrency
//
// # Usage
//
//	import "github.com/m3org/petspec/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CLIValidateTimeout)
//	defer cancel()
package defaults

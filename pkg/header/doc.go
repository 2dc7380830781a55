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

// Package header provides the common document header for petspec output.
//
// Every document petspec writes (validation reports, API responses) starts
// with a Kubernetes-style header:
//
//	kind: ValidationResult
//	apiVersion: petspec.m3org.dev/v1alpha1
//	metadata:
//	  timestamp: "2026-03-02T10:30:00Z"
//	  version: v0.3.0
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindValidationResult, header.APIVersion, buildVersion)
//
// The header is embedded inline, so it serializes as top-level fields of
// the enclosing document.
//
// Timestamps use RFC3339 in UTC.
package header

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
	"mime"
	"strings"
)

const (
	// DefaultAPIVersion is reported for routes without a /vN prefix.
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix starts the media types that select an API version,
	// e.g. application/vnd.m3org.petspec.v1+json.
	vendorMediaPrefix = "application/vnd.m3org.petspec."
)

// routeAPIVersion returns the version segment leading a mux pattern such as
// "POST /v1/validate", or "" when the route is unversioned.
func routeAPIVersion(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		pattern = path
	}
	seg, _, _ := strings.Cut(strings.TrimPrefix(pattern, "/"), "/")
	if isAPIVersion(seg) {
		return seg
	}
	return ""
}

// requestedAPIVersion returns the version named by the first vendor media
// type in an Accept header, or "" when the client did not ask for one.
func requestedAPIVersion(accept string) string {
	for part := range strings.SplitSeq(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		rest, ok := strings.CutPrefix(mt, vendorMediaPrefix)
		if !ok {
			continue
		}
		v, _, _ := strings.Cut(rest, "+")
		if isAPIVersion(v) {
			return v
		}
	}
	return ""
}

// isAPIVersion reports whether s has the form v<digits>.
func isAPIVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

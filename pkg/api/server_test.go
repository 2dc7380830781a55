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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3org/petspec/pkg/header"
	"github.com/m3org/petspec/pkg/server"
)

const validSpec = `{
  "type": "M3_pet",
  "version": [0, 1, 0],
  "name": "Rex",
  "description": "A dog",
  "model": "https://cdn.example.com/rex.glb",
  "speed": 1.5,
  "near": 2,
  "far": 10
}`

// TestConstants verifies package constants are properly defined
func TestConstants(t *testing.T) {
	assert.Equal(t, "petspecd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestRoutes(t *testing.T) {
	routes := NewHandler("test").Routes()
	assert.Len(t, routes, 2)
	assert.NotNil(t, routes["POST /v1/validate"])
	assert.NotNil(t, routes["GET /v1/version"])
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return server.New(server.WithHandler(NewHandler("v0.3.0").Routes())).Handler()
}

func post(t *testing.T, h http.Handler, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ValidateResponse {
	t.Helper()
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestHandleValidate_Valid(t *testing.T) {
	before := testutil.ToFloat64(validationsTotal.WithLabelValues(ResultValid))

	w := post(t, newTestServer(t), "/v1/validate", "application/json", validSpec)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.True(t, resp.Valid)
	assert.Equal(t, header.KindSpecValidation, resp.Kind)
	assert.Empty(t, resp.Code)

	spec, ok := resp.Spec.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Rex", spec["name"])
	assert.Equal(t, []any{}, spec["emotes"], "emotes default is filled in")

	assert.Equal(t, before+1, testutil.ToFloat64(validationsTotal.WithLabelValues(ResultValid)))
}

func TestHandleValidate_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		code       string
		message    string
		field      string
		emote      *int
		suggestion string
	}{
		{
			name:    "null",
			body:    "null",
			code:    "INVALID",
			message: "invalid",
		},
		{
			name:    "array",
			body:    "[1,2]",
			code:    "MISSING_ATTRIBUTE",
			message: "missing 'type' attribute",
			field:   "type",
		},
		{
			name:       "type typo",
			body:       strings.Replace(validSpec, `"M3_pet"`, `"M3_Pet"`, 1),
			code:       "INVALID_ATTRIBUTE",
			message:    "invalid 'type' attribute",
			field:      "type",
			suggestion: `did you mean "M3_pet"?`,
		},
		{
			name:    "future version",
			body:    strings.Replace(validSpec, "[0, 1, 0]", "[0, 2, 0]", 1),
			code:    "UNSUPPORTED_VERSION",
			message: "unsupported version",
		},
		{
			name:    "bad model",
			body:    strings.Replace(validSpec, "rex.glb", "rex.gltf", 1),
			code:    "INVALID_URL",
			message: "invalid 'model' url",
			field:   "model",
		},
		{
			name:    "emote missing animation",
			body:    strings.Replace(validSpec, `"far": 10`, `"far": 10, "emotes": [{"name": "sit", "animation": "a"}, {"name": "jump"}]`, 1),
			code:    "MISSING_EMOTE_ATTRIBUTE",
			message: "missing emote 'animation' attribute",
			field:   "animation",
			emote:   ptr(1),
		},
	}

	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(validationsTotal.WithLabelValues(tt.code))

			w := post(t, h, "/v1/validate", "application/json", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			resp := decode(t, w)
			assert.False(t, resp.Valid)
			assert.Nil(t, resp.Spec)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.field, resp.Field)
			assert.Equal(t, tt.emote, resp.Emote)
			assert.Equal(t, tt.suggestion, resp.Suggestion)

			assert.Equal(t, before+1, testutil.ToFloat64(validationsTotal.WithLabelValues(tt.code)))
		})
	}
}

func ptr(i int) *int { return &i }

func TestHandleValidate_YAML(t *testing.T) {
	body := "type: M3_pet\nversion: [0, 0, 9]\nname: Rex\ndescription: A dog\n" +
		"model: http://cdn.example.com/rex.glb\nspeed: 1\nnear: 0\nfar: 5\n"

	w := post(t, newTestServer(t), "/v1/validate", "application/yaml", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode(t, w).Valid)
}

func TestHandleValidate_Constraint(t *testing.T) {
	h := newTestServer(t)

	w := post(t, h, "/v1/validate?require=%3E%3D+0.1.0", "application/json", validSpec)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	old := strings.Replace(validSpec, "[0, 1, 0]", "[0, 0, 1]", 1)
	w = post(t, h, "/v1/validate?require=%3E%3D+0.1.0", "application/json", old)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Equal(t, "VERSION_CONSTRAINT", decode(t, w).Code)

	w = post(t, h, "/v1/validate?require=latest", "application/json", validSpec)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestHandleValidate_BadRequests(t *testing.T) {
	h := newTestServer(t)
	oversized := strings.Repeat("x", 2<<20)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{"malformed json", "application/json", `{"type":`, http.StatusBadRequest},
		{"malformed yaml", "application/yaml", "type: [M3_pet\n", http.StatusBadRequest},
		{"empty body", "application/json", "", http.StatusBadRequest},
		{"blank yaml body", "application/x-yaml", " \n", http.StatusBadRequest},
		{"too large json", "application/json", `{"name":"` + oversized + `"}`, http.StatusRequestEntityTooLarge},
		{"too large yaml", "application/yaml", "name: " + oversized + "\n", http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/v1/validate", tt.contentType, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestHandleValidate_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
	w := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/version", nil)
	w := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp VersionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, VersionResponse{Version: "v0.3.0", SupportedSpecVersion: "0.1.0"}, resp)
}

func TestHandleValidate_Concurrent(t *testing.T) {
	h := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(validSpec))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()
}

func TestSelfCheck(t *testing.T) {
	h := NewHandler("v0.3.0")
	assert.NoError(t, h.SelfCheck(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, h.SelfCheck(ctx), context.Canceled)
}

func TestHandleValidate_RequestLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := post(t, newTestServer(t), "/v1/validate", "application/json",
		strings.Replace(validSpec, `"M3_pet"`, `"M3-pet"`, 1))
	resp := decode(t, w)
	require.False(t, resp.Valid)

	var entry map[string]any
	for line := range bytes.Lines(buf.Bytes()) {
		var e map[string]any
		require.NoError(t, json.Unmarshal(line, &e))
		if e["msg"] == "request completed" {
			entry = e
		}
	}
	require.NotNil(t, entry, buf.String())
	assert.Equal(t, "POST /v1/validate", entry["route"])
	assert.Equal(t, false, entry["valid"])
	assert.Equal(t, resp.Code, entry["code"])
	assert.Equal(t, float64(w.Code), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["requestID"])
}

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
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/m3org/petspec/pkg/defaults"
	pserrors "github.com/m3org/petspec/pkg/errors"
	"github.com/m3org/petspec/pkg/header"
	"github.com/m3org/petspec/pkg/petspec"
	"github.com/m3org/petspec/pkg/serializer"
	"github.com/m3org/petspec/pkg/server"
	"github.com/m3org/petspec/pkg/validator"
)

// ResultValid labels accepted specs in petspec_validations_total; rejected
// specs are labeled with their error code.
const ResultValid = "valid"

var validationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "petspec_validations_total",
		Help: "Total number of pet specs validated through the API, by result",
	},
	[]string{"result"},
)

// Handler serves the pet spec API.
type Handler struct {
	version string
}

// NewHandler returns a Handler reporting the given build version.
func NewHandler(version string) *Handler {
	return &Handler{version: version}
}

// ValidateResponse is the body of POST /v1/validate.
type ValidateResponse struct {
	header.Header `json:",inline" yaml:",inline"`

	Valid bool `json:"valid" yaml:"valid"`

	// Spec is the normalized record of an accepted spec.
	Spec any `json:"spec,omitempty" yaml:"spec,omitempty"`

	Code       string `json:"code,omitempty" yaml:"code,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	Emote      *int   `json:"emote,omitempty" yaml:"emote,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// VersionResponse is the body of GET /v1/version.
type VersionResponse struct {
	Version              string `json:"version" yaml:"version"`
	SupportedSpecVersion string `json:"supportedSpecVersion" yaml:"supportedSpecVersion"`
}

// HandleValidate handles POST /v1/validate. The body is a JSON pet spec, or
// YAML when sent with a YAML content type. An optional "require" query
// parameter adds a version constraint such as ">= 0.1.0".
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	opts := []validator.Option{validator.WithVersion(h.version)}
	if expr := r.URL.Query().Get("require"); expr != "" {
		c, err := validator.ParseVersionConstraint(expr)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "invalid version constraint", nil)
			return
		}
		opts = append(opts, validator.WithConstraint(c))
	}

	doc, err := decodeBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, pserrors.ErrCodeInvalidRequest,
				"request body too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteErrorFromErr(w, r, err, "failed to read request body", nil)
		return
	}

	if err := ctx.Err(); err != nil {
		server.WriteErrorFromErr(w, r, pserrors.Wrap(pserrors.ErrCodeTimeout, "validation timed out", err), "", nil)
		return
	}

	sv := validator.New(opts...).Check(validator.Document{
		Source: server.RequestID(r.Context()),
		Value:  doc,
	})

	resp := ValidateResponse{
		Valid:      sv.Status == validator.SpecStatusPassed,
		Code:       sv.Code,
		Message:    sv.Message,
		Field:      sv.Field,
		Emote:      sv.Emote,
		Suggestion: sv.Suggestion,
	}
	resp.Init(header.KindSpecValidation, header.APIVersion, h.version)

	status := http.StatusOK
	result := ResultValid
	if resp.Valid {
		resp.Spec = doc
	} else {
		status = pserrors.HTTPStatus(pserrors.ErrCodeInvalidSpec)
		result = sv.Code
	}
	validationsTotal.WithLabelValues(result).Inc()

	server.Annotate(r.Context(), "valid", resp.Valid, "code", sv.Code)

	serializer.RespondJSON(w, status, resp)
}

// SelfCheck validates a built-in spec at the supported version. It backs
// the "validator" readiness check.
func (h *Handler) SelfCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sv := validator.New(validator.WithVersion(h.version)).Check(validator.Document{
		Source: selfCheckSource,
		Value:  selfCheckSpec(),
	})
	if sv.Status != validator.SpecStatusPassed {
		return pserrors.NewWithContext(pserrors.ErrCodeInternal, "self check spec rejected",
			map[string]any{"code": sv.Code, "message": sv.Message})
	}
	return nil
}

const selfCheckSource = "self-check"

func selfCheckSpec() petspec.Record {
	v := petspec.SupportedVersion
	return petspec.Record{
		"type":        petspec.TypeTag,
		"version":     []any{v.Major, v.Minor, v.Patch},
		"name":        "self-check",
		"description": "readiness self check",
		"model":       "https://example.com/self-check.glb",
		"speed":       1.5,
		"near":        2,
		"far":         10,
	}
}

// HandleVersion handles GET /v1/version.
func (h *Handler) HandleVersion(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, VersionResponse{
		Version:              h.version,
		SupportedSpecVersion: petspec.SupportedVersion.String(),
	})
}

// decodeBody reads the request body as an untyped document. The body is
// read in full before decoding so a size limit error surfaces as
// *http.MaxBytesError regardless of the decoder.
func decodeBody(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, pserrors.New(pserrors.ErrCodeInvalidRequest, "request body is empty")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, pserrors.Wrap(pserrors.ErrCodeInvalidRequest, "failed to read request body", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, pserrors.New(pserrors.ErrCodeInvalidRequest, "request body is empty")
	}

	format := bodyFormat(r.Header.Get("Content-Type"))
	reader, err := serializer.NewReader(format, bytes.NewReader(body))
	if err != nil {
		return nil, pserrors.Wrap(pserrors.ErrCodeInternal, "failed to create reader", err)
	}

	var doc any
	if err := reader.Deserialize(&doc); err != nil {
		return nil, pserrors.WrapWithContext(pserrors.ErrCodeInvalidRequest, "malformed request body", err,
			map[string]any{"format": string(format)})
	}
	return doc, nil
}

// bodyFormat maps a Content-Type to a decoder; anything but YAML is JSON.
func bodyFormat(contentType string) serializer.Format {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && strings.Contains(mt, "yaml") {
		return serializer.FormatYAML
	}
	return serializer.FormatJSON
}

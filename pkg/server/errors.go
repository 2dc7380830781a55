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
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	pserrors "github.com/m3org/petspec/pkg/errors"
	"github.com/m3org/petspec/pkg/serializer"
)

// HTTPStatusFromCode maps a structured error code to an HTTP status.
func HTTPStatusFromCode(code pserrors.ErrorCode) int {
	return pserrors.HTTPStatus(code)
}

// retryableFromCode reports whether a client may retry a request that
// failed with code.
func retryableFromCode(code pserrors.ErrorCode) bool {
	switch code {
	case pserrors.ErrCodeTimeout, pserrors.ErrCodeUnavailable,
		pserrors.ErrCodeRateLimitExceeded, pserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails combines detail maps, later maps overwriting earlier keys.
// Returns nil when there is nothing to report.
func mergeDetails(parts ...map[string]any) map[string]any {
	var out map[string]any
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(p))
		}
		maps.Copy(out, p)
	}
	return out
}

// WriteError writes error response
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code pserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an error response. Structured errors keep
// their code, message and context; anything else is reported as internal
// with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	var se *pserrors.StructuredError
	if errors.As(err, &se) {
		extra := map[string]any{}
		if se.Cause != nil {
			extra["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), mergeDetails(se.Context, details, extra))
		return
	}

	WriteError(w, r, http.StatusInternalServerError, pserrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(pserrors.ErrCodeInternal), mergeDetails(details, map[string]any{"error": err.Error()}))
}

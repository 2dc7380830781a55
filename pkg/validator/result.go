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

package validator

import (
	"strconv"
	"time"

	"github.com/m3org/petspec/pkg/header"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates every document is a valid pet spec.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail indicates one or more documents were rejected.
	ValidationStatusFail ValidationStatus = "fail"

	// ValidationStatusPartial indicates some documents couldn't be loaded.
	ValidationStatusPartial ValidationStatus = "partial"
)

// SpecStatus represents the outcome of validating a single document.
type SpecStatus string

const (
	// SpecStatusPassed indicates the document is a valid pet spec.
	SpecStatusPassed SpecStatus = "passed"

	// SpecStatusFailed indicates the document was rejected.
	SpecStatusFailed SpecStatus = "failed"

	// SpecStatusSkipped indicates the document couldn't be loaded.
	SpecStatusSkipped SpecStatus = "skipped"
)

// CodeConstraint marks a valid spec whose version falls outside the
// caller's version constraint.
const CodeConstraint = "VERSION_CONSTRAINT"

// CodeLoad marks a document that could not be read or parsed.
const CodeLoad = "LOAD_ERROR"

// ValidationResult represents the complete validation outcome.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// SupportedVersion is the newest spec version accepted.
	SupportedVersion string `json:"supportedVersion" yaml:"supportedVersion"`

	// Constraint is the caller's version constraint, if any.
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`

	// Summary contains aggregate validation statistics.
	Summary ValidationSummary `json:"summary" yaml:"summary"`

	// Results contains per-document validation details, in input order.
	Results []SpecValidation `json:"results" yaml:"results"`
}

// ValidationSummary contains aggregate statistics about the validation.
type ValidationSummary struct {
	Passed   int              `json:"passed" yaml:"passed"`
	Failed   int              `json:"failed" yaml:"failed"`
	Skipped  int              `json:"skipped" yaml:"skipped"`
	Total    int              `json:"total" yaml:"total"`
	Status   ValidationStatus `json:"status" yaml:"status"`
	Duration time.Duration    `json:"duration" yaml:"duration"`
}

// SpecValidation is the outcome for one document.
type SpecValidation struct {
	// Source is the path or URL the document came from.
	Source string `json:"source" yaml:"source"`

	// Status is the outcome of this document.
	Status SpecStatus `json:"status" yaml:"status"`

	// Name is the pet name of a document that passed.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Code is the petspec error kind, CodeConstraint or CodeLoad.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Message is the rejection message.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Field is the offending attribute.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Emote is the zero-based index of the offending emote.
	Emote *int `json:"emote,omitempty" yaml:"emote,omitempty"`

	// Suggestion is an optional "did you mean" hint.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// NewValidationResult creates a new ValidationResult with initialized slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Results: make([]SpecValidation, 0),
	}
}

// Failed reports whether any document was rejected or skipped.
func (r *ValidationResult) Failed() bool {
	return r.Summary.Status != ValidationStatusPass
}

// TableHeader implements serializer.Tabler.
func (r *ValidationResult) TableHeader() []string {
	return []string{"SOURCE", "STATUS", "CODE", "MESSAGE", "SUGGESTION"}
}

// TableRows implements serializer.Tabler.
func (r *ValidationResult) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Results)+1)
	for _, sv := range r.Results {
		msg := sv.Message
		if sv.Status == SpecStatusPassed {
			msg = sv.Name
		}
		rows = append(rows, []string{sv.Source, string(sv.Status), dash(sv.Code), dash(msg), dash(sv.Suggestion)})
	}
	rows = append(rows, []string{
		"TOTAL " + strconv.Itoa(r.Summary.Total),
		string(r.Summary.Status),
		"", "passed " + strconv.Itoa(r.Summary.Passed) + ", failed " + strconv.Itoa(r.Summary.Failed) +
			", skipped " + strconv.Itoa(r.Summary.Skipped),
		"",
	})
	return rows
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

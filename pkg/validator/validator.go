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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m3org/petspec/pkg/header"
	"github.com/m3org/petspec/pkg/petspec"
	"github.com/m3org/petspec/pkg/suggest"
)

// Document is one decoded input to validate.
type Document struct {
	// Source identifies the document in results (path, URL or request id).
	Source string

	// Value is the decoded document, typically a petspec.Record.
	Value any

	// Err is set when the document could not be loaded; it is reported as
	// skipped rather than validated.
	Err error
}

// Validator validates batches of pet spec documents.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// Constraint optionally narrows the accepted spec versions.
	Constraint *VersionConstraint
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithConstraint returns an Option that requires valid specs to also
// satisfy c.
func WithConstraint(c *VersionConstraint) Option {
	return func(v *Validator) {
		v.Constraint = c
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every document in order and returns the aggregate result.
// Records are normalized in place (see petspec.Validate). The context is
// checked between documents.
func (v *Validator) Validate(ctx context.Context, docs []Document) (*ValidationResult, error) {
	start := time.Now()

	result := NewValidationResult()
	result.Init(header.KindValidationResult, header.APIVersion, v.Version)
	result.SupportedVersion = petspec.SupportedVersion.String()
	if v.Constraint != nil {
		result.Constraint = v.Constraint.String()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sv := v.Check(doc)
		result.Results = append(result.Results, sv)

		switch sv.Status {
		case SpecStatusPassed:
			result.Summary.Passed++
		case SpecStatusFailed:
			result.Summary.Failed++
		case SpecStatusSkipped:
			result.Summary.Skipped++
		}
	}

	result.Summary.Total = len(docs)
	result.Summary.Duration = time.Since(start)

	switch {
	case result.Summary.Failed > 0:
		result.Summary.Status = ValidationStatusFail
	case result.Summary.Skipped > 0:
		result.Summary.Status = ValidationStatusPartial
	default:
		result.Summary.Status = ValidationStatusPass
	}

	slog.Debug("validation completed",
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

// Check validates a single document.
func (v *Validator) Check(doc Document) SpecValidation {
	sv := SpecValidation{Source: doc.Source}

	if doc.Err != nil {
		sv.Status = SpecStatusSkipped
		sv.Code = CodeLoad
		sv.Message = doc.Err.Error()
		slog.Warn("skipping document", "source", doc.Source, "error", doc.Err)
		return sv
	}

	if err := petspec.ValidateValue(doc.Value); err != nil {
		return Rejected(doc.Source, doc.Value, err)
	}

	spec, err := petspec.ParseValue(doc.Value)
	if err != nil {
		return Rejected(doc.Source, doc.Value, err)
	}
	sv.Name = spec.Name

	if v.Constraint != nil && !v.Constraint.Allows(spec.SemVer()) {
		sv.Status = SpecStatusFailed
		sv.Code = CodeConstraint
		sv.Field = petspec.FieldVersion
		sv.Message = fmt.Sprintf("version %s does not satisfy %s", spec.SemVer(), v.Constraint)
		return sv
	}

	sv.Status = SpecStatusPassed
	return sv
}

// Rejected describes a validation failure of doc from source.
func Rejected(source string, doc any, err error) SpecValidation {
	sv := SpecValidation{
		Source:     source,
		Status:     SpecStatusFailed,
		Message:    err.Error(),
		Suggestion: suggest.For(doc, err),
	}

	if ve, ok := petspec.AsValidationError(err); ok {
		sv.Code = ve.Kind.String()
		sv.Field = ve.Field
		if ve.Emote >= 0 {
			idx := ve.Emote
			sv.Emote = &idx
		}
	}
	return sv
}

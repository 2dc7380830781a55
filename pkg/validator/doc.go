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

// Package validator validates batches of pet spec documents and reports
// the outcome as a single document.
//
// # Overview
//
// Each input Document is checked with petspec.ValidateValue. Documents that
// could not be loaded are reported as skipped. An optional VersionConstraint
// narrows the accepted spec versions further than petspec.SupportedVersion.
//
// # Constraint Format
//
// Constraints compare the spec version with an operator:
//   - ">=", "<=", ">", "<" - ordering
//   - "==", "!=" - equality
//   - (no operator) - equality
//
// Example: ">= 0.0.5".
//
// # Usage
//
//	v := validator.New(validator.WithVersion(buildVersion))
//	result, err := v.Validate(ctx, []validator.Document{
//	    {Source: "rex.json", Value: doc},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Status: %s\n", result.Summary.Status)
//
// # Result Structure
//
// ValidationResult contains:
//   - Summary: passed, failed and skipped counts and the overall status
//   - Results: one entry per document, in input order, with the rejection
//     code, message, field, emote index and an optional suggestion
//
// The overall status is "fail" when any document failed, "partial" when
// none failed but some were skipped, and "pass" otherwise.
package validator

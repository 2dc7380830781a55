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
	"fmt"
	"strings"

	"github.com/m3org/petspec/pkg/errors"
	"github.com/m3org/petspec/pkg/version"
)

// Operator represents a comparison operator in constraint expressions.
type Operator string

const (
	// OperatorGTE represents ">=" (greater than or equal).
	OperatorGTE Operator = ">="

	// OperatorLTE represents "<=" (less than or equal).
	OperatorLTE Operator = "<="

	// OperatorGT represents ">" (greater than).
	OperatorGT Operator = ">"

	// OperatorLT represents "<" (less than).
	OperatorLT Operator = "<"

	// OperatorEQ represents "==" (equal).
	OperatorEQ Operator = "=="

	// OperatorNE represents "!=" (not equal).
	OperatorNE Operator = "!="
)

// VersionConstraint restricts the spec versions a caller accepts, on top of
// the built-in supported version check.
type VersionConstraint struct {
	Operator Operator
	Version  version.Version
}

// ParseVersionConstraint parses an expression such as ">= 0.0.5".
// A bare version means "==".
func ParseVersionConstraint(expr string) (*VersionConstraint, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "constraint expression cannot be empty")
	}

	op, value := OperatorEQ, expr
	// Longest first to avoid matching ">" when ">=" is intended
	for _, candidate := range []Operator{OperatorGTE, OperatorLTE, OperatorNE, OperatorEQ, OperatorGT, OperatorLT} {
		if strings.HasPrefix(expr, string(candidate)) {
			op = candidate
			value = strings.TrimSpace(strings.TrimPrefix(expr, string(candidate)))
			break
		}
	}

	if value == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "constraint value cannot be empty after operator")
	}

	v, err := version.ParseVersion(value)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"cannot parse constraint version", err, map[string]any{"version": value})
	}

	return &VersionConstraint{Operator: op, Version: v}, nil
}

// Allows reports whether actual satisfies the constraint.
func (c *VersionConstraint) Allows(actual version.Version) bool {
	switch c.Operator {
	case OperatorGTE:
		return actual.EqualsOrNewer(c.Version)
	case OperatorGT:
		return actual.IsNewer(c.Version)
	case OperatorLTE:
		return !actual.IsNewer(c.Version)
	case OperatorLT:
		return actual.IsOlder(c.Version)
	case OperatorNE:
		return !actual.Equals(c.Version)
	default:
		return actual.Equals(c.Version)
	}
}

// String returns a string representation of the constraint.
func (c *VersionConstraint) String() string {
	return fmt.Sprintf("%s %s", c.Operator, c.Version)
}

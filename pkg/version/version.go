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

package version

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version is a three part semantic version number (major, minor, patch).
// Components are float64 so that values decoded from JSON or YAML documents
// can be compared without truncation. A Version is an immutable value; all
// methods use value receivers and never modify it.
type Version struct {
	Major float64 `json:"major" yaml:"major"`
	Minor float64 `json:"minor" yaml:"minor"`
	Patch float64 `json:"patch" yaml:"patch"`
}

// NewVersion creates a new Version with the specified major, minor, and patch values.
// No validation is performed; comparisons are defined for any input including
// negative and fractional components. Use IsValid to check the result.
func NewVersion(major, minor, patch float64) Version {
	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}
}

// String returns "Major.Minor.Patch". Integral components are printed
// without a decimal part.
func (v Version) String() string {
	return fmt.Sprintf("%s.%s.%s", formatComponent(v.Major), formatComponent(v.Minor), formatComponent(v.Patch))
}

func formatComponent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseVersion parses a version string into a Version struct.
// Supported formats: "1", "1.2", "1.2.3", "v1.2.3". Missing components are zero.
// Returns an error if the version string is empty, has invalid components, or has too many components.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	var components [3]float64
	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}
		components[i] = float64(num)
	}

	return NewVersion(components[0], components[1], components[2]), nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For user input or runtime data,
// always use ParseVersion and handle errors explicitly.
//
//	var Supported = version.MustParseVersion("0.1.0")
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Equals returns true if v exactly equals other (all components match).
func (v Version) Equals(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
}

// IsNewer returns true if v is strictly newer than other.
// Major is compared first, then Minor; the first differing component decides.
// When both tie, Patch decides.
func (v Version) IsNewer(other Version) bool {
	if v.Major > other.Major {
		return true
	}
	if v.Major < other.Major {
		return false
	}
	if v.Minor > other.Minor {
		return true
	}
	if v.Minor < other.Minor {
		return false
	}
	return v.Patch > other.Patch
}

// IsOlder returns true if v is strictly older than other.
// It mirrors IsNewer with strict less-than comparisons at each tier.
func (v Version) IsOlder(other Version) bool {
	if v.Major < other.Major {
		return true
	}
	if v.Major > other.Major {
		return false
	}
	if v.Minor < other.Minor {
		return true
	}
	if v.Minor > other.Minor {
		return false
	}
	return v.Patch < other.Patch
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return !v.IsOlder(other)
}

// Compare returns an integer comparing two versions:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Useful for sorting versions. Versions with NaN components that are
// neither newer nor older compare as 0.
func (v Version) Compare(other Version) int {
	switch {
	case v.IsOlder(other):
		return -1
	case v.IsNewer(other):
		return 1
	default:
		return 0
	}
}

// IsValid returns true if all components are finite and non-negative.
func (v Version) IsValid() bool {
	for _, c := range []float64{v.Major, v.Minor, v.Patch} {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return false
		}
	}
	return true
}

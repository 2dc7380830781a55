package version

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Version
		expectedError bool
	}{
		{
			name:     "major only",
			input:    "1",
			expected: Version{Major: 1},
		},
		{
			name:     "major only with v prefix",
			input:    "v2",
			expected: Version{Major: 2},
		},
		{
			name:     "major.minor",
			input:    "1.2",
			expected: Version{Major: 1, Minor: 2},
		},
		{
			name:     "supported spec version",
			input:    "0.1.0",
			expected: Version{Major: 0, Minor: 1, Patch: 0},
		},
		{
			name:     "full version with v prefix",
			input:    "v1.2.3",
			expected: Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:          "too many components",
			input:         "1.2.3.4",
			expectedError: true,
		},
		{
			name:          "non-numeric",
			input:         "v1.2.a",
			expectedError: true,
		},
		{
			name:          "pre-release suffix",
			input:         "1.2.3-alpha",
			expectedError: true,
		},
		{
			name:          "empty string",
			input:         "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseVersion(tt.input)
			if tt.expectedError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Equals(tt.expected) {
				t.Errorf("got %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestParseVersionErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyVersion},
		{"1.2.3.4", ErrTooManyComponents},
		{"1..2", ErrNonNumeric},
		{"x", ErrNonNumeric},
		{"1.-2", ErrNegativeComponent},
		{"99999999999", ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseVersion(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		version  Version
		expected string
	}{
		{NewVersion(0, 1, 0), "0.1.0"},
		{NewVersion(1, 2, 3), "1.2.3"},
		{NewVersion(0, 1.5, 0), "0.1.5.0"},
		{NewVersion(0, 0, 0.25), "0.0.0.25"},
		{NewVersion(-1, 0, 0), "-1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.version.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMustParseVersion(t *testing.T) {
	v := MustParseVersion("0.1.0")
	if !v.Equals(NewVersion(0, 1, 0)) {
		t.Errorf("got %v, want 0.1.0", v)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid version")
		}
	}()
	MustParseVersion("not-a-version")
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Version
		equal bool
	}{
		{"identical", NewVersion(0, 1, 0), NewVersion(0, 1, 0), true},
		{"different patch", NewVersion(0, 1, 0), NewVersion(0, 1, 1), false},
		{"different minor", NewVersion(0, 1, 0), NewVersion(0, 2, 0), false},
		{"different major", NewVersion(0, 1, 0), NewVersion(1, 1, 0), false},
		{"NaN never equal", NewVersion(math.NaN(), 0, 0), NewVersion(math.NaN(), 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.equal {
				t.Errorf("Equals() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestIsNewerAndIsOlder(t *testing.T) {
	supported := NewVersion(0, 1, 0)

	tests := []struct {
		name  string
		v     Version
		newer bool
		older bool
	}{
		{"equal", NewVersion(0, 1, 0), false, false},
		{"higher patch", NewVersion(0, 1, 1), true, false},
		{"higher minor", NewVersion(0, 2, 0), true, false},
		{"higher major", NewVersion(1, 0, 0), true, false},
		{"lower minor", NewVersion(0, 0, 9), false, true},
		{"lower minor wins over higher patch", NewVersion(0, 0, 99), false, true},
		{"higher major wins over lower minor", NewVersion(1, -1, 0), true, false},
		{"negative", NewVersion(-1, 5, 5), false, true},
		{"fractional minor below", NewVersion(0, 0.5, 0), false, true},
		{"fractional patch above", NewVersion(0, 1, 0.5), true, false},
		{"NaN major", NewVersion(math.NaN(), 0, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsNewer(supported); got != tt.newer {
				t.Errorf("%v.IsNewer(%v) = %v, want %v", tt.v, supported, got, tt.newer)
			}
			if got := tt.v.IsOlder(supported); got != tt.older {
				t.Errorf("%v.IsOlder(%v) = %v, want %v", tt.v, supported, got, tt.older)
			}
			if tt.newer && tt.older {
				t.Fatal("a version cannot be both newer and older")
			}
		})
	}
}

func TestEqualsOrNewer(t *testing.T) {
	base := NewVersion(1, 2, 3)
	if !base.EqualsOrNewer(base) {
		t.Error("version should be equal-or-newer than itself")
	}
	if !NewVersion(1, 3, 0).EqualsOrNewer(base) {
		t.Error("1.3.0 should be equal-or-newer than 1.2.3")
	}
	if NewVersion(1, 2, 2).EqualsOrNewer(base) {
		t.Error("1.2.2 should not be equal-or-newer than 1.2.3")
	}
}

func TestCompare(t *testing.T) {
	versions := []Version{
		NewVersion(1, 0, 0),
		NewVersion(0, 1, 1),
		NewVersion(0, 0, 1),
		NewVersion(0, 1, 0),
		NewVersion(0, 2, 0),
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})

	want := []string{"0.0.1", "0.1.0", "0.1.1", "0.2.0", "1.0.0"}
	for i, v := range versions {
		if v.String() != want[i] {
			t.Errorf("position %d: got %s, want %s", i, v, want[i])
		}
	}

	if c := NewVersion(2, 0, 0).Compare(NewVersion(2, 0, 0)); c != 0 {
		t.Errorf("Compare equal versions = %d, want 0", c)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Version
		valid bool
	}{
		{"zero", NewVersion(0, 0, 0), true},
		{"typical", NewVersion(0, 1, 0), true},
		{"negative", NewVersion(0, -1, 0), false},
		{"NaN", NewVersion(0, 0, math.NaN()), false},
		{"infinite", NewVersion(math.Inf(1), 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func ExampleVersion_IsNewer() {
	supported := MustParseVersion("0.1.0")
	fmt.Println(NewVersion(0, 2, 0).IsNewer(supported))
	fmt.Println(NewVersion(0, 1, 0).IsNewer(supported))
	// Output:
	// true
	// false
}

func ExampleParseVersion() {
	v, err := ParseVersion("v1.2")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
	// Output: 1.2.0
}

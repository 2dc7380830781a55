// Package version provides a minimal semantic version value type.
//
// # Overview
//
// A Version is a (major, minor, patch) triple ordered lexicographically,
// major most significant. It is a plain value: construct it with NewVersion
// or ParseVersion and compare with Equals, IsNewer, IsOlder or Compare.
//
//	supported := version.MustParseVersion("0.1.0")
//	v := version.NewVersion(0, 2, 0)
//	if v.IsNewer(supported) {
//	    // reject
//	}
//
// Components are float64 because versions usually arrive as decoded JSON or
// YAML numbers. NewVersion performs no validation; comparison methods are
// defined for every input and never fail. A NaN component makes every strict
// comparison on its tier false.
//
// # Parsing
//
// ParseVersion accepts "1", "1.2", "1.2.3" with an optional "v" prefix.
// Missing components are zero. It returns:
//
//   - ErrEmptyVersion: input string is empty
//   - ErrTooManyComponents: more than 3 components
//   - ErrNonNumeric: a component is not an integer
//   - ErrNegativeComponent: a component is negative
package version

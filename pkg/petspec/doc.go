// Package petspec validates pet specifications.
//
// # Overview
//
// A pet spec is an untyped record, usually decoded from JSON or YAML:
//
//	type: M3_pet
//	version: [0, 1, 0]
//	name: Rex
//	description: A dog
//	model: https://cdn.example.com/dog.glb
//	speed: 1
//	near: 0
//	far: 10
//	emotes:
//	  - name: wave
//	    animation: a1
//	    audio: https://cdn.example.com/wave.mp3
//
// Validate walks an ordered checklist and stops at the first violation:
//
//	if err := petspec.Validate(record); err != nil {
//	    fmt.Println("invalid pet:", err)
//	}
//
// The returned error is a *ValidationError. Its message is one of a fixed
// set of literals ("invalid", "missing 'type' attribute", "unsupported
// version", "invalid 'model' url", "missing emote 'name' attribute", ...)
// and its Kind and Field carry the same information for programmatic use:
//
//	if errors.Is(err, petspec.ErrUnsupportedVersion) {
//	    // ask the author to downgrade
//	}
//
// # Normalization
//
// Validate fills "emotes" with an empty sequence when it is absent. Callers
// that share records should use Normalize, which validates and returns a
// normalized shallow copy, or Parse, which returns a typed Spec.
//
// # Versions
//
// Specs whose version is newer than SupportedVersion (0.1.0) are rejected.
// Older and equal versions are accepted.
//
// # Numbers
//
// speed, near, far and the version components accept integers, floats
// (not NaN) and numeric strings. See IsNumber.
//
// The package has no I/O and no shared mutable state; it is safe for
// concurrent use as long as each call gets its own record.
package petspec

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

package petspec

import "fmt"

// Kind classifies a validation failure. The set is closed: every message the
// validator can produce belongs to exactly one Kind.
type Kind string

const (
	// KindInvalid indicates the record itself is missing or falsy.
	KindInvalid Kind = "INVALID"
	// KindMissingAttribute indicates a required attribute is absent or falsy.
	KindMissingAttribute Kind = "MISSING_ATTRIBUTE"
	// KindInvalidAttribute indicates an attribute is present but has the wrong shape or value.
	KindInvalidAttribute Kind = "INVALID_ATTRIBUTE"
	// KindUnsupportedVersion indicates the spec version is newer than SupportedVersion.
	KindUnsupportedVersion Kind = "UNSUPPORTED_VERSION"
	// KindInvalidURL indicates a URL attribute has the wrong scheme or extension.
	KindInvalidURL Kind = "INVALID_URL"
	// KindMissingEmoteAttribute indicates a required emote attribute is absent or falsy.
	KindMissingEmoteAttribute Kind = "MISSING_EMOTE_ATTRIBUTE"
	// KindInvalidEmoteAttribute indicates an emote attribute has the wrong shape or value.
	KindInvalidEmoteAttribute Kind = "INVALID_EMOTE_ATTRIBUTE"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// noEmote marks errors that do not refer to an emote.
const noEmote = -1

// ValidationError describes the first violation found in a pet spec.
// Error returns one literal from a fixed message set; callers that match on
// message text keep working, while Go callers can use errors.Is / errors.As.
type ValidationError struct {
	// Kind is the failure class.
	Kind Kind

	// Field is the offending attribute name, empty for KindInvalid and
	// KindUnsupportedVersion.
	Field string

	// Emote is the zero-based index of the offending emote, or -1.
	Emote int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindInvalid:
		return "invalid"
	case KindMissingAttribute:
		return fmt.Sprintf("missing '%s' attribute", e.Field)
	case KindInvalidAttribute:
		return fmt.Sprintf("invalid '%s' attribute", e.Field)
	case KindUnsupportedVersion:
		return "unsupported version"
	case KindInvalidURL:
		return fmt.Sprintf("invalid '%s' url", e.Field)
	case KindMissingEmoteAttribute:
		return fmt.Sprintf("missing emote '%s' attribute", e.Field)
	case KindInvalidEmoteAttribute:
		return fmt.Sprintf("invalid emote '%s' attribute", e.Field)
	default:
		return fmt.Sprintf("unknown validation error %q", string(e.Kind))
	}
}

// Is reports whether target describes the same failure. A target with an
// empty Field matches any field of the same Kind, and a target with a
// negative Emote matches any emote index.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Field != "" && t.Field != e.Field {
		return false
	}
	return t.Emote < 0 || t.Emote == e.Emote
}

// Sentinels for errors.Is.
var (
	ErrInvalid               = &ValidationError{Kind: KindInvalid, Emote: noEmote}
	ErrMissingAttribute      = &ValidationError{Kind: KindMissingAttribute, Emote: noEmote}
	ErrInvalidAttribute      = &ValidationError{Kind: KindInvalidAttribute, Emote: noEmote}
	ErrUnsupportedVersion    = &ValidationError{Kind: KindUnsupportedVersion, Emote: noEmote}
	ErrInvalidURL            = &ValidationError{Kind: KindInvalidURL, Emote: noEmote}
	ErrMissingEmoteAttribute = &ValidationError{Kind: KindMissingEmoteAttribute, Emote: noEmote}
	ErrInvalidEmoteAttribute = &ValidationError{Kind: KindInvalidEmoteAttribute, Emote: noEmote}
)

func invalid() *ValidationError {
	return &ValidationError{Kind: KindInvalid, Emote: noEmote}
}

func missing(field string) *ValidationError {
	return &ValidationError{Kind: KindMissingAttribute, Field: field, Emote: noEmote}
}

func invalidAttr(field string) *ValidationError {
	return &ValidationError{Kind: KindInvalidAttribute, Field: field, Emote: noEmote}
}

func unsupportedVersion() *ValidationError {
	return &ValidationError{Kind: KindUnsupportedVersion, Emote: noEmote}
}

func invalidURL(field string) *ValidationError {
	return &ValidationError{Kind: KindInvalidURL, Field: field, Emote: noEmote}
}

func missingEmote(field string, index int) *ValidationError {
	return &ValidationError{Kind: KindMissingEmoteAttribute, Field: field, Emote: index}
}

func invalidEmote(field string, index int) *ValidationError {
	return &ValidationError{Kind: KindInvalidEmoteAttribute, Field: field, Emote: index}
}

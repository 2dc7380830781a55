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

import (
	"errors"
	"log/slog"
	"maps"
	"strings"

	"github.com/m3org/petspec/pkg/version"
)

// TypeTag is the only accepted value of the "type" attribute.
const TypeTag = "M3_pet"

// Attribute names.
const (
	FieldType        = "type"
	FieldVersion     = "version"
	FieldName        = "name"
	FieldDescription = "description"
	FieldModel       = "model"
	FieldSpeed       = "speed"
	FieldNear        = "near"
	FieldFar         = "far"
	FieldEmotes      = "emotes"
	FieldAnimation   = "animation"
	FieldAudio       = "audio"
)

// Fields lists the top-level attributes of a pet spec in checklist order.
var Fields = []string{
	FieldType, FieldVersion, FieldName, FieldDescription, FieldModel,
	FieldSpeed, FieldNear, FieldFar, FieldEmotes,
}

// EmoteFields lists the attributes of an emote record.
var EmoteFields = []string{FieldName, FieldAnimation, FieldAudio}

// SupportedVersion is the newest spec version this package accepts.
var SupportedVersion = version.MustParseVersion("0.1.0")

// Record is an untyped pet spec as produced by decoding JSON or YAML into any.
type Record = map[string]any

// check is one step of the validation checklist.
type check struct {
	name string
	run  func(spec Record) *ValidationError
}

// checklist is evaluated top to bottom; the first failing step wins, so the
// order determines which message surfaces when several attributes are bad.
var checklist = []check{
	{"type", checkType},
	{"version", checkVersion},
	{"details", checkDetails},
	{"model", checkModel},
	{"numbers", checkNumbers},
	{"emotes", checkEmotes},
}

// Validate checks spec against the pet spec schema and returns the first
// violation as a *ValidationError, or nil when spec is valid.
//
// Validate may normalize its input: when "emotes" is absent or falsy it is
// replaced with an empty sequence. This is the only mutation, and it only
// happens once every earlier check has passed. Use Normalize to leave the
// caller's record untouched.
func Validate(spec Record) error {
	if spec == nil {
		return reject("record", invalid())
	}

	for _, c := range checklist {
		if err := c.run(spec); err != nil {
			return reject(c.name, err)
		}
	}

	return nil
}

// ValidateValue validates an arbitrary decoded document. Falsy values are
// reported as invalid and truthy values that are not records as missing a
// type. When v is a Record it is normalized in place like Validate;
// other map types are validated on a converted copy.
func ValidateValue(v any) error {
	if !truthy(v) {
		return reject("record", invalid())
	}

	spec, ok := asRecord(v)
	if !ok {
		return reject("record", missing(FieldType))
	}

	return Validate(spec)
}

// Normalize validates a shallow copy of spec and returns the copy with
// defaults filled. The caller's record is never modified.
func Normalize(spec Record) (Record, error) {
	if spec == nil {
		return nil, reject("record", invalid())
	}

	out := maps.Clone(spec)
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func reject(step string, err *ValidationError) error {
	slog.Debug("pet spec rejected",
		"step", step,
		"kind", err.Kind,
		"field", err.Field,
		"emote", err.Emote,
		"message", err.Error())
	return err
}

func checkType(spec Record) *ValidationError {
	t := spec[FieldType]
	if !truthy(t) {
		return missing(FieldType)
	}
	if s, ok := asString(t); !ok || s != TypeTag {
		return invalidAttr(FieldType)
	}
	return nil
}

func checkVersion(spec Record) *ValidationError {
	parts, ok := asSequence(spec[FieldVersion])
	if !ok {
		return invalidAttr(FieldVersion)
	}

	var components [3]float64
	for i := range components {
		if i >= len(parts) {
			return invalidAttr(FieldVersion)
		}
		n, ok := ToNumber(parts[i])
		if !ok {
			return invalidAttr(FieldVersion)
		}
		components[i] = n
	}

	v := version.NewVersion(components[0], components[1], components[2])
	if v.IsNewer(SupportedVersion) {
		return unsupportedVersion()
	}
	return nil
}

func checkDetails(spec Record) *ValidationError {
	for _, field := range []string{FieldName, FieldDescription} {
		if !truthy(spec[field]) {
			return missing(field)
		}
	}
	return nil
}

func checkModel(spec Record) *ValidationError {
	m := spec[FieldModel]
	if !truthy(m) {
		return missing(FieldModel)
	}

	url, ok := asString(m)
	if !ok || !strings.HasPrefix(url, "http") {
		return invalidURL(FieldModel)
	}
	if !strings.HasSuffix(url, ".glb") {
		return invalidURL(FieldModel)
	}
	return nil
}

func checkNumbers(spec Record) *ValidationError {
	for _, field := range []string{FieldSpeed, FieldNear, FieldFar} {
		if !IsNumber(spec[field]) {
			return invalidAttr(field)
		}
	}
	return nil
}

func checkEmotes(spec Record) *ValidationError {
	raw := spec[FieldEmotes]
	if !truthy(raw) {
		spec[FieldEmotes] = []any{}
		return nil
	}

	emotes, ok := asSequence(raw)
	if !ok {
		// A truthy scalar is read as a single emote without a name.
		return missingEmote(FieldName, 0)
	}

	for i, e := range emotes {
		if err := checkEmote(e, i); err != nil {
			return err
		}
	}
	return nil
}

func checkEmote(e any, index int) *ValidationError {
	emote, ok := asRecord(e)
	if !ok {
		return missingEmote(FieldName, index)
	}
	if !truthy(emote[FieldName]) {
		return missingEmote(FieldName, index)
	}
	if !truthy(emote[FieldAnimation]) {
		return missingEmote(FieldAnimation, index)
	}
	if audio := emote[FieldAudio]; truthy(audio) {
		url, ok := asString(audio)
		if !ok || !strings.HasPrefix(url, "http") {
			return invalidEmote(FieldAudio, index)
		}
	}
	return nil
}

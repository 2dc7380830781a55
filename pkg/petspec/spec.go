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
	"fmt"

	"github.com/m3org/petspec/pkg/version"
)

// Spec is the typed view of a validated pet spec.
type Spec struct {
	Type        string     `json:"type" yaml:"type"`
	Version     [3]float64 `json:"version" yaml:"version"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Model       string     `json:"model" yaml:"model"`
	Speed       float64    `json:"speed" yaml:"speed"`
	Near        float64    `json:"near" yaml:"near"`
	Far         float64    `json:"far" yaml:"far"`
	Emotes      []Emote    `json:"emotes" yaml:"emotes"`
}

// Emote is a named animation, optionally with audio, attached to a pet.
type Emote struct {
	Name      string `json:"name" yaml:"name"`
	Animation string `json:"animation" yaml:"animation"`
	Audio     string `json:"audio,omitempty" yaml:"audio,omitempty"`
}

// SemVer returns the spec version as a version.Version.
func (s *Spec) SemVer() version.Version {
	return version.NewVersion(s.Version[0], s.Version[1], s.Version[2])
}

// Parse validates a normalized copy of record and converts it to a Spec.
// Numeric strings become float64 values in the returned Spec; the record
// itself is not modified.
func Parse(record Record) (*Spec, error) {
	normalized, err := Normalize(record)
	if err != nil {
		return nil, err
	}

	s := &Spec{
		Type:        TypeTag,
		Name:        text(normalized[FieldName]),
		Description: text(normalized[FieldDescription]),
		Model:       text(normalized[FieldModel]),
		Speed:       number(normalized[FieldSpeed]),
		Near:        number(normalized[FieldNear]),
		Far:         number(normalized[FieldFar]),
		Emotes:      []Emote{},
	}

	parts, _ := asSequence(normalized[FieldVersion])
	for i := range s.Version {
		s.Version[i] = number(parts[i])
	}

	emotes, _ := asSequence(normalized[FieldEmotes])
	for _, e := range emotes {
		r, _ := asRecord(e)
		emote := Emote{
			Name:      text(r[FieldName]),
			Animation: text(r[FieldAnimation]),
		}
		if truthy(r[FieldAudio]) {
			emote.Audio = text(r[FieldAudio])
		}
		s.Emotes = append(s.Emotes, emote)
	}

	return s, nil
}

// ParseValue is Parse for an arbitrary decoded document, with the same
// outcomes as ValidateValue for values that are not records.
func ParseValue(v any) (*Spec, error) {
	if !truthy(v) {
		return nil, reject("record", invalid())
	}
	rec, ok := asRecord(v)
	if !ok {
		return nil, reject("record", missing(FieldType))
	}
	return Parse(rec)
}

// text renders a validated truthy attribute as a string.
func text(v any) string {
	if s, ok := asString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

func number(v any) float64 {
	f, _ := ToNumber(v)
	return f
}

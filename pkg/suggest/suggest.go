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

// Package suggest produces "did you mean" hints for rejected pet specs.
// Hints are advisory: they never change the validation message.
package suggest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/m3org/petspec/pkg/petspec"
)

// MaxDistance is the largest edit distance still treated as a typo.
const MaxDistance = 2

// Closest returns the candidate nearest to value after case folding, if any
// is within MaxDistance. An exact match yields no suggestion.
func Closest(value string, candidates ...string) (string, bool) {
	folded := cases.Fold().String(strings.TrimSpace(value))
	if folded == "" {
		return "", false
	}

	best, bestDist := "", MaxDistance+1
	for _, c := range candidates {
		if c == value {
			return "", false
		}
		if d := levenshtein.ComputeDistance(folded, cases.Fold().String(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// Type suggests the pet type tag for a misspelled "type" value.
func Type(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return Closest(s, petspec.TypeTag)
}

// For returns a hint for err raised while validating doc, or "" when there
// is nothing useful to say.
func For(doc any, err error) string {
	ve, ok := petspec.AsValidationError(err)
	if !ok {
		return ""
	}

	rec, ok := record(doc)
	if !ok {
		return ""
	}

	switch ve.Kind {
	case petspec.KindInvalidAttribute:
		if ve.Field != petspec.FieldType {
			return ""
		}
		if s, ok := Type(rec[petspec.FieldType]); ok {
			return fmt.Sprintf("did you mean %q?", s)
		}
	case petspec.KindMissingAttribute:
		return misspelledKey(rec, ve.Field, petspec.Fields)
	case petspec.KindMissingEmoteAttribute:
		emotes, ok := rec[petspec.FieldEmotes].([]any)
		if !ok || ve.Emote < 0 || ve.Emote >= len(emotes) {
			return ""
		}
		if emote, ok := record(emotes[ve.Emote]); ok {
			return misspelledKey(emote, ve.Field, petspec.EmoteFields)
		}
	}
	return ""
}

// misspelledKey looks for an unknown key in rec that resembles missing.
func misspelledKey(rec map[string]any, missing string, known []string) string {
	var unknown []string
	for k := range rec {
		if !slices.Contains(known, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)

	for _, k := range unknown {
		if _, ok := Closest(k, missing); ok {
			return fmt.Sprintf("found %q, did you mean %q?", k, missing)
		}
	}
	return ""
}

func record(v any) (map[string]any, bool) {
	r, ok := v.(petspec.Record)
	return r, ok && r != nil
}

/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package strategy

import (
	"reflect"

	"dirpx.dev/sentinel/apis"
)

// NewHinterStrategy creates an apis.Strategy that uses apis.Hinter.
func NewHinterStrategy() apis.Strategy {
	return hinterStrategy{}
}

// hinterStrategy is a fast path: if the raw value implements apis.Hinter,
// its declared hint wins and the chain stops.
type hinterStrategy struct{}

// Ensure hinterStrategy implements apis.Strategy.
var _ apis.Strategy = (*hinterStrategy)(nil)

// TryNormalize canonicalizes the hint declared by an apis.Hinter.
// The declared hint is interpreted directly (descriptor, type, or dynamic
// type of a value); it is not re-fed through the whole chain, so a Hinter
// cannot delegate to another Hinter.
func (hinterStrategy) TryNormalize(raw any, cfg apis.Config) (apis.Descriptor, bool, error) {
	h, ok := raw.(apis.Hinter)
	if !ok {
		return apis.Descriptor{}, false, nil
	}
	switch v := h.SentinelHint().(type) {
	case nil:
		return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: raw}
	case apis.Descriptor:
		if v.IsZero() || denotesInstance(v) {
			return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
		}
		return v, true, nil
	case reflect.Type:
		if v == instanceType || v == instancePtrType {
			return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
		}
		d, err := fromType(v, cfg)
		return d, true, err
	default:
		d, err := fromType(reflect.TypeOf(v), cfg)
		return d, true, err
	}
}

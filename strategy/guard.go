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

var (
	// instanceType is the placeholder struct type; it can never be a hint.
	instanceType = reflect.TypeOf(apis.Instance{})
	// instancePtrType is the pointer form placeholders circulate as.
	instancePtrType = reflect.TypeOf((*apis.Instance)(nil))
)

// NewGuardStrategy creates an apis.Strategy that rejects hints which can
// never serve as an emptiness target: explicit nil, placeholder instances,
// the placeholder type itself, and descriptors denoting the placeholder type.
func NewGuardStrategy() apis.Strategy {
	return guardStrategy{}
}

// guardStrategy must run first in the chain; it only rejects, never produces.
type guardStrategy struct{}

// Ensure guardStrategy implements apis.Strategy.
var _ apis.Strategy = (*guardStrategy)(nil)

// TryNormalize rejects invalid hints and otherwise falls through.
func (guardStrategy) TryNormalize(raw any, _ apis.Config) (apis.Descriptor, bool, error) {
	switch v := raw.(type) {
	case nil:
		return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: nil}
	case *apis.Instance:
		return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
	case apis.Instance:
		// A dereferenced placeholder copy is just as invalid.
		return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
	case apis.Descriptor:
		if denotesInstance(v) {
			return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
		}
		return apis.Descriptor{}, false, nil
	case reflect.Type:
		if v == nil || v == instanceType || v == instancePtrType {
			return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: v}
		}
		return apis.Descriptor{}, false, nil
	}
	return apis.Descriptor{}, false, nil
}

// denotesInstance reports whether d references the placeholder type anywhere
// in its structure.
func denotesInstance(d apis.Descriptor) bool {
	if t := d.Type(); t == instanceType || t == instancePtrType {
		return true
	}
	for _, a := range d.Args() {
		if denotesInstance(a) {
			return true
		}
	}
	return false
}

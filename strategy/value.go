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

// NewValueStrategy creates an apis.Strategy that falls back to the dynamic
// type of the raw value.
func NewValueStrategy() apis.Strategy {
	return valueStrategy{}
}

// valueStrategy is the universal fallback: any non-nil value hints at its
// own dynamic type. It terminates every chain that reaches it.
type valueStrategy struct{}

// Ensure valueStrategy implements apis.Strategy.
var _ apis.Strategy = (*valueStrategy)(nil)

// TryNormalize canonicalizes the dynamic type of raw.
func (valueStrategy) TryNormalize(raw any, cfg apis.Config) (apis.Descriptor, bool, error) {
	if raw == nil {
		// The guard rejects nil before this point; kept for standalone use.
		return apis.Descriptor{}, false, nil
	}
	d, err := fromType(reflect.TypeOf(raw), cfg)
	return d, true, err
}

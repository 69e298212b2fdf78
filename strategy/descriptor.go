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
	"fmt"

	"dirpx.dev/sentinel/apis"
)

// NewDescriptorStrategy creates an apis.Strategy that passes through hints
// which are already canonical descriptors.
func NewDescriptorStrategy() apis.Strategy {
	return descriptorStrategy{}
}

// descriptorStrategy validates pre-built descriptors (zero value, depth)
// and passes them through unchanged.
type descriptorStrategy struct{}

// Ensure descriptorStrategy implements apis.Strategy.
var _ apis.Strategy = (*descriptorStrategy)(nil)

// TryNormalize validates and passes through raw if it is an apis.Descriptor.
func (descriptorStrategy) TryNormalize(raw any, cfg apis.Config) (apis.Descriptor, bool, error) {
	d, ok := raw.(apis.Descriptor)
	if !ok {
		return apis.Descriptor{}, false, nil
	}
	if d.IsZero() {
		return apis.Descriptor{}, true, &apis.InvalidHintError{Hint: d}
	}
	if cfg.MaxDepth > 0 && d.Depth() > cfg.MaxDepth {
		return apis.Descriptor{}, true, fmt.Errorf("%w: depth %d > %d", apis.ErrHintDepth, d.Depth(), cfg.MaxDepth)
	}
	return d, true, nil
}

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

package normalizer

import (
	"dirpx.dev/sentinel/apis"
)

// New constructs an apis.Normalizer that tries the given strategies in order.
// Nil strategies are ignored. The returned normalizer is safe for concurrent
// use provided strategies themselves are safe for concurrent TryNormalize
// calls. Normalizers circulate by pointer so layer swaps can compare them
// by identity.
func New(strategies ...apis.Strategy) apis.Normalizer {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &chain{strats: out}
}

// chain is an immutable, order-preserving normalizer over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Normalize runs strategies in order until one handles the raw hint.
// A handling strategy's error (including rejections such as
// *apis.InvalidHintError) stops the chain and is returned as-is.
func (n chain) Normalize(raw any, cfg apis.Config) (apis.Descriptor, error) {
	for _, s := range n.strats {
		if d, handled, err := s.TryNormalize(raw, cfg); handled {
			return d, err
		}
	}
	return apis.Descriptor{}, apis.ErrUnhandledHint
}

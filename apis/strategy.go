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

package apis

// Strategy is a pluggable normalization step. A Normalizer chains multiple
// strategies in order (e.g., Guard -> Hinter -> Descriptor -> Type -> Value).
type Strategy interface {
	// TryNormalize attempts to canonicalize raw according to cfg.
	// It returns (d, true, nil) when handled successfully, a non-nil error
	// with handled=true when raw is rejected, or handled=false to fall
	// through to the next strategy.
	TryNormalize(raw any, cfg Config) (d Descriptor, handled bool, err error)
}

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

// Normalizer turns a caller-supplied raw hint into a canonical Descriptor.
// Typical chain: Guard -> Hinter -> Descriptor -> Type -> Value.
type Normalizer interface {
	// Normalize canonicalizes raw according to cfg. It fails with
	// *InvalidHintError when raw can never serve as an emptiness target
	// (nil, a placeholder instance, or the placeholder type itself).
	Normalize(raw any, cfg Config) (Descriptor, error)
}

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

// Config carries read-only normalization and reclamation knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxDepth limits descriptor nesting for parameterized hints.
	// Acts as a safety guard against pathological nesting.
	MaxDepth int

	// UniversalInterface controls whether the empty interface type
	// (any/interface{}) normalizes to the universal descriptor. If false,
	// it is treated as a plain interface type.
	UniversalInterface bool

	// EagerReclaim controls whether registries attach a runtime cleanup
	// that removes a stale slot promptly after its instance is collected.
	// Stale slots are always pruned lazily on access and by Sweep.
	EagerReclaim bool
}

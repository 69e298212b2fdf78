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

// Package sentinel provides a global, process-wide registry of typed
// placeholder values.
//
// A sentinel is an immutable, always-false value that stands in for "no
// value of this type yet". For any given type specification there is at most
// one live sentinel in the process: constructing a sentinel for the same
// specification twice returns the same instance, so callers can rely on
// plain pointer identity to test whether a field is still unset:
//
//	var pending = sentinel.MustFor[*Order]()
//
//	if order == pending { ... } // still unset
//
// # Design
//
// The core of the package is a read-mostly global snapshot (state). The
// snapshot holds four things:
//
//   - Config: rules that control how raw hints are normalized (nesting
//     limits, empty-interface handling) and how stale registry slots are
//     reclaimed.
//
//   - Normalizer: turns a caller-supplied type specification ("raw hint")
//     into a canonical apis.Descriptor. A hint may be a reflect.Type, a
//     pre-built descriptor, a plain value (its dynamic type is used), or a
//     value implementing apis.Hinter. Hints that can never serve as an
//     emptiness target — nil, a sentinel instance, or the sentinel type
//     itself — are rejected with *apis.InvalidHintError.
//
//   - Registry: a process-wide mapping from canonical descriptor to the
//     currently live sentinel instance. The registry stores weak handles
//     only: it never keeps an instance alive. Once every owner of a sentinel
//     drops it, the slot is reclaimed (promptly via a runtime cleanup, or
//     lazily on next access) and a later request for the same descriptor
//     mints a fresh identity.
//
//   - Builder: a pluggable factory that knows how to construct Registry and
//     Normalizer instances for a given Config (and optional extension data).
//     The Builder is allowed to migrate live instances from previous
//     Registry instances so identities survive reconfiguration.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in. Construction is therefore lock-free up to the
// registry's own short critical section:
//
//	s, err := sentinel.New(reflect.TypeFor[string]())
//	s, err := sentinel.For[map[string][]int]()
//	s := sentinel.Any()
//
// # Construction forms
//
// Two equivalent construction syntaxes are supported and yield the same
// instance for the same effective descriptor:
//
//	sentinel.New(hint)     // explicit hint argument
//	sentinel.For[T]()      // type-parameter form
//
// ForHint combines both; the type parameter and the explicit hint must agree
// structurally or the call fails with *apis.SubscriptedTypeError carrying
// both conflicting values. Parameterized specifications built independently
// compare equal when their structure matches:
//
//	d1, _ := sentinel.Generic(reflect.TypeFor[map[string]int](), reflect.TypeFor[string]())
//	d2, _ := sentinel.Generic(reflect.TypeFor[map[string]int](), reflect.TypeFor[string]())
//	// sentinel.Must(d1) == sentinel.Must(d2)
//
// # Introspection
//
//	sentinel.Is(v)            // is v any sentinel?
//	sentinel.IsHint(v, hint)  // is v the sentinel for hint?
//
// Both accept arbitrary input and never fail.
//
// # Persistence
//
// Encode/Decode (CBOR) and EncodeJSON/DecodeJSON round-trip a sentinel
// within the same process: decoding re-enters the registry's get-or-create
// path, so while the original is alive the round trip returns the identical
// instance. See the codec package.
//
// # Concurrency model
//
// Reads (New, For, Is, Registry, ...) load the current *state atomically and
// never take package-level locks; the registry serializes get-or-create in a
// single short critical section, making creation linearizable per
// descriptor. Writes (SetConfig, SetBuilder, SetRegistry, ...) take a short
// build mutex, assemble a brand-new state struct, and publish it via an
// atomic pointer swap.
//
// # Pinning
//
// SetRegistry/SetNormalizer install a caller-provided layer and "pin" it:
// subsequent SetConfig calls will not rebuild that layer until it is
// explicitly unpinned. SetAll is the hard-reset API, used mainly by tests to
// obtain deterministic state.
//
// # Scope
//
// sentinel is intentionally small. It does not persist across process
// restarts, never shares instances across processes, and is not a
// general-purpose object pool: reclamation is driven purely by the absence
// of external references, never by size or age.
package sentinel

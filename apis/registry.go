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

// Registry is a store of live placeholder instances keyed by canonical
// descriptor. It holds non-owning handles only: its bookkeeping never keeps
// an instance alive, and a slot disappears once every external owner has
// released the instance.
type Registry interface {
	// GetOrCreate returns the live instance for d, creating and registering
	// one if absent. It is atomic: concurrent calls with equal descriptors
	// observe exactly one winning creation and all receive the same instance.
	GetOrCreate(d Descriptor) (*Instance, error)
	// Lookup returns the live instance for d without creating one.
	Lookup(d Descriptor) (*Instance, bool)
	// LookupKey is Lookup by canonical descriptor key.
	LookupKey(key string) (*Instance, bool)
	// DescriptorFor returns the cataloged descriptor for a canonical key.
	// The catalog outlives instances so decoders can re-derive descriptors.
	DescriptorFor(key string) (Descriptor, bool)
	// Adopt inserts an existing live instance under its own descriptor.
	// It is idempotent for the same instance and fails with
	// ErrDuplicateInstance if a different live instance occupies the slot.
	Adopt(s *Instance) error
	// Entries returns a snapshot of live associations (order unspecified).
	Entries() []Entry
	// Len reports the number of live entries.
	Len() int
	// Sweep removes slots whose instance has been reclaimed and returns
	// the number removed.
	Sweep() int
	// Reset drops all bookkeeping. Outstanding instances remain usable but
	// lose their identity claim; mainly for tests.
	Reset()
}

// Entry is a single live (descriptor, instance) association in a Registry
// snapshot.
type Entry struct {
	// Descriptor is the canonical key side of the association.
	Descriptor Descriptor
	// Instance is the live placeholder.
	Instance *Instance
}

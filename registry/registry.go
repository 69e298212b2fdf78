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

package registry

import (
	"runtime"
	"sync"
	"weak"

	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/config"
)

// New constructs a Registry holding non-owning handles to placeholder
// instances. Only MaxDepth and EagerReclaim are used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	return &registry{
		cfg:   cfg,
		m:     make(map[string]entry),
		descs: make(map[string]apis.Descriptor),
	}
}

// entry pairs a descriptor with a weak handle to its live instance.
// The weak handle is the only reference the registry holds, so registry
// bookkeeping never keeps an instance alive.
type entry struct {
	desc apis.Descriptor
	wp   weak.Pointer[apis.Instance]
}

// registry is a single-lock weak-value store. Every operation is a short,
// non-blocking critical section; no operation performs I/O or waits.
type registry struct {
	// cfg is the configuration used for reclamation policy.
	cfg apis.Config
	// mu guards m and descs.
	mu sync.Mutex
	// m maps canonical descriptor keys to weak entries.
	m map[string]entry
	// descs is the strong descriptor catalog consulted by decoders.
	// It outlives instances; growth is bounded by the set of distinct
	// descriptors ever requested.
	descs map[string]apis.Descriptor
}

// GetOrCreate returns the live instance for d, creating and registering one
// if absent. For any descriptor, calls are linearizable: exactly one caller
// observes "not present" and creates, all others receive that instance.
func (r *registry) GetOrCreate(d apis.Descriptor) (*apis.Instance, error) {
	if d.IsZero() {
		return nil, apis.ErrInvalidDescriptor
	}
	key := d.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.m[key]; ok {
		if inst := e.wp.Value(); inst != nil {
			return inst, nil
		}
		// Stale slot: the previous instance was reclaimed. Prune lazily and
		// fall through to create a fresh identity.
		delete(r.m, key)
	}

	inst := apis.NewInstance(d)
	r.m[key] = entry{desc: d, wp: weak.Make(inst)}
	r.descs[key] = d
	if r.cfg.EagerReclaim {
		runtime.AddCleanup(inst, r.reclaim, key)
	}
	return inst, nil
}

// reclaim removes the slot for key unless a newer live instance occupies it.
// Invoked by the runtime after an instance is collected (EagerReclaim).
func (r *registry) reclaim(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.m[key]; ok && e.wp.Value() == nil {
		delete(r.m, key)
	}
}

// Lookup returns the live instance for d without creating one.
func (r *registry) Lookup(d apis.Descriptor) (*apis.Instance, bool) {
	if d.IsZero() {
		return nil, false
	}
	return r.LookupKey(d.Key())
}

// LookupKey is Lookup by canonical descriptor key.
func (r *registry) LookupKey(key string) (*apis.Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[key]
	if !ok {
		return nil, false
	}
	inst := e.wp.Value()
	if inst == nil {
		delete(r.m, key)
		return nil, false
	}
	return inst, true
}

// DescriptorFor returns the cataloged descriptor for a canonical key.
func (r *registry) DescriptorFor(key string) (apis.Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.descs[key]
	return d, ok
}

// Adopt inserts an existing live instance under its own descriptor.
// Used to migrate live entries when a registry is rebuilt; idempotent for
// the same instance.
func (r *registry) Adopt(s *apis.Instance) error {
	if s == nil {
		return apis.ErrNilInstance
	}
	d := s.Hint()
	if d.IsZero() {
		return apis.ErrInvalidDescriptor
	}
	key := d.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.m[key]; ok {
		if cur := e.wp.Value(); cur != nil {
			if cur == s {
				return nil
			}
			return apis.ErrDuplicateInstance
		}
	}
	r.m[key] = entry{desc: d, wp: weak.Make(s)}
	r.descs[key] = d
	if r.cfg.EagerReclaim {
		runtime.AddCleanup(s, r.reclaim, key)
	}
	return nil
}

// Entries returns a snapshot of live associations (order unspecified).
// Stale slots encountered along the way are pruned.
func (r *registry) Entries() []apis.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]apis.Entry, 0, len(r.m))
	for key, e := range r.m {
		inst := e.wp.Value()
		if inst == nil {
			delete(r.m, key)
			continue
		}
		out = append(out, apis.Entry{Descriptor: e.desc, Instance: inst})
	}
	return out
}

// Len reports the number of live entries, pruning stale slots it meets.
func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key, e := range r.m {
		if e.wp.Value() == nil {
			delete(r.m, key)
			continue
		}
		n++
	}
	return n
}

// Sweep removes slots whose instance has been reclaimed and returns the
// number removed.
func (r *registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, e := range r.m {
		if e.wp.Value() == nil {
			delete(r.m, key)
			removed++
		}
	}
	return removed
}

// Reset drops all bookkeeping, including the descriptor catalog.
// Outstanding instances remain usable but lose their identity claim: a
// subsequent GetOrCreate for the same descriptor mints a fresh instance.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = make(map[string]entry)
	r.descs = make(map[string]apis.Descriptor)
}

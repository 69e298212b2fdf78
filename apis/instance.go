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

import "encoding/json"

// Instance is a placeholder standing in for "no value of this type yet".
// An Instance owns exactly one Descriptor and nothing else. Instances are
// immutable, circulate by pointer, and compare by identity: the registry
// guarantees at most one live Instance per descriptor, so pointer equality
// is the equality of interest.
type Instance struct {
	// desc is the descriptor this placeholder stands in for.
	desc Descriptor
}

// NewInstance constructs a placeholder carrying d. Callers normally obtain
// instances through a Registry's GetOrCreate; constructing one directly
// bypasses the identity guarantee and is intended for Registry
// implementations only.
func NewInstance(d Descriptor) *Instance {
	return &Instance{desc: d}
}

// Hint returns the descriptor this placeholder stands in for.
func (s *Instance) Hint() Descriptor { return s.desc }

// Bool is the explicit boolean-conversion protocol: a placeholder is always
// false, regardless of descriptor, so callers can use it as an "is this
// still unset" test without identity comparison.
func (s *Instance) Bool() bool { return false }

// IsZero always reports true, so encoding helpers and templates treat
// placeholders as unset values.
func (s *Instance) IsZero() bool { return true }

// Equal reports identity equality. Structurally equal placeholders from
// different lifetimes are not equal.
func (s *Instance) Equal(o *Instance) bool { return s == o }

// String renders the placeholder with its descriptor, e.g. "<sentinel: int>".
func (s *Instance) String() string {
	if s == nil {
		return "<sentinel: nil>"
	}
	return "<sentinel: " + s.desc.String() + ">"
}

// MarshalJSON encodes the placeholder as its wire envelope so it can be
// embedded in caller documents. Decoding goes through a Registry; see the
// codec package.
func (s *Instance) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(Envelope{Key: s.desc.Key(), Repr: s.desc.String()})
}

// Envelope is the serialized form of a placeholder: the canonical descriptor
// key plus a human-oriented repr. Decoders resolve Key back through a
// Registry so a round trip re-enters get-or-create instead of constructing
// an Instance directly.
type Envelope struct {
	// Key is the canonical descriptor key.
	Key string `json:"$sentinel" cbor:"1,keyasint"`
	// Repr is a human-oriented rendering carried for diagnostics only.
	Repr string `json:"repr,omitempty" cbor:"2,keyasint,omitempty"`
}

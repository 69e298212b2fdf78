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

// Package codec is the persistence bridge: it serializes placeholders to a
// small wire envelope and reconstructs them by re-entering the registry's
// get-or-create path, never by building an instance directly. Within one
// process lifetime a round trip therefore yields the identical instance
// while any owner of the original survives, and a structurally equal fresh
// instance otherwise. Cross-process round trips are unsupported.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"dirpx.dev/sentinel/apis"
)

// cborEncMode holds canonical CBOR encoding options for deterministic output.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

var (
	// ErrUnknownDescriptor is returned when a wire key has no cataloged
	// descriptor in the target registry (e.g. data from another process).
	ErrUnknownDescriptor = fmt.Errorf("%w: unknown descriptor key", apis.ErrSentinel)
	// ErrNilRegistry is returned when decoding without a registry.
	ErrNilRegistry = fmt.Errorf("%w: nil registry", apis.ErrSentinel)
)

// Encode serializes a placeholder to CBOR bytes.
func Encode(s *apis.Instance) ([]byte, error) {
	if s == nil {
		return nil, apis.ErrNilInstance
	}
	return cborEncMode.Marshal(envelope(s))
}

// Decode deserializes CBOR bytes produced by Encode, resolving the result
// through reg's get-or-create path.
func Decode(data []byte, reg apis.Registry) (*apis.Instance, error) {
	var env apis.Envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("codec: unmarshal sentinel: %w", err)
	}
	return resolve(env, reg)
}

// EncodeJSON serializes a placeholder to JSON. The output matches the
// envelope produced by Instance.MarshalJSON.
func EncodeJSON(s *apis.Instance) ([]byte, error) {
	if s == nil {
		return nil, apis.ErrNilInstance
	}
	return json.Marshal(envelope(s))
}

// DecodeJSON deserializes JSON bytes produced by EncodeJSON or
// Instance.MarshalJSON, resolving the result through reg.
func DecodeJSON(data []byte, reg apis.Registry) (*apis.Instance, error) {
	var env apis.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("codec: unmarshal sentinel: %w", err)
	}
	return resolve(env, reg)
}

// envelope builds the wire form for s.
func envelope(s *apis.Instance) apis.Envelope {
	d := s.Hint()
	return apis.Envelope{Key: d.Key(), Repr: d.String()}
}

// resolve maps a wire envelope back to a live instance via get-or-create.
func resolve(env apis.Envelope, reg apis.Registry) (*apis.Instance, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	d, ok := reg.DescriptorFor(env.Key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDescriptor, env.Key)
	}
	return reg.GetOrCreate(d)
}

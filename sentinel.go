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

package sentinel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/builder"
	"dirpx.dev/sentinel/codec"
	"dirpx.dev/sentinel/config"
	uref "dirpx.dev/sentinel/utils/reflect"
)

// Shared types re-exported so most callers never import apis directly.
type (
	// Instance is the placeholder value; see apis.Instance.
	Instance = apis.Instance
	// Descriptor is the canonical type specification; see apis.Descriptor.
	Descriptor = apis.Descriptor
	// InvalidHintError reports a hint that can never be an emptiness target.
	InvalidHintError = apis.InvalidHintError
	// SubscriptedTypeError reports disagreeing construction specifications.
	SubscriptedTypeError = apis.SubscriptedTypeError
)

// Error identities re-exported from apis.
var (
	// ErrSentinel is the base error wrapped by every library error.
	ErrSentinel = apis.ErrSentinel
	// ErrInvalidHint marks invalid hints; see apis.ErrInvalidHint.
	ErrInvalidHint = apis.ErrInvalidHint
	// ErrSubscriptedType marks conflicting specifications; see apis.ErrSubscriptedType.
	ErrSubscriptedType = apis.ErrSubscriptedType
)

// init initializes the global state.
func init() {
	// Initialize state with default cfg, reg, and norm.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.norm = b.BuildNormalizer(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("sentinel: builder returned nil registry")
	// ErrNilNormalizer is returned when a builder returns a nil normalizer.
	ErrNilNormalizer = errors.New("sentinel: builder returned nil normalizer")
)

// New returns the live placeholder for hint, creating it on first demand.
// hint may be a reflect.Type, a Descriptor, a plain value (its dynamic type
// is used), or a value implementing apis.Hinter. Passing nil, a placeholder,
// or the placeholder type fails with *InvalidHintError.
func New(hint any) (*Instance, error) {
	s := st.Load()
	d, err := s.norm.Normalize(hint, s.cfg)
	if err != nil {
		return nil, err
	}
	return s.reg.GetOrCreate(d)
}

// Must is New but panics on error. For initialization-time construction of
// well-known placeholders.
func Must(hint any) *Instance {
	inst, err := New(hint)
	if err != nil {
		panic(err)
	}
	return inst
}

// Any returns the universal placeholder, used when no type specification is
// supplied.
func Any() *Instance {
	s := st.Load()
	inst, err := s.reg.GetOrCreate(apis.Universal())
	if err != nil {
		// The universal descriptor is always valid.
		panic(err)
	}
	return inst
}

// For returns the placeholder for the type parameter T. It is the
// type-parameter form of New: For[T]() and New(reflect.TypeFor[T]()) yield
// the same instance. For[any] yields the universal placeholder under the
// default configuration.
func For[T any]() (*Instance, error) {
	return New(uref.TypeOf[T]())
}

// MustFor is For but panics on error.
func MustFor[T any]() *Instance {
	inst, err := For[T]()
	if err != nil {
		panic(err)
	}
	return inst
}

// ForHint constructs with both a type parameter and an explicit hint. The
// two specifications must agree structurally; a mismatch fails with
// *SubscriptedTypeError carrying both conflicting values. A hint that does
// not normalize at all (nil, a placeholder) is rejected with the
// normalization error before the agreement check.
func ForHint[T any](hint any) (*Instance, error) {
	s := st.Load()
	sub := uref.TypeOf[T]()
	dsub, err := s.norm.Normalize(sub, s.cfg)
	if err != nil {
		return nil, err
	}
	dh, err := s.norm.Normalize(hint, s.cfg)
	if err != nil {
		return nil, err
	}
	if !dsub.Equal(dh) {
		return nil, &apis.SubscriptedTypeError{Hint: hint, Subscripted: sub}
	}
	return s.reg.GetOrCreate(dh)
}

// Generic builds a parameterized descriptor hint: a base type applied to
// ordered argument hints. Base and arguments are normalized through the
// global normalizer, so each may be a reflect.Type, a Descriptor, or a plain
// value. The base must denote a concrete type. Two independently built
// specifications with identical structure normalize to equal descriptors.
func Generic(base any, args ...any) (Descriptor, error) {
	s := st.Load()
	db, err := s.norm.Normalize(base, s.cfg)
	if err != nil {
		return Descriptor{}, err
	}
	if db.Kind() != apis.KindType {
		return Descriptor{}, &apis.InvalidHintError{Hint: base}
	}
	ds := make([]Descriptor, 0, len(args))
	for _, a := range args {
		da, err := s.norm.Normalize(a, s.cfg)
		if err != nil {
			return Descriptor{}, err
		}
		ds = append(ds, da)
	}
	d, err := apis.Parameterized(db.Type(), ds...)
	if err != nil {
		return Descriptor{}, err
	}
	if s.cfg.MaxDepth > 0 && d.Depth() > s.cfg.MaxDepth {
		return Descriptor{}, fmt.Errorf("%w: depth %d > %d", apis.ErrHintDepth, d.Depth(), s.cfg.MaxDepth)
	}
	return d, nil
}

// Is reports whether v is a placeholder instance. It accepts arbitrary input
// and never fails.
func Is(v any) bool {
	p, ok := v.(*Instance)
	return ok && p != nil
}

// IsHint reports whether v is a placeholder whose descriptor matches hint
// under structural equality (exact match, not subtype compatibility). It
// accepts arbitrary input and never fails: hints that do not normalize
// simply report false.
func IsHint(v any, hint any) bool {
	p, ok := v.(*Instance)
	if !ok || p == nil {
		return false
	}
	s := st.Load()
	d, err := s.norm.Normalize(hint, s.cfg)
	if err != nil {
		return false
	}
	return p.Hint().Equal(d)
}

// Encode serializes a placeholder to CBOR bytes. Decoding the result in the
// same process returns the identical instance while any owner of the
// original survives. This is a convenience wrapper around the codec package
// and the global registry.
func Encode(s *Instance) ([]byte, error) {
	return codec.Encode(s)
}

// Decode deserializes CBOR bytes produced by Encode, re-entering the global
// registry's get-or-create path.
func Decode(data []byte) (*Instance, error) {
	return codec.Decode(data, st.Load().reg)
}

// EncodeJSON serializes a placeholder to JSON.
func EncodeJSON(s *Instance) ([]byte, error) {
	return codec.EncodeJSON(s)
}

// DecodeJSON deserializes JSON bytes produced by EncodeJSON or by
// Instance.MarshalJSON, re-entering the global registry.
func DecodeJSON(data []byte) (*Instance, error) {
	return codec.DecodeJSON(data, st.Load().reg)
}

// SetAll explicitly sets all global state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, norm apis.Normalizer, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Normalizer
	nnorm := norm
	npnorm := false
	if nnorm == nil {
		nnorm = nbld.BuildNormalizer(ncfg, nreg, old.norm, next)
	} else {
		npnorm = true
	}

	// Ensure non-nil reg and norm.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nnorm == nil {
		panic(ErrNilNormalizer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   ncfg,
			ext:   next,
			reg:   nreg,
			norm:  nnorm,
			bld:   nbld,
			preg:  npreg,
			pnorm: npnorm,
		},
	)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the global registry and normalizer using the new configuration
// unless the corresponding layer is pinned. Live instances are migrated into
// the rebuilt registry so their identities survive.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and norm based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nnorm := old.norm
	if !old.pnorm {
		nnorm = b.BuildNormalizer(cfg, nreg, old.norm, old.ext)
	}

	// Ensure non-nil reg and norm.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nnorm == nil {
		panic(ErrNilNormalizer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   cfg,
			ext:   old.ext,
			reg:   nreg,
			norm:  nnorm,
			bld:   b,
			preg:  old.preg,
			pnorm: old.pnorm,
		},
	)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg and pins it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   reg,
			norm:  old.norm,
			bld:   old.bld,
			preg:  true,
			pnorm: old.pnorm,
		},
	)
}

// Normalizer returns the global normalizer.
func Normalizer() apis.Normalizer {
	return st.Load().norm
}

// SetNormalizer sets the global normalizer to norm and pins it.
func SetNormalizer(norm apis.Normalizer) {
	if norm == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   old.reg,
			norm:  norm,
			bld:   old.bld,
			preg:  old.preg,
			pnorm: true,
		},
	)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds non-pinned layers.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and norm based on the new builder and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nnorm := old.norm
	if !old.pnorm {
		nnorm = b.BuildNormalizer(old.cfg, nreg, old.norm, old.ext)
	}

	// Ensure non-nil reg and norm.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nnorm == nil {
		panic(ErrNilNormalizer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   nreg,
			norm:  nnorm,
			bld:   b,
			preg:  old.preg,
			pnorm: old.pnorm,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and norm based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nnorm := old.norm
	if !old.pnorm {
		nnorm = b.BuildNormalizer(old.cfg, nreg, old.norm, ext)
	}

	// Ensure non-nil reg and norm.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nnorm == nil {
		panic(ErrNilNormalizer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   ext,
			reg:   nreg,
			norm:  nnorm,
			bld:   b,
			preg:  old.preg,
			pnorm: old.pnorm,
		},
	)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry prevents automatic registry rebuilds.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   old.reg,
			norm:  old.norm,
			bld:   old.bld,
			preg:  true,
			pnorm: old.pnorm,
		},
	)
}

// UnpinRegistry re-enables automatic registry rebuilds.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   old.reg,
			norm:  old.norm,
			bld:   old.bld,
			preg:  false,
			pnorm: old.pnorm,
		},
	)
}

// IsNormalizerPinned returns whether the global normalizer is pinned.
func IsNormalizerPinned() bool {
	return st.Load().pnorm
}

// PinNormalizer prevents automatic normalizer rebuilds.
func PinNormalizer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   old.reg,
			norm:  old.norm,
			bld:   old.bld,
			preg:  old.preg,
			pnorm: true,
		},
	)
}

// UnpinNormalizer re-enables automatic normalizer rebuilds.
func UnpinNormalizer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(
		&state{
			cfg:   old.cfg,
			ext:   old.ext,
			reg:   old.reg,
			norm:  old.norm,
			bld:   old.bld,
			preg:  old.preg,
			pnorm: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// norm is the global normalizer.
	norm apis.Normalizer
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned.
	preg bool
	// pnorm indicates whether the normalizer is pinned.
	pnorm bool
}

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

import (
	"reflect"
	"strings"

	uref "dirpx.dev/sentinel/utils/reflect"
)

// Kind discriminates the closed set of descriptor variants.
type Kind uint8

const (
	// KindInvalid is the zero Kind. Invalid descriptors are rejected
	// by registries and normalizers.
	KindInvalid Kind = iota
	// KindAny is the universal descriptor, used when no hint is supplied.
	KindAny
	// KindType denotes a single concrete Go type.
	KindType
	// KindGeneric denotes a parameterized form: a base Go type plus an
	// ordered list of argument descriptors, recursively.
	KindGeneric
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindType:
		return "type"
	case KindGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// Descriptor is the canonical, comparable encoding of "the type this
// placeholder stands in for". Descriptors are immutable value objects:
// equality is structural (same kind, same base type, same ordered arguments,
// recursively), and every valid descriptor carries a precomputed canonical
// key string used for map storage and wire encoding. Two descriptors are
// equal iff their keys are equal.
type Descriptor struct {
	// kind selects the variant.
	kind Kind
	// typ is the concrete type for KindType, or the base type for KindGeneric.
	typ reflect.Type
	// args holds the ordered argument descriptors for KindGeneric.
	args []Descriptor
	// key is the canonical string form, computed at construction.
	key string
}

// Universal returns the descriptor for "any value" (an absent specification).
func Universal() Descriptor {
	return Descriptor{kind: KindAny, key: "any"}
}

// OfType returns the descriptor denoting the concrete type t.
func OfType(t reflect.Type) (Descriptor, error) {
	if t == nil {
		return Descriptor{}, ErrNilType
	}
	return Descriptor{kind: KindType, typ: t, key: uref.Key(t)}, nil
}

// Parameterized returns the descriptor for a parameterized form: base applied
// to the ordered args. Two independently built parameterized descriptors with
// the same base and the same argument structure are equal.
func Parameterized(base reflect.Type, args ...Descriptor) (Descriptor, error) {
	if base == nil {
		return Descriptor{}, ErrNilType
	}
	for _, a := range args {
		if a.kind == KindInvalid {
			return Descriptor{}, ErrInvalidDescriptor
		}
	}
	// Copy args so later caller mutations cannot reach the descriptor.
	cp := make([]Descriptor, len(args))
	copy(cp, args)

	var sb strings.Builder
	sb.WriteString(uref.Key(base))
	sb.WriteByte('[')
	for i, a := range cp {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.key)
	}
	sb.WriteByte(']')

	return Descriptor{kind: KindGeneric, typ: base, args: cp, key: sb.String()}, nil
}

// Kind returns the descriptor's variant.
func (d Descriptor) Kind() Kind { return d.kind }

// Type returns the concrete type (KindType) or base type (KindGeneric).
// It is nil for the universal and invalid descriptors.
func (d Descriptor) Type() reflect.Type { return d.typ }

// Args returns a copy of the ordered argument descriptors (KindGeneric only).
func (d Descriptor) Args() []Descriptor {
	if len(d.args) == 0 {
		return nil
	}
	cp := make([]Descriptor, len(d.args))
	copy(cp, d.args)
	return cp
}

// Key returns the canonical string key used for registry storage and wire
// encoding. Empty for invalid descriptors.
func (d Descriptor) Key() string { return d.key }

// IsZero reports whether d is the invalid zero descriptor.
func (d Descriptor) IsZero() bool { return d.kind == KindInvalid }

// Depth returns the nesting depth: 1 for any/type, 1 + deepest argument for
// parameterized forms, 0 for the invalid descriptor.
func (d Descriptor) Depth() int {
	switch d.kind {
	case KindInvalid:
		return 0
	case KindGeneric:
		max := 0
		for _, a := range d.args {
			if ad := a.Depth(); ad > max {
				max = ad
			}
		}
		return 1 + max
	default:
		return 1
	}
}

// Equal reports structural equality: same kind, same base type, same ordered
// arguments, recursively.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.kind != o.kind || d.typ != o.typ || len(d.args) != len(o.args) {
		return false
	}
	for i := range d.args {
		if !d.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

// String returns a human-oriented rendering, e.g. "any", "int",
// "map[string]int" or "pkg.List[string]".
func (d Descriptor) String() string {
	switch d.kind {
	case KindAny:
		return "any"
	case KindType:
		return d.typ.String()
	case KindGeneric:
		var sb strings.Builder
		sb.WriteString(d.typ.String())
		sb.WriteByte('[')
		for i, a := range d.args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		return "<invalid>"
	}
}

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

package strategy_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/config"
	"dirpx.dev/sentinel/strategy"
)

// Local test types.
type payload struct{}

// hintedPayload declares its own hint.
type hintedPayload struct{}

func (hintedPayload) SentinelHint() any { return reflect.TypeOf(payload{}) }

// badHinter declares a nil hint.
type badHinter struct{}

func (badHinter) SentinelHint() any { return nil }

func cfg() apis.Config { return config.DefaultConfig() }

func TestGuard_RejectsInvalidHints(t *testing.T) {
	g := strategy.NewGuardStrategy()

	cases := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"instance pointer", apis.NewInstance(apis.Universal())},
		{"instance value", *apis.NewInstance(apis.Universal())},
		{"nil typed instance", (*apis.Instance)(nil)},
		{"instance type", reflect.TypeOf(apis.Instance{})},
		{"instance pointer type", reflect.TypeOf((*apis.Instance)(nil))},
		{"nil reflect.Type", (reflect.Type)(nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, handled, err := g.TryNormalize(tc.raw, cfg())
			if !handled {
				t.Fatal("guard did not handle the hint")
			}
			var hintErr *apis.InvalidHintError
			if !errors.As(err, &hintErr) {
				t.Fatalf("got %v, want *InvalidHintError", err)
			}
		})
	}
}

func TestGuard_RejectsDescriptorDenotingInstance(t *testing.T) {
	g := strategy.NewGuardStrategy()

	d, err := apis.OfType(reflect.TypeOf(apis.Instance{}))
	if err != nil {
		t.Fatalf("OfType: %v", err)
	}
	if _, handled, err := g.TryNormalize(d, cfg()); !handled || !errors.Is(err, apis.ErrInvalidHint) {
		t.Fatalf("descriptor of instance type: handled=%v err=%v", handled, err)
	}

	// Instance type buried in a parameterized argument.
	inner, err := apis.OfType(reflect.TypeOf((*apis.Instance)(nil)))
	if err != nil {
		t.Fatalf("OfType: %v", err)
	}
	gen, err := apis.Parameterized(reflect.TypeOf([]int{}), inner)
	if err != nil {
		t.Fatalf("Parameterized: %v", err)
	}
	if _, handled, err := g.TryNormalize(gen, cfg()); !handled || !errors.Is(err, apis.ErrInvalidHint) {
		t.Fatalf("nested instance descriptor: handled=%v err=%v", handled, err)
	}
}

func TestGuard_FallsThroughForValidHints(t *testing.T) {
	g := strategy.NewGuardStrategy()

	for _, raw := range []any{
		reflect.TypeOf(0),
		apis.Universal(),
		payload{},
		42,
	} {
		if _, handled, err := g.TryNormalize(raw, cfg()); handled || err != nil {
			t.Fatalf("guard handled valid hint %v: handled=%v err=%v", raw, handled, err)
		}
	}
}

func TestTypeStrategy(t *testing.T) {
	s := strategy.NewTypeStrategy()

	d, handled, err := s.TryNormalize(reflect.TypeOf(payload{}), cfg())
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if d.Kind() != apis.KindType || d.Type() != reflect.TypeOf(payload{}) {
		t.Fatalf("descriptor = %v", d)
	}

	// Non-types fall through.
	if _, handled, _ := s.TryNormalize(42, cfg()); handled {
		t.Fatal("type strategy handled a non-type")
	}
}

func TestTypeStrategy_UniversalInterface(t *testing.T) {
	s := strategy.NewTypeStrategy()
	anyType := reflect.TypeOf((*any)(nil)).Elem()

	// Default: empty interface is the universal descriptor.
	d, handled, err := s.TryNormalize(anyType, cfg())
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if d.Kind() != apis.KindAny {
		t.Fatalf("Kind = %v, want KindAny", d.Kind())
	}

	// Knob off: plain interface type.
	off := config.NewConfig(config.WithUniversalInterface(false))
	d, _, err = s.TryNormalize(anyType, off)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if d.Kind() != apis.KindType {
		t.Fatalf("Kind = %v, want KindType", d.Kind())
	}
}

func TestDescriptorStrategy(t *testing.T) {
	s := strategy.NewDescriptorStrategy()

	d, err := apis.OfType(reflect.TypeOf(payload{}))
	if err != nil {
		t.Fatalf("OfType: %v", err)
	}
	got, handled, err := s.TryNormalize(d, cfg())
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if !got.Equal(d) {
		t.Fatalf("descriptor changed: %v -> %v", d, got)
	}

	// Zero descriptor is an invalid hint.
	var zero apis.Descriptor
	if _, handled, err := s.TryNormalize(zero, cfg()); !handled || !errors.Is(err, apis.ErrInvalidHint) {
		t.Fatalf("zero descriptor: handled=%v err=%v", handled, err)
	}

	// Non-descriptors fall through.
	if _, handled, _ := s.TryNormalize(reflect.TypeOf(0), cfg()); handled {
		t.Fatal("descriptor strategy handled a reflect.Type")
	}
}

func TestDescriptorStrategy_DepthLimit(t *testing.T) {
	s := strategy.NewDescriptorStrategy()

	// Build a descriptor nested beyond MaxDepth=2.
	d, err := apis.OfType(reflect.TypeOf(0))
	if err != nil {
		t.Fatalf("OfType: %v", err)
	}
	for i := 0; i < 3; i++ {
		d, err = apis.Parameterized(reflect.TypeOf([]int{}), d)
		if err != nil {
			t.Fatalf("Parameterized: %v", err)
		}
	}

	shallow := config.NewConfig(config.WithMaxDepth(2))
	if _, handled, err := s.TryNormalize(d, shallow); !handled || !errors.Is(err, apis.ErrHintDepth) {
		t.Fatalf("deep descriptor: handled=%v err=%v", handled, err)
	}

	// Default depth accepts it.
	if _, _, err := s.TryNormalize(d, cfg()); err != nil {
		t.Fatalf("default depth rejected: %v", err)
	}
}

func TestValueStrategy(t *testing.T) {
	s := strategy.NewValueStrategy()

	d, handled, err := s.TryNormalize(payload{}, cfg())
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if d.Type() != reflect.TypeOf(payload{}) {
		t.Fatalf("descriptor type = %v", d.Type())
	}

	// Values carrying an empty interface dynamic type cannot exist; a plain
	// int hints at int.
	d, _, err = s.TryNormalize(42, cfg())
	if err != nil || d.Type() != reflect.TypeOf(0) {
		t.Fatalf("int: d=%v err=%v", d, err)
	}
}

func TestHinterStrategy(t *testing.T) {
	s := strategy.NewHinterStrategy()

	d, handled, err := s.TryNormalize(hintedPayload{}, cfg())
	if !handled || err != nil {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	if d.Type() != reflect.TypeOf(payload{}) {
		t.Fatalf("declared hint ignored: %v", d)
	}

	// A nil declared hint is invalid.
	if _, handled, err := s.TryNormalize(badHinter{}, cfg()); !handled || !errors.Is(err, apis.ErrInvalidHint) {
		t.Fatalf("nil declared hint: handled=%v err=%v", handled, err)
	}

	// Non-hinters fall through.
	if _, handled, _ := s.TryNormalize(payload{}, cfg()); handled {
		t.Fatal("hinter strategy handled a non-hinter")
	}
}

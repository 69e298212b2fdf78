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

package normalizer_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/config"
	"dirpx.dev/sentinel/normalizer"
	"dirpx.dev/sentinel/strategy"
)

// Local test types.
type widget struct{}
type gadget struct{}

// full returns the production chain.
func full() apis.Normalizer {
	return normalizer.New(
		strategy.NewGuardStrategy(),
		strategy.NewHinterStrategy(),
		strategy.NewDescriptorStrategy(),
		strategy.NewTypeStrategy(),
		strategy.NewValueStrategy(),
	)
}

func TestNormalize_EquivalentForms(t *testing.T) {
	n := full()
	cfg := config.DefaultConfig()

	// A type hint and a value hint of that type normalize identically.
	dt, err := n.Normalize(reflect.TypeOf(widget{}), cfg)
	if err != nil {
		t.Fatalf("type hint: %v", err)
	}
	dv, err := n.Normalize(widget{}, cfg)
	if err != nil {
		t.Fatalf("value hint: %v", err)
	}
	if !dt.Equal(dv) {
		t.Fatalf("type and value forms disagree: %v vs %v", dt, dv)
	}

	// A pre-built descriptor passes through untouched.
	dd, err := n.Normalize(dt, cfg)
	if err != nil {
		t.Fatalf("descriptor hint: %v", err)
	}
	if !dd.Equal(dt) {
		t.Fatalf("descriptor changed in normalization: %v vs %v", dd, dt)
	}
}

func TestNormalize_DistinctTypes(t *testing.T) {
	n := full()
	cfg := config.DefaultConfig()

	dw, err := n.Normalize(widget{}, cfg)
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	dg, err := n.Normalize(gadget{}, cfg)
	if err != nil {
		t.Fatalf("gadget: %v", err)
	}
	if dw.Equal(dg) {
		t.Fatal("distinct types normalized to equal descriptors")
	}
}

func TestNormalize_InvalidHints(t *testing.T) {
	n := full()
	cfg := config.DefaultConfig()

	for _, raw := range []any{
		nil,
		apis.NewInstance(apis.Universal()),
		reflect.TypeOf(apis.Instance{}),
	} {
		if _, err := n.Normalize(raw, cfg); !errors.Is(err, apis.ErrInvalidHint) {
			t.Fatalf("hint %v: got %v, want ErrInvalidHint", raw, err)
		}
	}
}

func TestNormalize_GuardWinsOverFallback(t *testing.T) {
	n := full()
	cfg := config.DefaultConfig()

	// A placeholder is a perfectly ordinary value; only chain order keeps
	// the fallback from hinting at its dynamic type.
	inst := apis.NewInstance(apis.Universal())
	if _, err := n.Normalize(inst, cfg); !errors.Is(err, apis.ErrInvalidHint) {
		t.Fatalf("placeholder hint: got %v, want ErrInvalidHint", err)
	}
}

func TestNormalize_EmptyChain(t *testing.T) {
	n := normalizer.New()
	if _, err := n.Normalize(42, config.DefaultConfig()); !errors.Is(err, apis.ErrUnhandledHint) {
		t.Fatalf("empty chain: got %v, want ErrUnhandledHint", err)
	}
}

func TestNew_IgnoresNilStrategies(t *testing.T) {
	n := normalizer.New(nil, strategy.NewValueStrategy(), nil)
	d, err := n.Normalize(widget{}, config.DefaultConfig())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if d.Type() != reflect.TypeOf(widget{}) {
		t.Fatalf("descriptor = %v", d)
	}
}

func TestNew_NormalizersCompareByIdentity(t *testing.T) {
	a := normalizer.New(strategy.NewValueStrategy())
	b := normalizer.New(strategy.NewValueStrategy())

	// Layer swaps compare normalizer interfaces; that must be a plain
	// identity check, never a panic.
	if a == b {
		t.Fatal("independently built normalizers compare equal")
	}
	if a != a {
		t.Fatal("normalizer does not compare equal to itself")
	}
}

// Compile-time interface checks.
var _ apis.Normalizer = normalizer.New()

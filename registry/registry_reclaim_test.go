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

package registry_test

import (
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/config"
	"dirpx.dev/sentinel/registry"
)

type transient struct{}

// create registers an instance without letting a strong reference escape to
// the caller's frame.
func create(t *testing.T, reg apis.Registry) string {
	t.Helper()
	d, err := apis.OfType(reflect.TypeOf(transient{}))
	require.NoError(t, err)
	inst, err := reg.GetOrCreate(d)
	require.NoError(t, err)
	require.NotNil(t, inst)
	return d.Key()
}

func TestReclaim_LazySweep(t *testing.T) {
	reg := registry.New(config.NewConfig(config.WithEagerReclaim(false)))
	key := create(t, reg)

	// With the only strong reference gone, collection empties the slot.
	// Lookup and Len prune it; the descriptor catalog survives.
	require.Eventually(t, func() bool {
		runtime.GC()
		_, ok := reg.LookupKey(key)
		return !ok
	}, 5*time.Second, 10*time.Millisecond, "instance was never reclaimed")

	require.Zero(t, reg.Len())
	require.Zero(t, reg.Sweep())

	_, ok := reg.DescriptorFor(key)
	require.True(t, ok, "catalog lost the descriptor on reclamation")

	// A fresh request mints a new identity in the vacated slot.
	d, err := apis.OfType(reflect.TypeOf(transient{}))
	require.NoError(t, err)
	inst, err := reg.GetOrCreate(d)
	require.NoError(t, err)
	require.NotNil(t, inst)
	require.Equal(t, 1, reg.Len())
}

func TestReclaim_Eager(t *testing.T) {
	reg := registry.New(config.NewConfig(config.WithEagerReclaim(true)))
	create(t, reg)

	// The cleanup removes the slot shortly after collection, without any
	// registry traffic forcing a prune.
	require.Eventually(t, func() bool {
		runtime.GC()
		return reg.Len() == 0
	}, 5*time.Second, 10*time.Millisecond, "cleanup never ran")
}

func TestReclaim_LiveReferenceBlocks(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	d, err := apis.OfType(reflect.TypeOf(transient{}))
	require.NoError(t, err)
	inst, err := reg.GetOrCreate(d)
	require.NoError(t, err)

	// A held reference keeps the slot live across collections.
	for i := 0; i < 3; i++ {
		runtime.GC()
	}
	got, ok := reg.Lookup(d)
	require.True(t, ok)
	require.Same(t, inst, got)
	require.Equal(t, 1, reg.Len())

	runtime.KeepAlive(inst)
}

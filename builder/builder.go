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

package builder

import (
	"dirpx.dev/sentinel/apis"
	"dirpx.dev/sentinel/normalizer"
	"dirpx.dev/sentinel/registry"
	"dirpx.dev/sentinel/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its live instances are adopted into the new registry so they keep
// their identity across the rebuild.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Adopt(e.Instance)
		}
	}
	return nreg
}

// BuildNormalizer builds and returns a new apis.Normalizer based on the
// provided configuration. The chain order is significant: the guard must run
// before any producing strategy, and the value fallback must run last.
func (b *builder) BuildNormalizer(_ apis.Config, _ apis.Registry, _ apis.Normalizer, _ any) apis.Normalizer {
	return normalizer.New(
		strategy.NewGuardStrategy(),
		strategy.NewHinterStrategy(),
		strategy.NewDescriptorStrategy(),
		strategy.NewTypeStrategy(),
		strategy.NewValueStrategy(),
	)
}

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

package strategy

import (
	"reflect"

	"dirpx.dev/sentinel/apis"
	uref "dirpx.dev/sentinel/utils/reflect"
)

// NewTypeStrategy creates an apis.Strategy that canonicalizes reflect.Type
// hints.
func NewTypeStrategy() apis.Strategy {
	return typeStrategy{}
}

// typeStrategy handles explicit reflect.Type hints, mapping the empty
// interface to the universal descriptor when configured.
type typeStrategy struct{}

// Ensure typeStrategy implements apis.Strategy.
var _ apis.Strategy = (*typeStrategy)(nil)

// TryNormalize canonicalizes raw if it is a reflect.Type.
func (typeStrategy) TryNormalize(raw any, cfg apis.Config) (apis.Descriptor, bool, error) {
	t, ok := raw.(reflect.Type)
	if !ok {
		return apis.Descriptor{}, false, nil
	}
	d, err := fromType(t, cfg)
	return d, true, err
}

// fromType canonicalizes a reflect.Type according to cfg. Shared by the
// type, value, and hinter strategies.
func fromType(t reflect.Type, cfg apis.Config) (apis.Descriptor, error) {
	if t == nil {
		return apis.Descriptor{}, apis.ErrNilType
	}
	if cfg.UniversalInterface && uref.IsEmptyInterface(t) {
		return apis.Universal(), nil
	}
	return apis.OfType(t)
}

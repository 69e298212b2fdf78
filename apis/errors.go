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
	"errors"
	"fmt"
)

var (
	// ErrSentinel is the base error. Every error produced by this module
	// wraps it, so errors.Is(err, ErrSentinel) identifies library errors.
	ErrSentinel = errors.New("sentinel")
	// ErrInvalidHint marks hints that can never serve as an emptiness target.
	ErrInvalidHint = fmt.Errorf("%w: invalid hint", ErrSentinel)
	// ErrSubscriptedType marks construction calls whose type-parameter and
	// explicit hint disagree.
	ErrSubscriptedType = fmt.Errorf("%w: subscripted type mismatch", ErrSentinel)
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = fmt.Errorf("%w: nil reflect.Type", ErrSentinel)
	// ErrInvalidDescriptor is returned when a zero descriptor reaches the
	// registry or a parameterized construction.
	ErrInvalidDescriptor = fmt.Errorf("%w: invalid descriptor", ErrSentinel)
	// ErrHintDepth rejects hints nested deeper than Config.MaxDepth.
	ErrHintDepth = fmt.Errorf("%w: hint exceeds max depth", ErrSentinel)
	// ErrUnhandledHint is returned when no normalization strategy handled
	// the raw hint.
	ErrUnhandledHint = fmt.Errorf("%w: no strategy handled hint", ErrSentinel)
	// ErrDuplicateInstance is returned by Adopt when the descriptor slot is
	// already occupied by a different live instance.
	ErrDuplicateInstance = fmt.Errorf("%w: descriptor already has a live instance", ErrSentinel)
	// ErrNilInstance is returned when a nil placeholder is provided.
	ErrNilInstance = fmt.Errorf("%w: nil instance", ErrSentinel)
)

// InvalidHintError reports a raw hint that can never serve as an emptiness
// target: an explicit nil, a placeholder instance, or the placeholder type
// itself. It carries the offending hint for diagnostics.
type InvalidHintError struct {
	// Hint is the rejected raw hint.
	Hint any
}

func (e *InvalidHintError) Error() string {
	if e.Hint == nil {
		return "sentinel: hint cannot be nil"
	}
	return fmt.Sprintf("sentinel: hint cannot be a placeholder or the placeholder type (got %v)", e.Hint)
}

// Unwrap makes errors.Is(err, ErrInvalidHint) and errors.Is(err, ErrSentinel) hold.
func (e *InvalidHintError) Unwrap() error { return ErrInvalidHint }

// SubscriptedTypeError reports a construction call that supplied both a
// type-parameter and an explicit hint which do not agree structurally.
// Both conflicting values are carried for diagnostics.
type SubscriptedTypeError struct {
	// Hint is the explicit argument form.
	Hint any
	// Subscripted is the type-parameter form.
	Subscripted any
}

func (e *SubscriptedTypeError) Error() string {
	return fmt.Sprintf("sentinel: subscripted type and explicit hint must match (subscripted %v, hint %v)",
		e.Subscripted, e.Hint)
}

// Unwrap makes errors.Is(err, ErrSubscriptedType) and errors.Is(err, ErrSentinel) hold.
func (e *SubscriptedTypeError) Unwrap() error { return ErrSubscriptedType }

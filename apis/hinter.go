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

// Hinter lets a value declare the hint it stands in for, bypassing
// dynamic-type inspection. The normalizer's hinter strategy consults it
// before the type/value fallbacks.
//
// The declared hint must be a reflect.Type, a Descriptor, or a plain value
// whose dynamic type is the intended hint. It must not be a placeholder, the
// placeholder type, or another Hinter.
//
// Implementations must be safe for concurrent use and must not perform
// blocking operations.
type Hinter interface {
	// SentinelHint returns the raw hint this value stands in for.
	SentinelHint() any
}

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

package reflect

import (
	"reflect"
	"strconv"
	"strings"
)

// Key returns a canonical string encoding of t, unique across types.
//
// Named types encode as "pkgpath.Name" (builtins as their bare name), and
// unnamed composites recurse structurally:
//   - ptr        -> "*" + Key(elem)
//   - slice      -> "[]" + Key(elem)
//   - array      -> "[n]" + Key(elem)
//   - map        -> "map[" + Key(key) + "]" + Key(elem)
//   - chan       -> direction prefix + Key(elem)
//   - func       -> "func(" + params + ")(" + results + ")"
//   - struct     -> "struct{" + fields (name, Key(type), tag) + "}"
//   - interface  -> "interface{" + methods (name + Key(signature)) + "}"
//
// Unnamed types cannot be cyclic in Go, so the recursion terminates without
// a depth guard. reflect.Type.String alone is not sufficient here: distinct
// packages can share a short name, and the key doubles as a registry map key
// where collisions would merge distinct descriptors. Anonymous struct and
// interface encodings recurse for the same reason, and qualify unexported
// names with their package path since those never unify across packages.
func Key(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if name := t.Name(); name != "" {
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + "." + name
		}
		return name
	}
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + Key(t.Elem())
	case reflect.Slice:
		return "[]" + Key(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + Key(t.Elem())
	case reflect.Map:
		return "map[" + Key(t.Key()) + "]" + Key(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + Key(t.Elem())
		case reflect.SendDir:
			return "chan<- " + Key(t.Elem())
		default:
			return "chan " + Key(t.Elem())
		}
	case reflect.Func:
		var sb strings.Builder
		sb.WriteString("func(")
		for i := 0; i < t.NumIn(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			if t.IsVariadic() && i == t.NumIn()-1 {
				sb.WriteString("...")
				sb.WriteString(Key(t.In(i).Elem()))
				continue
			}
			sb.WriteString(Key(t.In(i)))
		}
		sb.WriteString(")(")
		for i := 0; i < t.NumOut(); i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(Key(t.Out(i)))
		}
		sb.WriteByte(')')
		return sb.String()
	case reflect.Struct:
		var sb strings.Builder
		sb.WriteString("struct{")
		for i := 0; i < t.NumField(); i++ {
			if i > 0 {
				sb.WriteByte(';')
			}
			f := t.Field(i)
			// PkgPath is non-empty only for unexported field names.
			if f.PkgPath != "" {
				sb.WriteString(f.PkgPath)
				sb.WriteByte('.')
			}
			if !f.Anonymous {
				sb.WriteString(f.Name)
				sb.WriteByte(' ')
			}
			sb.WriteString(Key(f.Type))
			if f.Tag != "" {
				sb.WriteByte(' ')
				sb.WriteString(strconv.Quote(string(f.Tag)))
			}
		}
		sb.WriteByte('}')
		return sb.String()
	case reflect.Interface:
		var sb strings.Builder
		sb.WriteString("interface{")
		for i := 0; i < t.NumMethod(); i++ {
			if i > 0 {
				sb.WriteByte(';')
			}
			m := t.Method(i)
			if m.PkgPath != "" {
				sb.WriteString(m.PkgPath)
				sb.WriteByte('.')
			}
			sb.WriteString(m.Name)
			sb.WriteString(Key(m.Type))
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return t.String()
	}
}

// IsEmptyInterface reports whether t is the empty interface (any).
func IsEmptyInterface(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// TypeOf returns the reflect.Type for T. Unlike reflect.TypeOf on a value,
// it preserves interface types (TypeOf[io.Reader] yields the interface type,
// and TypeOf[any] the empty interface).
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

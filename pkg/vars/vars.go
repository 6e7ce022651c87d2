// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vars holds the variable mapping that templates are rendered
// against.
package vars

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🗺️ Mapping binds variable names to string values. Keys are never removed.
type Mapping map[string]string

// Set stores value under name after coercing it to a string.
func (m Mapping) Set(name string, value any) {
	m[name] = Coerce(value)
}

// Has reports whether name is bound.
func (m Mapping) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Merge copies every entry of other into m, overwriting existing keys.
func (m Mapping) Merge(other Mapping) {
	for k, v := range other {
		m[k] = v
	}
}

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	out.Merge(m)
	return out
}

// 🔄 Coerce converts a config or prompt value to its string form.
func Coerce(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// 🎯 ParseSetPairs parses repeated --set key=value flags. The value is
// everything after the first "=" and is kept verbatim.
func ParseSetPairs(pairs []string) (Mapping, error) {
	out := make(Mapping, len(pairs))
	for _, pair := range pairs {
		index := strings.Index(pair, "=")
		if index <= 0 {
			return nil, errors.Errorf("Invalid --set value: %s", pair)
		}
		key := strings.TrimSpace(pair[:index])
		if key == "" {
			return nil, errors.Errorf("Invalid --set key: %s", pair)
		}
		out[key] = pair[index+1:]
	}
	return out, nil
}

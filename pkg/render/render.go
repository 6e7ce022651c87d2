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

// Package render interpolates {{name}} placeholders against a variable
// mapping.
package render

import (
	"regexp"

	"github.com/walteh/tpull/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownVariable is returned when a placeholder names a variable that is
// not in the mapping.
var ErrUnknownVariable = errors.New("Unknown variable")

// 🧩 placeholder matches {{ name }} with optional inner whitespace.
var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_-]+)\s*\}\}`)

// 🎯 Render replaces every placeholder in tmpl with the named value from vars,
// piped through the transform when one is given. Values are inserted
// verbatim.
func Render(tmpl string, vars map[string]string, transformName string) (string, error) {
	return RenderEscaped(tmpl, vars, transformName, nil)
}

// 🎯 RenderEscaped is Render with every substituted value passed through
// escape. Template text outside placeholders is left untouched.
func RenderEscaped(tmpl string, vars map[string]string, transformName string, escape func(string) string) (string, error) {
	if tmpl == "" {
		return "", nil
	}

	var renderErr error
	out := placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if renderErr != nil {
			return match
		}
		name := placeholder.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			renderErr = errors.Errorf("%w: %s", ErrUnknownVariable, name)
			return match
		}
		value, err := transform.Apply(value, transformName)
		if err != nil {
			renderErr = err
			return match
		}
		if escape != nil {
			value = escape(value)
		}
		return value
	})
	if renderErr != nil {
		return "", renderErr
	}
	return out, nil
}

// 📋 Names lists placeholder names in order of appearance, duplicates
// included.
func Names(tmpl string) []string {
	matches := placeholder.FindAllStringSubmatch(tmpl, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

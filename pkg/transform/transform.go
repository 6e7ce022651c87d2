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

// Package transform holds the closed set of case transforms that can be
// applied to a variable value before it is substituted into a template.
package transform

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownTransform is returned when a name is not in the registry.
var ErrUnknownTransform = errors.New("Unknown transform")

// 🔧 Func converts a raw variable value.
type Func func(value string) string

var (
	caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	separators   = regexp.MustCompile(`[_-]+`)
)

// 🗺️ registry is fixed at compile time; there is no Register.
var registry = map[string]Func{
	"kebab": func(v string) string {
		return join(Words(v), lower, "-")
	},
	"snake": func(v string) string {
		return join(Words(v), lower, "_")
	},
	"camel": func(v string) string {
		words := Words(v)
		if len(words) == 0 {
			return ""
		}
		return lower(words[0]) + join(words[1:], capitalize, "")
	},
	"pascal": func(v string) string {
		return join(Words(v), capitalize, "")
	},
	"upper": upper,
	"lower": lower,
	"upper_words": func(v string) string {
		return join(Words(v), upper, " ")
	},
	"lower_words": func(v string) string {
		return join(Words(v), lower, " ")
	},
	"constant": func(v string) string {
		return join(Words(v), upper, "_")
	},
}

// 🔪 Words splits a value on camel-case boundaries, underscores, hyphens and
// whitespace. An empty or blank value yields no words.
func Words(value string) []string {
	spaced := caseBoundary.ReplaceAllString(value, "$1 $2")
	spaced = separators.ReplaceAllString(spaced, " ")
	return strings.Fields(spaced)
}

// 🎯 Lookup returns the transform registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// 📋 Names returns every registered transform name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🔍 Validate checks that name is empty or registered.
func Validate(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := registry[name]; !ok {
		return errors.Errorf("%w: %s", ErrUnknownTransform, name)
	}
	return nil
}

// 🎯 Apply runs the named transform over value. An empty name returns value
// unchanged.
func Apply(value, name string) (string, error) {
	if name == "" {
		return value, nil
	}
	fn, ok := registry[name]
	if !ok {
		return "", errors.Errorf("%w: %s", ErrUnknownTransform, name)
	}
	return fn(value), nil
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(word)
	return upper(word[:size]) + lower(word[size:])
}

func join(words []string, fn func(string) string, sep string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fn(w)
	}
	return strings.Join(out, sep)
}

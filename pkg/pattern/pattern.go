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

/*
Package pattern turns the "pattern" field of a replacement rule into a
matcher.

	  "/body/flags"             "plain text"
	        |                        |
	+-------+--------+       +-------+-------+
	| Regex literal  |       |    Literal    |
	|   (regexp2)    |       | (byte match)  |
	+-------+--------+       +-------+-------+
	        |                        |
	        +-----------+------------+
	                    |
	              +-----+-----+
	              |  Pattern  |
	              | Count     |
	              | ReplaceAll|
	              +-----------+

A string that looks like a regex literal but fails to parse is an error, never
a literal. Regex bodies are compiled in ECMAScript mode so that templates
written against JavaScript-style expressions keep their meaning.
*/
package pattern

import (
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRegex is returned for a regex literal that does not parse or
// compile.
var ErrInvalidRegex = errors.New("Invalid regex")

// 🔌 Pattern finds and replaces occurrences in text.
type Pattern interface {
	// Count returns the number of non-overlapping matches in content.
	Count(content string) (int, error)
	// ReplaceAll replaces every match. For regex patterns replacement is a
	// substitution template ($1, ${name}, $$).
	ReplaceAll(content, replacement string) (string, error)
	IsRegex() bool
	String() string
}

// 🔍 LooksLikeRegexLiteral reports whether s has the /body/flags shape: longer
// than one byte, leading slash and another slash after it.
func LooksLikeRegexLiteral(s string) bool {
	return len(s) > 1 && s[0] == '/' && strings.LastIndexByte(s, '/') > 0
}

// 🎯 Parse returns a Regex for a well-formed regex literal and a Literal for
// anything that does not look like one.
func Parse(s string) (Pattern, error) {
	if !LooksLikeRegexLiteral(s) {
		return Literal(s), nil
	}
	re, err := ParseRegexLiteral(s)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// 📝 splitLiteral finds the rightmost unescaped slash after index 0 and
// returns the body and flags around it.
func splitLiteral(s string) (body, flags string, ok bool) {
	if len(s) < 2 || s[0] != '/' {
		return "", "", false
	}
	for i := len(s) - 1; i > 0; i-- {
		if s[i] != '/' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return s[1:i], s[i+1:], true
		}
	}
	return "", "", false
}

// 🎯 ParseRegexLiteral compiles a /body/flags literal. Escaped slashes inside
// the body stay part of the body.
func ParseRegexLiteral(s string) (*Regex, error) {
	body, flags, ok := splitLiteral(s)
	if !ok {
		return nil, errors.Errorf("%w: %s (missing closing slash)", ErrInvalidRegex, s)
	}

	opts, dotAll, err := options(flags)
	if err != nil {
		return nil, errors.Errorf("%w: %s (%s)", ErrInvalidRegex, s, err.Error())
	}

	expr := body
	if dotAll {
		expr = expandDotAll(body)
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, errors.Errorf("%w: %s (%s)", ErrInvalidRegex, s, err.Error())
	}

	return &Regex{re: re, Source: body, Flags: flags, literal: s}, nil
}

// 🎯 CompileBare compiles an expression given without slashes or flags.
func CompileBare(expr string) (*Regex, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, errors.Errorf("%w: %s (%s)", ErrInvalidRegex, expr, err.Error())
	}
	return &Regex{re: re, Source: expr, literal: expr}, nil
}

// options maps literal flags onto regexp2 options and reports whether s was
// given.
//
// g is accepted but has no effect since replacement is always global. d and u
// are no-ops: regexp2 matches code points already. ECMAScript mode has no
// single-line option, so s is applied by expandDotAll instead.
func options(flags string) (regexp2.RegexOptions, bool, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	dotAll := false
	seen := make(map[rune]bool, len(flags))

	for _, f := range flags {
		if seen[f] {
			return 0, false, errors.Errorf("duplicate flag %q", f)
		}
		seen[f] = true

		switch f {
		case 'g', 'd', 'u':
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			dotAll = true
		default:
			return 0, false, errors.Errorf("unsupported flag %q", f)
		}
	}

	return opts, dotAll, nil
}

// expandDotAll rewrites every unescaped "." outside a character class to
// [\s\S] so it also matches line terminators. Class shorthands keep their
// ECMAScript meaning.
func expandDotAll(body string) string {
	var b strings.Builder
	b.Grow(len(body))

	inClass := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			b.WriteByte(c)
			i++
			b.WriteByte(body[i])
			continue
		case inClass && c == ']':
			inClass = false
		case !inClass && c == '[':
			inClass = true
		case !inClass && c == '.':
			b.WriteString(`[\s\S]`)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// 🧩 Regex is a compiled regex literal.
type Regex struct {
	re      *regexp2.Regexp
	literal string

	Source string
	Flags  string
}

func (r *Regex) IsRegex() bool { return true }

func (r *Regex) String() string { return r.literal }

// 🔢 Count walks matches left to right. After a zero-length match the next
// search starts one position later, so the walk always terminates.
func (r *Regex) Count(content string) (int, error) {
	count := 0
	m, err := r.re.FindStringMatch(content)
	for m != nil && err == nil {
		count++
		m, err = r.re.FindNextMatch(m)
	}
	if err != nil {
		return 0, errors.Errorf("matching %s: %w", r.literal, err)
	}
	return count, nil
}

// 🔄 ReplaceAll substitutes every match.
func (r *Regex) ReplaceAll(content, replacement string) (string, error) {
	out, err := r.re.Replace(content, replacement, -1, -1)
	if err != nil {
		return "", errors.Errorf("replacing %s: %w", r.literal, err)
	}
	return out, nil
}

// ✅ Match reports whether s contains a match.
func (r *Regex) Match(s string) (bool, error) {
	ok, err := r.re.MatchString(s)
	if err != nil {
		return false, errors.Errorf("matching %s: %w", r.literal, err)
	}
	return ok, nil
}

// 📄 Literal matches its text verbatim.
type Literal string

func (l Literal) IsRegex() bool { return false }

func (l Literal) String() string { return string(l) }

// 🔢 Count counts non-overlapping occurrences scanning forward.
func (l Literal) Count(content string) (int, error) {
	if l == "" {
		return 0, errors.New("empty literal pattern")
	}
	return strings.Count(content, string(l)), nil
}

// 🔄 ReplaceAll replaces every occurrence with replacement taken verbatim.
func (l Literal) ReplaceAll(content, replacement string) (string, error) {
	if l == "" {
		return "", errors.New("empty literal pattern")
	}
	return strings.ReplaceAll(content, string(l), replacement), nil
}

// 💲 EscapeReplacement makes s safe to use as literal text inside a regex
// substitution template.
func EscapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

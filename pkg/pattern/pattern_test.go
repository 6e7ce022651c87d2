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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLooksLikeRegexLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "/a/", want: true},
		{input: "/a/gi", want: true},
		{input: "//", want: true},
		{input: "/a", want: false},
		{input: "/", want: false},
		{input: "", want: false},
		{input: "a/b/", want: false},
		{input: "plain", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeRegexLiteral(tt.input), "looks-like result should match")
		})
	}
}

func TestParseRegexLiteral(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSource string
		wantFlags  string
		wantErr    bool
	}{
		{name: "escaped_slash_in_body", input: `/a\/b/i`, wantSource: `a\/b`, wantFlags: "i"},
		{name: "no_flags", input: `/foo/`, wantSource: "foo"},
		{name: "all_supported_flags", input: `/x/gimsu`, wantSource: "x", wantFlags: "gimsu"},
		{name: "escaped_backslash_before_slash", input: `/a\\/g`, wantSource: `a\\`, wantFlags: "g"},
		{name: "only_escaped_closing_slash", input: `/a\/`, wantErr: true},
		{name: "bad_body", input: `/a(/`, wantErr: true},
		{name: "unknown_flag", input: `/a/q`, wantErr: true},
		{name: "sticky_flag_rejected", input: `/a/y`, wantErr: true},
		{name: "duplicate_flag", input: `/a/ii`, wantErr: true},
		{name: "not_a_literal", input: `abc`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := ParseRegexLiteral(tt.input)
			if tt.wantErr {
				require.Error(t, err, "parse should fail")
				assert.True(t, errors.Is(err, ErrInvalidRegex), "error should be ErrInvalidRegex")
				assert.Nil(t, re, "regex should be nil on failure")
				return
			}
			require.NoError(t, err, "parse should succeed")
			assert.Equal(t, tt.wantSource, re.Source, "body should match")
			assert.Equal(t, tt.wantFlags, re.Flags, "flags should match")
		})
	}
}

func TestParseRegexLiteral_EscapedSlashMatches(t *testing.T) {
	re, err := ParseRegexLiteral(`/a\/b/i`)
	require.NoError(t, err, "parse should succeed")

	ok, err := re.Match("xx A/B yy")
	require.NoError(t, err, "match should succeed")
	assert.True(t, ok, "case-insensitive body with slash should match")
}

func TestParse(t *testing.T) {
	p, err := Parse("hello")
	require.NoError(t, err, "literal should parse")
	assert.False(t, p.IsRegex(), "plain text should be a literal")

	p, err = Parse("/h.llo/")
	require.NoError(t, err, "regex literal should parse")
	assert.True(t, p.IsRegex(), "slash form should be a regex")
	assert.Equal(t, "/h.llo/", p.String(), "string form should be the original literal")

	_, err = Parse("/broken[/")
	require.Error(t, err, "malformed literal must not fall back to a literal")
	assert.True(t, errors.Is(err, ErrInvalidRegex), "error should be ErrInvalidRegex")
	assert.Contains(t, err.Error(), "Invalid regex: /broken[/", "message should name the pattern")
}

func TestCount(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		content string
		want    int
	}{
		{name: "literal_non_overlapping", pattern: "aa", content: "aaaa", want: 2},
		{name: "literal_none", pattern: "zz", content: "aaaa", want: 0},
		{name: "regex_global", pattern: "/o/g", content: "foo boo", want: 4},
		{name: "regex_without_g_counts_all", pattern: "/o/", content: "foo boo", want: 4},
		{name: "regex_zero_length", pattern: "/x*/g", content: "abc", want: 4},
		{name: "regex_anchor_multiline", pattern: "/^a/m", content: "a\na\nb", want: 2},
		{name: "regex_anchor_single", pattern: "/^a/", content: "a\na\nb", want: 1},
		{name: "regex_dot_all", pattern: "/a.b/s", content: "a\nb", want: 1},
		{name: "regex_dot_no_newline", pattern: "/a.b/", content: "a\nb", want: 0},
		{name: "regex_dot_all_keeps_ascii_digits", pattern: `/\d/s`, content: "٣", want: 0},
		{name: "regex_dot_all_class_dot_literal", pattern: "/[.]/s", content: "a\n.", want: 1},
		{name: "regex_dot_all_escaped_dot", pattern: `/a\.b/s`, content: "a\nb a.b", want: 1},
		{name: "regex_ignore_case", pattern: "/foo/i", content: "Foo FOO foo", want: 3},
		{name: "regex_unicode_text", pattern: "/é/", content: "café été", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.pattern)
			require.NoError(t, err, "pattern should parse")
			got, err := p.Count(tt.content)
			require.NoError(t, err, "count should succeed")
			assert.Equal(t, tt.want, got, "count should match")
		})
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		content     string
		replacement string
		want        string
	}{
		{name: "literal", pattern: "foo", content: "foo foo", replacement: "BAR", want: "BAR BAR"},
		{name: "literal_dollar_verbatim", pattern: "foo", content: "foo", replacement: "$1$$", want: "$1$$"},
		{name: "regex_all_matches", pattern: "/o/", content: "foo", replacement: "0", want: "f00"},
		{name: "regex_backreference", pattern: `/(\w+)@(\w+)/`, content: "me@host", replacement: "$2 at $1", want: "host at me"},
		{name: "regex_escaped_dollar", pattern: "/x/", content: "x", replacement: EscapeReplacement("$1"), want: "$1"},
		{name: "regex_zero_length", pattern: "/x*/g", content: "abc", replacement: "-", want: "-a-b-c-"},
		{name: "regex_word_ascii", pattern: `/\w+/`, content: "café", replacement: "X", want: "Xé"},
		{name: "regex_dot_all_word_ascii", pattern: `/\w+/s`, content: "café", replacement: "X", want: "Xé"},
		{name: "regex_dot_all_spans_lines", pattern: "/<a>.*<\\/a>/s", content: "<a>1\n2</a>", replacement: "-", want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.pattern)
			require.NoError(t, err, "pattern should parse")
			got, err := p.ReplaceAll(tt.content, tt.replacement)
			require.NoError(t, err, "replace should succeed")
			assert.Equal(t, tt.want, got, "replaced content should match")
		})
	}
}

func TestExpandDotAll(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bare_dot", body: "a.b", want: `a[\s\S]b`},
		{name: "escaped_dot", body: `a\.b`, want: `a\.b`},
		{name: "dot_in_class", body: "[.a]", want: "[.a]"},
		{name: "escaped_bracket", body: `\[.\]`, want: `\[[\s\S]\]`},
		{name: "escaped_backslash_then_dot", body: `\\.`, want: `\\[\s\S]`},
		{name: "class_with_escaped_close", body: `[\].]`, want: `[\].]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandDotAll(tt.body), "rewritten body should match")
		})
	}
}

func TestCompileBare(t *testing.T) {
	re, err := CompileBare(`^[a-z][a-z0-9-]*$`)
	require.NoError(t, err, "bare pattern should compile")

	ok, err := re.Match("my-app")
	require.NoError(t, err, "match should succeed")
	assert.True(t, ok, "valid name should match")

	ok, err = re.Match("My App")
	require.NoError(t, err, "match should succeed")
	assert.False(t, ok, "invalid name should not match")

	_, err = CompileBare("(")
	assert.True(t, errors.Is(err, ErrInvalidRegex), "bad bare pattern should be ErrInvalidRegex")
}

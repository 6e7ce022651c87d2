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

package prompt

import (
	"bytes"
	"context"
	"os"
	"testing"
	"unicode"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/vars"
	"gitlab.com/tozd/go/errors"
)

// scriptedPrompter returns canned answers in order.
type scriptedPrompter struct {
	answers []string
	asked   []string
	err     error
}

func (p *scriptedPrompter) Prompt(label string) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", ErrCancelled
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Close() error { return nil }

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestCollect_SkipPrompt(t *testing.T) {
	tests := []struct {
		name        string
		prompts     []config.Prompt
		initial     vars.Mapping
		want        vars.Mapping
		wantErr     error
		errContains string
	}{
		{
			name:    "default_is_used",
			prompts: []config.Prompt{{Var: "name", Default: "demo"}},
			initial: vars.Mapping{},
			want:    vars.Mapping{"name": "demo"},
		},
		{
			name:    "numeric_default_is_coerced",
			prompts: []config.Prompt{{Var: "port", Default: 8080}},
			initial: vars.Mapping{},
			want:    vars.Mapping{"port": "8080"},
		},
		{
			name:    "existing_value_wins",
			prompts: []config.Prompt{{Var: "name", Default: "demo", Required: true}},
			initial: vars.Mapping{"name": "set"},
			want:    vars.Mapping{"name": "set"},
		},
		{
			name:    "optional_without_default_stays_unset",
			prompts: []config.Prompt{{Var: "desc"}},
			initial: vars.Mapping{},
			want:    vars.Mapping{},
		},
		{
			name:        "required_without_default_fails",
			prompts:     []config.Prompt{{Var: "name", Required: true}},
			initial:     vars.Mapping{},
			wantErr:     ErrMissingRequired,
			errContains: "Missing required variable: name",
		},
		{
			name:    "invalid_validate_is_not_checked",
			prompts: []config.Prompt{{Var: "name", Default: "x", Validate: "/[/"}},
			initial: vars.Mapping{},
			want:    vars.Mapping{"name": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collector{}
			err := c.Collect(testContext(t), tt.prompts, tt.initial, true)
			if tt.wantErr != nil {
				require.Error(t, err, "collect should fail")
				assert.True(t, errors.Is(err, tt.wantErr), "error should match sentinel")
				assert.Equal(t, tt.errContains, err.Error(), "error message should match")
				return
			}
			require.NoError(t, err, "collect should succeed")
			assert.Equal(t, tt.want, tt.initial, "variables should match")
		})
	}
}

func TestCollect_Interactive(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name       string
		prompts    []config.Prompt
		answers    []string
		want       vars.Mapping
		wantOutput string
	}{
		{
			name:    "plain_answer",
			prompts: []config.Prompt{{Var: "name", Message: "Name"}},
			answers: []string{"demo"},
			want:    vars.Mapping{"name": "demo"},
		},
		{
			name:    "empty_answer_takes_default",
			prompts: []config.Prompt{{Var: "name", Message: "Name", Default: "fallback", Required: true}},
			answers: []string{""},
			want:    vars.Mapping{"name": "fallback"},
		},
		{
			name:       "required_reasks_on_blank",
			prompts:    []config.Prompt{{Var: "name", Message: "Name", Required: true}},
			answers:    []string{"  ", "ok"},
			want:       vars.Mapping{"name": "ok"},
			wantOutput: "This field is required.\n",
		},
		{
			name:       "validate_regex_literal",
			prompts:    []config.Prompt{{Var: "name", Message: "Name", Validate: "/^[a-z]+$/"}},
			answers:    []string{"Bad1", "good"},
			want:       vars.Mapping{"name": "good"},
			wantOutput: "Invalid format.\n",
		},
		{
			name:    "validate_flags_apply",
			prompts: []config.Prompt{{Var: "name", Message: "Name", Validate: "/^[a-z]+$/i"}},
			answers: []string{"MiXed"},
			want:    vars.Mapping{"name": "MiXed"},
		},
		{
			name:       "validate_bare_expression",
			prompts:    []config.Prompt{{Var: "port", Message: "Port", Validate: `^\d+$`}},
			answers:    []string{"http", "80"},
			want:       vars.Mapping{"port": "80"},
			wantOutput: "Invalid format.\n",
		},
		{
			name:    "optional_blank_skips_validation",
			prompts: []config.Prompt{{Var: "desc", Message: "Description", Validate: `^\d+$`}},
			answers: []string{""},
			want:    vars.Mapping{"desc": ""},
		},
		{
			name: "only_missing_vars_are_asked",
			prompts: []config.Prompt{
				{Var: "owner", Message: "Owner"},
				{Var: "name", Message: "Name"},
			},
			answers: []string{"demo"},
			want:    vars.Mapping{"owner": "acme", "name": "demo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &scriptedPrompter{answers: tt.answers}
			c := &Collector{Prompter: p, Out: &out}

			m := vars.Mapping{}
			if _, ok := tt.want["owner"]; ok {
				m["owner"] = "acme"
			}

			err := c.Collect(testContext(t), tt.prompts, m, false)
			require.NoError(t, err, "collect should succeed")
			assert.Equal(t, tt.want, m, "variables should match")
			assert.Equal(t, tt.wantOutput, out.String(), "validation output should match")
			assert.Empty(t, p.answers, "all answers should be consumed")
		})
	}
}

func TestCollect_InvalidValidateFailsBeforeAsking(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"a", "b"}}
	c := &Collector{Prompter: p, Out: &bytes.Buffer{}}

	err := c.Collect(testContext(t), []config.Prompt{
		{Var: "first", Message: "First"},
		{Var: "second", Message: "Second", Validate: "/(/"},
	}, vars.Mapping{}, false)

	require.Error(t, err, "collect should fail")
	assert.True(t, errors.Is(err, ErrInvalidValidate), "error should be ErrInvalidValidate")
	assert.Equal(t, "Invalid validate for second: /(/", err.Error(), "error message should match")
	assert.Empty(t, p.asked, "no prompt should be shown")
}

func TestCollect_Cancelled(t *testing.T) {
	p := &scriptedPrompter{}
	c := &Collector{Prompter: p, Out: &bytes.Buffer{}}

	err := c.Collect(testContext(t), []config.Prompt{{Var: "name", Message: "Name"}}, vars.Mapping{}, false)
	require.Error(t, err, "collect should fail")
	assert.True(t, errors.Is(err, ErrCancelled), "error should be ErrCancelled")
	assert.Equal(t, "cancelled by user", err.Error(), "error message should match")
}

func TestPromptLabel(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "🔹 Name ", promptLabel(config.Prompt{Message: "Name"}), "label without default should match")
	assert.Equal(t, "🔹 Port (8080) ", promptLabel(config.Prompt{Message: "Port", Default: 8080}), "label with default should match")
}

func forceColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })
}

func TestPlainPrompt(t *testing.T) {
	forceColor(t)

	label := promptLabel(config.Prompt{Message: "Port", Default: 8080})
	require.Contains(t, label, "\x1b[", "colored label should carry escapes")

	plain := plainPrompt(label)
	assert.Equal(t, "🔹 Port (8080) ", plain, "plain prompt should keep the text")
	for _, r := range plain {
		assert.False(t, unicode.Is(unicode.C, r), "plain prompt should have no control rune %q", r)
	}
}

func TestLinerPrompter_ColoredLabel(t *testing.T) {
	forceColor(t)

	r, w, err := os.Pipe()
	require.NoError(t, err, "pipe should open")
	_, err = w.WriteString("demo\n")
	require.NoError(t, err, "writing input should succeed")
	require.NoError(t, w.Close(), "closing writer should succeed")

	stdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = stdin
		r.Close()
	})

	lp := NewLinerPrompter()
	defer lp.Close()

	answer, err := lp.Prompt(promptLabel(config.Prompt{Message: "Project name"}))
	assert.NotErrorIs(t, err, liner.ErrInvalidPrompt, "styled label must not be rejected")
	if err == nil {
		assert.Equal(t, "demo", answer, "answer should be read from input")
	}
}

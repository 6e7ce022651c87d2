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

// Package prompt collects template variables from the user.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/pattern"
	"github.com/walteh/tpull/pkg/vars"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("cancelled by user")
	// ErrMissingRequired is returned in no-prompt mode for a required prompt without a default.
	ErrMissingRequired = errors.New("Missing required variable")
	// ErrInvalidValidate is returned when a prompt's validate pattern does not compile.
	ErrInvalidValidate = errors.New("Invalid validate")
)

const (
	msgRequired      = "This field is required."
	msgInvalidFormat = "Invalid format."
)

// 💬 Prompter reads one line of input.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// LinerPrompter reads lines through a liner terminal.
type LinerPrompter struct {
	*liner.State
}

// 🏭 NewLinerPrompter creates a line editor with Ctrl-C aborting the prompt.
func NewLinerPrompter() *LinerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Prompt maps liner aborts and EOF to ErrCancelled. Styling is stripped from
// prompt since liner rejects control characters.
func (p *LinerPrompter) Prompt(prompt string) (string, error) {
	answer, err := p.State.Prompt(plainPrompt(prompt))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", errors.Errorf("reading input: %w", err)
	}
	return answer, nil
}

// 🎯 Collector fills a variable mapping from config prompts.
type Collector struct {
	Prompter Prompter
	// Out receives validation messages. Defaults to stderr.
	Out io.Writer
}

// validator checks one non-blank answer.
type validator interface {
	Match(s string) (bool, error)
}

type pending struct {
	prompt config.Prompt
	check  validator
}

// 🏃 Collect asks every prompt whose var is not already set. With skipPrompt
// it uses defaults and fails on required prompts that have none.
func (c *Collector) Collect(ctx context.Context, prompts []config.Prompt, m vars.Mapping, skipPrompt bool) error {
	logger := zerolog.Ctx(ctx)

	var queue []pending
	for _, p := range prompts {
		if m.Has(p.Var) {
			logger.Debug().Str("var", p.Var).Msg("variable already set, skipping prompt")
			continue
		}

		if skipPrompt {
			switch {
			case p.HasDefault():
				m.Set(p.Var, p.Default)
			case p.Required:
				return errors.Errorf("%w: %s", ErrMissingRequired, p.Var)
			}
			continue
		}

		check, err := buildValidator(p)
		if err != nil {
			return err
		}
		queue = append(queue, pending{prompt: p, check: check})
	}

	if len(queue) == 0 {
		return nil
	}
	if c.Prompter == nil {
		return errors.New("no prompter configured")
	}

	for _, q := range queue {
		answer, err := c.ask(q)
		if err != nil {
			return err
		}
		m.Set(q.prompt.Var, answer)
		logger.Debug().Str("var", q.prompt.Var).Msg("collected answer")
	}

	return nil
}

func (c *Collector) ask(q pending) (string, error) {
	out := c.Out
	if out == nil {
		out = os.Stderr
	}

	label := promptLabel(q.prompt)
	for {
		answer, err := c.Prompter.Prompt(label)
		if err != nil {
			return "", err
		}

		if answer == "" && q.prompt.HasDefault() {
			answer = vars.Coerce(q.prompt.Default)
		}

		blank := strings.TrimSpace(answer) == ""
		if q.prompt.Required && blank {
			fmt.Fprintln(out, color.RedString(msgRequired))
			continue
		}
		if q.check != nil && !blank {
			ok, err := q.check.Match(answer)
			if err != nil {
				return "", errors.Errorf("validating %s: %w", q.prompt.Var, err)
			}
			if !ok {
				fmt.Fprintln(out, color.RedString(msgInvalidFormat))
				continue
			}
		}

		return answer, nil
	}
}

// plainPrompt drops ANSI sequences and any remaining control runes.
func plainPrompt(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.C, r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}

func promptLabel(p config.Prompt) string {
	label := "🔹 " + color.CyanString(p.Message)
	if p.HasDefault() {
		label += color.HiBlackString(" (%s)", vars.Coerce(p.Default))
	}
	return label + " "
}

// buildValidator accepts a regex literal like /^x$/i or a bare expression.
func buildValidator(p config.Prompt) (validator, error) {
	if p.Validate == "" {
		return nil, nil
	}

	if pattern.LooksLikeRegexLiteral(p.Validate) {
		re, err := pattern.ParseRegexLiteral(p.Validate)
		if err != nil {
			return nil, errors.Errorf("%w for %s: %s", ErrInvalidValidate, p.Var, p.Validate)
		}
		return re, nil
	}

	re, err := pattern.CompileBare(p.Validate)
	if err != nil {
		return nil, errors.Errorf("%w for %s: %s", ErrInvalidValidate, p.Var, p.Validate)
	}
	return re, nil
}

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

package text

import (
	"context"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/pathguard"
	"github.com/walteh/tpull/pkg/pattern"
	"github.com/walteh/tpull/pkg/render"
	"gitlab.com/tozd/go/errors"
)

// 📣 Reporter receives the per-file totals after a successful pass.
type Reporter interface {
	Report(ctx context.Context, path string, total int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, path string, total int)

func (f ReporterFunc) Report(ctx context.Context, path string, total int) { f(ctx, path, total) }

// logReporter writes report lines to the context logger.
type logReporter struct{}

func (logReporter) Report(ctx context.Context, path string, total int) {
	zerolog.Ctx(ctx).Info().Str("file", path).Int("total", total).Msg(FormatReport(path, total))
}

// 🎯 Engine applies replacement rules to files on a filesystem.
type Engine struct {
	fs       afero.Fs
	reporter Reporter
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter replaces the default log reporter.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// 🏭 NewEngine creates an engine over fsys.
func NewEngine(fsys afero.Fs, opts ...Option) *Engine {
	e := &Engine{
		fs:       fsys,
		reporter: logReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// 🏃 Apply runs rules against the files under root. vars must already hold
// every variable the rules reference.
func (e *Engine) Apply(ctx context.Context, root string, rules []Rule, vars map[string]string) (*Tally, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	tally := newTally()

	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, errors.Errorf("%w (replacement %d)", ErrInvalidRule, i+1)
		}

		// Values go into a regex substitution template, so their "$" must not
		// turn into group references.
		var escape func(string) string
		if pattern.LooksLikeRegexLiteral(rule.Pattern) {
			escape = pattern.EscapeReplacement
		}
		value, err := render.RenderEscaped(rule.Replace, vars, rule.Transform, escape)
		if err != nil {
			return nil, errors.Errorf("replacement %d: %w", i+1, err)
		}

		p, err := pattern.Parse(rule.Pattern)
		if err != nil {
			return nil, err
		}

		logger.Debug().
			Int("rule", i+1).
			Str("pattern", rule.Pattern).
			Bool("regex", p.IsRegex()).
			Int("files", len(rule.Files)).
			Msg("applying replacement")

		for _, rel := range rule.Files {
			count, err := e.applyFile(ctx, root, rel, p, value, rule.RequiresMatch())
			if err != nil {
				return nil, err
			}
			tally.Add(rel, count)
		}
	}

	for _, path := range tally.order {
		e.reporter.Report(ctx, path, tally.totals[path])
	}

	return tally, nil
}

// 📄 applyFile handles one file of one rule and returns its match count.
func (e *Engine) applyFile(ctx context.Context, root, rel string, p pattern.Pattern, value string, requireMatch bool) (int, error) {
	path, err := pathguard.ResolveFromRoot(root, rel)
	if err != nil {
		return 0, err
	}

	info, err := e.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, errors.Errorf("%w: %s", ErrFileNotFound, rel)
		}
		return 0, errors.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return 0, errors.Errorf("replacement target is a directory: %s", rel)
	}

	content, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", rel, err)
	}

	if IsBinary(content) {
		return 0, errors.Errorf("%w: %s", ErrBinaryFileRejected, rel)
	}

	result, err := ReplaceText(content, p, value)
	if err != nil {
		return 0, errors.Errorf("%s: %w", rel, err)
	}

	if requireMatch && result.ReplacementCount == 0 {
		return 0, errors.Errorf("%w [%s] in file: %s", ErrNoMatch, p.String(), rel)
	}

	if result.WasModified {
		if err := afero.WriteFile(e.fs, path, result.ModifiedContent, info.Mode().Perm()); err != nil {
			return 0, errors.Errorf("writing %s: %w", rel, err)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", rel).
		Int("matches", result.ReplacementCount).
		Bool("written", result.WasModified).
		Msg("processed file")

	return result.ReplacementCount, nil
}

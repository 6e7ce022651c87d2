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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/prompt"
	"github.com/walteh/tpull/pkg/text"
	"github.com/walteh/tpull/pkg/vars"
	"github.com/walteh/tpull/pkg/version"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one tpull workflow.
type Operation interface {
	Execute(ctx context.Context) (*Result, error)
}

// 🔧 Options are shared by every workflow.
type Options struct {
	// ProjectName is the optional second positional argument.
	ProjectName string
	// Sets are raw --set key=value pairs.
	Sets []string
	// SkipPrompt uses defaults instead of asking (--no-prompt).
	SkipPrompt bool
	// WorkDir is where destinations resolve. Defaults to the process cwd.
	WorkDir string
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Prompter defaults to a liner terminal when prompts are needed.
	Prompter prompt.Prompter
	// Reporter receives replacement summaries.
	Reporter text.Reporter
	// Out receives progress UI. Defaults to stderr.
	Out io.Writer
}

// 📋 Result describes what a workflow produced.
type Result struct {
	// Dest is the materialized project, or the template root in local mode.
	Dest  string
	Vars  vars.Mapping
	Tally *text.Tally
}

func (o *Options) defaults() error {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Out == nil {
		o.Out = os.Stderr
	}
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("getting working directory: %w", err)
		}
		o.WorkDir = wd
	}
	return nil
}

// seedVars applies the project name and --set pairs on top of base.
func (o *Options) seedVars(base vars.Mapping) (vars.Mapping, error) {
	m := base.Clone()
	if o.ProjectName != "" {
		m.Set("project_name", o.ProjectName)
	}
	sets, err := vars.ParseSetPairs(o.Sets)
	if err != nil {
		return nil, err
	}
	m.Merge(sets)
	return m, nil
}

// prepare runs the version gate and the prompts for cfg.
func (o *Options) prepare(ctx context.Context, cfg *config.Config, m vars.Mapping) error {
	if err := version.Gate(ctx, cfg.TpullVersion); err != nil {
		return err
	}

	p := o.Prompter
	if p == nil && !o.SkipPrompt && needsPrompt(cfg.Prompts, m) {
		lp := prompt.NewLinerPrompter()
		defer lp.Close()
		p = lp
	}

	c := &prompt.Collector{Prompter: p, Out: o.Out}
	return c.Collect(ctx, cfg.Prompts, m, o.SkipPrompt)
}

func (o *Options) replace(ctx context.Context, root string, cfg *config.Config, m vars.Mapping) (*text.Tally, error) {
	var opts []text.Option
	if o.Reporter != nil {
		opts = append(opts, text.WithReporter(o.Reporter))
	}
	return text.NewEngine(o.Fs, opts...).Apply(ctx, root, cfg.Rules(), m)
}

func needsPrompt(prompts []config.Prompt, m vars.Mapping) bool {
	for _, p := range prompts {
		if !m.Has(p.Var) {
			return true
		}
	}
	return false
}

// destination resolves the output directory: project_name, else repo.
func destination(workDir string, m vars.Mapping, repo string) (string, error) {
	name := strings.TrimSpace(m["project_name"])
	if name == "" {
		name = repo
	}
	if name == "" {
		return "", errors.New("Destination name is required.")
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(workDir, name), nil
}

// ReportedError marks an error the user has already seen on screen.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already printed.
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}

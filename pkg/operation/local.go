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
	"path/filepath"

	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/vars"
	"gitlab.com/tozd/go/errors"
)

// ErrMissingLocalConfig is returned when local mode finds no config.
var ErrMissingLocalConfig = errors.New("Missing tpull-config.yaml in the current directory.")

// 🏠 LocalOptions configures an in-place render of the working directory.
type LocalOptions struct {
	Options
}

// Local applies a template's own replacements to the directory it lives in.
type Local struct {
	opts LocalOptions
}

// 🏭 NewLocal creates the local workflow.
func NewLocal(opts LocalOptions) *Local {
	return &Local{opts: opts}
}

// RunLocal is shorthand for NewLocal(opts).Execute(ctx).
func RunLocal(ctx context.Context, opts LocalOptions) (*Result, error) {
	return NewLocal(opts).Execute(ctx)
}

// 🏃 Execute renders WorkDir in place. Nothing is copied.
func (l *Local) Execute(ctx context.Context) (*Result, error) {
	o := l.opts
	if err := o.defaults(); err != nil {
		return nil, err
	}

	root := o.WorkDir
	repo := filepath.Base(root)
	if repo == "" || repo == "." || repo == string(filepath.Separator) {
		repo = "local"
	}

	m, err := o.seedVars(vars.Mapping{
		"owner": "local",
		"repo":  repo,
		"ref":   "local",
	})
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(ctx, o.Fs, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrMissingLocalConfig
	}

	if err := o.prepare(ctx, cfg, m); err != nil {
		return nil, err
	}

	tally, err := o.replace(ctx, root, cfg, m)
	if err != nil {
		return nil, err
	}

	return &Result{Dest: root, Vars: m, Tally: tally}, nil
}

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
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/archive"
	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/output"
	"github.com/walteh/tpull/pkg/provider"
	"github.com/walteh/tpull/pkg/status"
	"github.com/walteh/tpull/pkg/vars"
	"gitlab.com/tozd/go/errors"

	// registers the github provider
	_ "github.com/walteh/tpull/pkg/provider/github"
)

// 🌐 RemoteOptions configures a pull from a hosted template.
type RemoteOptions struct {
	Options

	// Target is <owner>/<repo>[@<ref>].
	Target string
	// Token authenticates against the host.
	Token string
	// Provider overrides the registry lookup.
	Provider provider.Provider
	// ProviderName selects a registered provider. Defaults to github.
	ProviderName string
}

// Remote downloads, renders and materializes a template repository.
type Remote struct {
	opts RemoteOptions
}

// 🏭 NewRemote creates the remote workflow.
func NewRemote(opts RemoteOptions) *Remote {
	return &Remote{opts: opts}
}

// RunRemote is shorthand for NewRemote(opts).Execute(ctx).
func RunRemote(ctx context.Context, opts RemoteOptions) (*Result, error) {
	return NewRemote(opts).Execute(ctx)
}

// 🏃 Execute runs the remote workflow. The temporary workspace is always
// removed, on success or failure.
func (r *Remote) Execute(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	o := r.opts
	if err := o.defaults(); err != nil {
		return nil, err
	}

	target, err := provider.ParseTarget(o.Target)
	if err != nil {
		return nil, err
	}

	p, err := r.provider(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := provider.ResolveRef(ctx, p, target)
	if err != nil {
		return nil, err
	}

	m, err := o.seedVars(vars.Mapping{
		"owner": target.Owner,
		"repo":  target.Repo,
		"ref":   ref,
	})
	if err != nil {
		return nil, err
	}

	// fail before downloading when the name is already known
	if name, ok := m["project_name"]; ok && strings.TrimSpace(name) != "" {
		dest, err := destination(o.WorkDir, m, target.Repo)
		if err != nil {
			return nil, err
		}
		if err := output.EnsureEmptyDir(o.Fs, dest); err != nil {
			return nil, err
		}
	}

	workDir, err := afero.TempDir(o.Fs, "", "tpull-")
	if err != nil {
		return nil, errors.Errorf("creating workspace: %w", err)
	}
	defer func() {
		if err := o.Fs.RemoveAll(workDir); err != nil {
			logger.Warn().Err(err).Str("dir", workDir).Msg("removing workspace")
		}
	}()

	logger.Debug().Str("workspace", workDir).Str("repo", target.String()).Str("ref", ref).Msg("pulling template")

	archivePath := filepath.Join(workDir, "archive.tgz")
	extractDir := filepath.Join(workDir, "extract")

	if err := r.download(ctx, p, target, ref, archivePath); err != nil {
		return nil, err
	}

	f, err := o.Fs.Open(archivePath)
	if err != nil {
		return nil, errors.Errorf("opening archive: %w", err)
	}
	_, err = archive.ExtractTarGz(ctx, o.Fs, f, extractDir, 1)
	f.Close()
	if err != nil {
		return nil, err
	}

	// a template without config is copied as-is
	cfg, err := config.Load(ctx, o.Fs, extractDir)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if err := o.prepare(ctx, cfg, m); err != nil {
			return nil, err
		}
	}

	dest, err := destination(o.WorkDir, m, target.Repo)
	if err != nil {
		return nil, err
	}
	if err := output.EnsureEmptyDir(o.Fs, dest); err != nil {
		return nil, err
	}

	result := &Result{Dest: dest, Vars: m}

	var ignore []string
	if cfg != nil {
		tally, err := o.replace(ctx, extractDir, cfg, m)
		if err != nil {
			return nil, err
		}
		result.Tally = tally
		ignore = cfg.Ignore
	}

	if _, err := output.CopyTemplate(ctx, o.Fs, extractDir, dest, ignore); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Remote) provider(ctx context.Context) (provider.Provider, error) {
	if r.opts.Provider != nil {
		return r.opts.Provider, nil
	}
	name := r.opts.ProviderName
	if name == "" {
		name = "github"
	}
	factory, err := provider.Get(name)
	if err != nil {
		return nil, err
	}
	return factory(ctx, provider.Options{Token: r.opts.Token})
}

// download streams the tarball to path behind the progress UI. Failures are
// shown by the UI and returned as ReportedError.
func (r *Remote) download(ctx context.Context, p provider.Provider, target provider.Target, ref, path string) error {
	fsys := r.opts.Fs

	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Errorf("creating archive file: %w", err)
	}

	ui := status.NewDownloadUI(r.opts.Out, target.Repo+"@"+ref)
	ui.Start()

	err = p.DownloadTarball(ctx, target.Owner, target.Repo, ref, f, ui.Update)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Errorf("writing archive: %w", cerr)
	}
	if err != nil {
		ui.Stop(false, err.Error())
		return &ReportedError{Err: err}
	}

	ui.Stop(true, "")
	return nil
}

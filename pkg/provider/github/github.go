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

// Package github implements provider.Provider on the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/tpull/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

const userAgent = "tpull"

var (
	// ErrDefaultBranch is returned when the repository lookup fails.
	ErrDefaultBranch = errors.New("Resolve default branch failed")
	// ErrLatestRef is returned when tags cannot be listed or none exist.
	ErrLatestRef = errors.New("Resolve latest ref failed")
	// ErrDownload is returned when the tarball request fails.
	ErrDownload = errors.New("Download failed")
)

func init() {
	provider.Register("github", New)
}

// 🎯 Provider implements the provider interface for GitHub
type Provider struct {
	client *github.Client
}

// 🏭 New creates a GitHub provider. The token is optional; public
// templates work without one at a lower rate limit.
func New(ctx context.Context, opts provider.Options) (provider.Provider, error) {
	client := github.NewClient(nil)
	client.UserAgent = userAgent

	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, errors.Errorf("parsing base url: %w", err)
		}
		client.BaseURL = u
	}

	zerolog.Ctx(ctx).Debug().
		Bool("authenticated", opts.Token != "").
		Str("base_url", client.BaseURL.String()).
		Msg("created github provider")

	return &Provider{client: client}, nil
}

// 🌿 DefaultBranch returns the repository's default branch
func (p *Provider) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, resp, err := p.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", errors.Errorf("%w (%s).", ErrDefaultBranch, statusLine(resp, err))
	}
	branch := r.GetDefaultBranch()
	if branch == "" {
		return "", errors.Errorf("%w (missing default_branch).", ErrDefaultBranch)
	}
	return branch, nil
}

// 🏷️ LatestTag returns the first tag GitHub lists, which is the newest
func (p *Provider) LatestTag(ctx context.Context, owner, repo string) (string, error) {
	tags, resp, err := p.client.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return "", errors.Errorf("%w (%s).", ErrLatestRef, statusLine(resp, err))
	}
	if len(tags) == 0 || tags[0].GetName() == "" {
		return "", errors.Errorf("%w (no tags found).", ErrLatestRef)
	}
	return tags[0].GetName(), nil
}

// 📦 DownloadTarball streams the tarball for ref into w
func (p *Provider) DownloadTarball(ctx context.Context, owner, repo, ref string, w io.Writer, progress provider.ProgressFunc) error {
	logger := zerolog.Ctx(ctx)

	path := fmt.Sprintf("repos/%s/%s/tarball/%s", owner, repo, url.PathEscape(ref))
	req, err := p.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return errors.Errorf("creating request: %w", err)
	}

	resp, err := p.client.BareDo(ctx, req)
	if err != nil {
		return errors.Errorf("%w (%s)", ErrDownload, statusLine(resp, err))
	}
	defer resp.Body.Close()

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	logger.Debug().
		Str("repo", owner+"/"+repo).
		Str("ref", ref).
		Int64("content_length", total).
		Msg("downloading tarball")

	if progress != nil {
		progress(0, total)
		w = &progressWriter{w: w, total: total, fn: progress}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Errorf("%w (%s)", ErrDownload, err.Error())
	}
	return nil
}

// statusLine describes a failed call as "404 Not Found" when a response exists.
func statusLine(resp *github.Response, err error) string {
	if resp != nil && resp.Response != nil {
		if resp.Status != "" {
			return strings.TrimSpace(resp.Status)
		}
		return fmt.Sprintf("%d", resp.StatusCode)
	}
	return err.Error()
}

type progressWriter struct {
	w      io.Writer
	loaded int64
	total  int64
	fn     provider.ProgressFunc
}

func (pw *progressWriter) Write(b []byte) (int, error) {
	n, err := pw.w.Write(b)
	pw.loaded += int64(n)
	pw.fn(pw.loaded, pw.total)
	return n, err
}

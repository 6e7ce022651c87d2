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

package provider

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// LatestRef is the ref alias that resolves to the newest tag.
const LatestRef = "latest"

// 📈 ProgressFunc receives bytes written so far and the expected total
// (0 when the server does not announce a length).
type ProgressFunc func(loaded, total int64)

// 🔌 Provider is the interface for template repository hosts
type Provider interface {
	// 🌿 DefaultBranch returns the repository's default branch
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)

	// 🏷️ LatestTag returns the most recent tag
	LatestTag(ctx context.Context, owner, repo string) (string, error)

	// 📦 DownloadTarball streams the gzipped tarball for ref into w
	DownloadTarball(ctx context.Context, owner, repo, ref string, w io.Writer, progress ProgressFunc) error
}

// Options configures a provider instance.
type Options struct {
	Token string
	// BaseURL overrides the API endpoint, mostly for tests and enterprise hosts.
	BaseURL string
}

// 🏭 Factory creates a new provider
type Factory func(ctx context.Context, opts Options) (Provider, error)

var (
	mu sync.RWMutex
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// 🎯 Get returns a provider factory by name
func Get(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := providers[name]
	if !ok {
		return nil, errors.Errorf("unknown provider %q", name)
	}
	return f, nil
}

// Names lists registered providers.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// 🔍 ResolveRef fills in the ref of t: empty means the default branch,
// "latest" means the newest tag and anything else is used verbatim.
func ResolveRef(ctx context.Context, p Provider, t Target) (string, error) {
	logger := zerolog.Ctx(ctx)

	switch t.Ref {
	case "":
		ref, err := p.DefaultBranch(ctx, t.Owner, t.Repo)
		if err != nil {
			return "", err
		}
		logger.Debug().Str("repo", t.String()).Str("ref", ref).Msg("resolved default branch")
		return ref, nil
	case LatestRef:
		ref, err := p.LatestTag(ctx, t.Owner, t.Repo)
		if err != nil {
			return "", err
		}
		logger.Debug().Str("repo", t.String()).Str("ref", ref).Msg("resolved latest tag")
		return ref, nil
	default:
		return t.Ref, nil
	}
}

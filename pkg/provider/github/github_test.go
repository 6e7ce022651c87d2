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

package github

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tpull/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

func setup(t *testing.T, handler http.Handler, token string) (context.Context, provider.Provider) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	p, err := New(ctx, provider.Options{Token: token, BaseURL: srv.URL})
	require.NoError(t, err, "creating provider should succeed")
	return ctx, p
}

func TestDefaultBranch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr string
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `{"name": "tpl", "default_branch": "trunk"}`,
			want:   "trunk",
		},
		{
			name:    "not_found",
			status:  http.StatusNotFound,
			body:    `{"message": "Not Found"}`,
			wantErr: "Resolve default branch failed (404 Not Found).",
		},
		{
			name:    "missing_field",
			status:  http.StatusOK,
			body:    `{"name": "tpl"}`,
			wantErr: "Resolve default branch failed (missing default_branch).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/tpl", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			ctx, p := setup(t, mux, "")

			got, err := p.DefaultBranch(ctx, "acme", "tpl")
			if tt.wantErr != "" {
				require.Error(t, err, "lookup should fail")
				assert.True(t, errors.Is(err, ErrDefaultBranch), "error should be ErrDefaultBranch")
				assert.Equal(t, tt.wantErr, err.Error(), "error message should match")
				return
			}
			require.NoError(t, err, "lookup should succeed")
			assert.Equal(t, tt.want, got, "branch should match")
		})
	}
}

func TestLatestTag(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "first_tag", body: `[{"name": "v1.4.0"}, {"name": "v1.3.0"}]`, want: "v1.4.0"},
		{name: "no_tags", body: `[]`, wantErr: "Resolve latest ref failed (no tags found)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/tpl/tags", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "1", r.URL.Query().Get("per_page"), "should request a single tag")
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			})
			ctx, p := setup(t, mux, "")

			got, err := p.LatestTag(ctx, "acme", "tpl")
			if tt.wantErr != "" {
				require.Error(t, err, "lookup should fail")
				assert.Equal(t, tt.wantErr, err.Error(), "error message should match")
				return
			}
			require.NoError(t, err, "lookup should succeed")
			assert.Equal(t, tt.want, got, "tag should match")
		})
	}
}

func TestDownloadTarball(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 4096)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tpl/tarball/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"), "token should be sent")
		assert.Equal(t, "/repos/acme/tpl/tarball/feature%2Fx", r.URL.EscapedPath(), "ref should be escaped")
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		_, _ = w.Write(payload)
	})
	ctx, p := setup(t, mux, "secret")

	var buf bytes.Buffer
	var lastLoaded, lastTotal int64
	calls := 0
	err := p.DownloadTarball(ctx, "acme", "tpl", "feature/x", &buf, func(loaded, total int64) {
		calls++
		lastLoaded, lastTotal = loaded, total
	})
	require.NoError(t, err, "download should succeed")
	assert.Equal(t, payload, buf.Bytes(), "body should be copied")
	assert.GreaterOrEqual(t, calls, 2, "progress should start at zero and then advance")
	assert.Equal(t, int64(len(payload)), lastLoaded, "final loaded should match size")
	assert.Equal(t, int64(len(payload)), lastTotal, "total should come from content length")
}

func TestDownloadTarball_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/tpl/tarball/main", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	ctx, p := setup(t, mux, "")

	var buf bytes.Buffer
	err := p.DownloadTarball(ctx, "acme", "tpl", "main", &buf, nil)
	require.Error(t, err, "download should fail")
	assert.True(t, errors.Is(err, ErrDownload), "error should be ErrDownload")
	assert.Equal(t, "Download failed (404 Not Found)", err.Error(), "error message should match")
	assert.Zero(t, buf.Len(), "nothing should be written")
}

func TestRegistered(t *testing.T) {
	f, err := provider.Get("github")
	require.NoError(t, err, "github provider should self-register")
	assert.NotNil(t, f, "factory should be returned")
}

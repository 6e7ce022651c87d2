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

// Package output materializes a rendered template into its destination.
package output

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotDirectory is returned when the destination exists as a file.
	ErrNotDirectory = errors.New("Destination is not a directory")
	// ErrNotEmpty is returned when the destination already has entries.
	ErrNotEmpty = errors.New("Destination directory is not empty")
	// ErrExists is returned when a copy would overwrite a file.
	ErrExists = errors.New("Destination file already exists")
)

// 🔍 EnsureEmptyDir accepts a missing directory or an empty one.
func EnsureEmptyDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	empty, err := afero.IsEmpty(fsys, dir)
	if err != nil {
		return errors.Errorf("reading %s: %w", dir, err)
	}
	if !empty {
		return errors.Errorf("%w: %s", ErrNotEmpty, dir)
	}
	return nil
}

// 📊 CopyStats counts what CopyTemplate wrote.
type CopyStats struct {
	Files    int
	Dirs     int
	Symlinks int
	Ignored  int
}

type copyJob struct {
	rel  string
	mode os.FileMode
	link bool
}

// 📦 CopyTemplate copies src into dst. Paths matching an ignore glob
// (doublestar syntax, relative to src) are skipped; an ignored directory
// skips everything below it. Existing files are never overwritten.
func CopyTemplate(ctx context.Context, fsys afero.Fs, src, dst string, ignore []string) (*CopyStats, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern: %s", pattern)
		}
	}

	if err := fsys.MkdirAll(dst, 0o755); err != nil {
		return nil, errors.Errorf("creating %s: %w", dst, err)
	}

	stats := &CopyStats{}
	var jobs []copyJob

	err := afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if pattern, ok := ignored(rel, ignore); ok {
			logger.Debug().Str("path", rel).Str("pattern", pattern).Msg("ignored by pattern")
			stats.Ignored++
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case info.IsDir():
			if err := fsys.MkdirAll(filepath.Join(dst, filepath.FromSlash(rel)), info.Mode().Perm()|0o700); err != nil {
				return errors.Errorf("creating directory %s: %w", rel, err)
			}
			stats.Dirs++
		case info.Mode()&os.ModeSymlink != 0:
			jobs = append(jobs, copyJob{rel: rel, link: true})
		default:
			jobs = append(jobs, copyJob{rel: rel, mode: info.Mode().Perm()})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", src, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0) * 2)

	results := make([]bool, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			from := filepath.Join(src, filepath.FromSlash(job.rel))
			to := filepath.Join(dst, filepath.FromSlash(job.rel))
			if job.link {
				linked, err := copySymlink(fsys, from, to)
				if err != nil {
					return errors.Errorf("copying link %s: %w", job.rel, err)
				}
				results[i] = linked
				if linked {
					return nil
				}
				info, err := fsys.Stat(from)
				if err != nil {
					return errors.Errorf("resolving link %s: %w", job.rel, err)
				}
				job.mode = info.Mode().Perm()
			}
			if err := copyFile(fsys, from, to, job.mode); err != nil {
				return errors.Errorf("copying %s: %w", job.rel, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, job := range jobs {
		if job.link && results[i] {
			stats.Symlinks++
		} else {
			stats.Files++
		}
	}

	logger.Debug().
		Str("src", src).
		Str("dst", dst).
		Int("files", stats.Files).
		Int("dirs", stats.Dirs).
		Int("symlinks", stats.Symlinks).
		Int("ignored", stats.Ignored).
		Msg("copied template")

	return stats, nil
}

func ignored(rel string, patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return pattern, true
		}
	}
	return "", false
}

func copyFile(fsys afero.Fs, from, to string, mode os.FileMode) error {
	in, err := fsys.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Errorf("%w: %s", ErrExists, to)
		}
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return fsys.Chmod(to, mode)
}

// copySymlink recreates a link when the filesystem can read and write links.
func copySymlink(fsys afero.Fs, from, to string) (bool, error) {
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return false, nil
	}
	linker, ok := fsys.(afero.Linker)
	if !ok {
		return false, nil
	}
	target, err := reader.ReadlinkIfPossible(from)
	if err != nil {
		return false, err
	}
	if _, err := lstat(fsys, to); err == nil {
		return false, errors.Errorf("%w: %s", ErrExists, to)
	}
	if err := linker.SymlinkIfPossible(target, to); err != nil {
		return false, err
	}
	return true, nil
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

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

// Package archive unpacks template tarballs onto an afero filesystem.
package archive

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/pathguard"
	"gitlab.com/tozd/go/errors"
)

// ErrNotGzip is returned when the stream does not start with the gzip magic.
var ErrNotGzip = errors.New("invalid archive format - expected gzip file")

// 📊 Stats summarizes an extraction.
type Stats struct {
	Files    int
	Dirs     int
	Symlinks int
	Skipped  int
	Bytes    int64
}

// 📦 ExtractTarGz unpacks r into dest, dropping strip leading path
// components from each entry. Entries left empty after stripping are
// skipped, as are pax global headers. Every name must pass the path guard.
func ExtractTarGz(ctx context.Context, fsys afero.Fs, r io.Reader, dest string, strip int) (*Stats, error) {
	logger := zerolog.Ctx(ctx)

	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return nil, ErrNotGzip
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, errors.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	if err := fsys.MkdirAll(dest, 0o755); err != nil {
		return nil, errors.Errorf("creating %s: %w", dest, err)
	}

	stats := &Stats{}
	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("reading tar entry: %w", err)
		}

		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		rel, ok := stripComponents(hdr.Name, strip)
		if !ok {
			stats.Skipped++
			continue
		}

		clean, err := pathguard.Normalize(rel)
		if err != nil {
			return nil, errors.Errorf("unsafe archive entry %q: %w", hdr.Name, err)
		}
		target := filepath.Join(dest, filepath.FromSlash(clean))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, dirMode(hdr)); err != nil {
				return nil, errors.Errorf("creating directory %s: %w", clean, err)
			}
			stats.Dirs++

		case tar.TypeReg:
			n, err := writeFile(fsys, target, tr, fileMode(hdr))
			if err != nil {
				return nil, errors.Errorf("extracting %s: %w", clean, err)
			}
			stats.Files++
			stats.Bytes += n

		case tar.TypeSymlink:
			linked, err := writeSymlink(fsys, target, clean, hdr.Linkname)
			if err != nil {
				return nil, err
			}
			if linked {
				stats.Symlinks++
			} else {
				stats.Skipped++
			}

		default:
			logger.Debug().Str("entry", hdr.Name).Int("type", int(hdr.Typeflag)).Msg("skipping unsupported tar entry")
			stats.Skipped++
		}
	}

	logger.Debug().
		Str("dest", dest).
		Int("files", stats.Files).
		Int("dirs", stats.Dirs).
		Int("symlinks", stats.Symlinks).
		Int("skipped", stats.Skipped).
		Int64("bytes", stats.Bytes).
		Msg("extracted archive")

	return stats, nil
}

// stripComponents drops n leading segments of a slash separated name.
func stripComponents(name string, n int) (string, bool) {
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return "", false
	}
	parts := strings.Split(name, "/")
	if len(parts) <= n {
		return "", false
	}
	rel := strings.Join(parts[n:], "/")
	return rel, rel != ""
}

func writeFile(fsys afero.Fs, target string, r io.Reader, mode os.FileMode) (int64, error) {
	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}
	f, err := fsys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, err
	}
	// umask may have narrowed the mode on create.
	return n, fsys.Chmod(target, mode)
}

// writeSymlink creates a link when the filesystem supports it. Link targets
// that climb out of the extraction root are rejected.
func writeSymlink(fsys afero.Fs, target, clean, linkname string) (bool, error) {
	resolved := path.Join(path.Dir(clean), filepath.ToSlash(linkname))
	if path.IsAbs(linkname) || resolved == ".." || strings.HasPrefix(resolved, "../") {
		return false, errors.Errorf("unsafe symlink %s -> %s: %w", clean, linkname, pathguard.ErrInvalidPath)
	}

	linker, ok := fsys.(afero.Linker)
	if !ok {
		return false, nil
	}
	if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, errors.Errorf("creating directory for %s: %w", clean, err)
	}
	if err := linker.SymlinkIfPossible(linkname, target); err != nil {
		return false, errors.Errorf("creating symlink %s: %w", clean, err)
	}
	return true, nil
}

func fileMode(hdr *tar.Header) os.FileMode {
	mode := os.FileMode(hdr.Mode).Perm()
	if mode == 0 {
		return 0o644
	}
	return mode
}

func dirMode(hdr *tar.Header) os.FileMode {
	mode := os.FileMode(hdr.Mode).Perm()
	if mode == 0 {
		return 0o755
	}
	return mode | 0o700
}

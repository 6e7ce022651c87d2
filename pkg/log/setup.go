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

package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 🗄️ Rotation limits for the debug log.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 30
)

// DefaultFilePath is the debug log location under the XDG state directory.
func DefaultFilePath() string {
	return filepath.Join(xdg.StateHome, "tpull", "tpull.log")
}

// 📁 NewFileWriter opens a size-rotated log file, creating its directory.
func NewFileWriter(path string) (*lumberjack.Logger, error) {
	if path == "" {
		path = DefaultFilePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Errorf("creating log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}, nil
}

// ⚙️ Options configures Setup.
type Options struct {
	// Console receives human readable zerolog output (normally stderr).
	Console io.Writer
	// Debug lowers the console level to debug.
	Debug bool
	// FileLevel is the zerolog level name for the file sink.
	FileLevel string
	// FilePath enables the rotating file sink when set.
	FilePath string
}

// 🚀 Setup returns ctx carrying a zerolog logger. The console only shows
// warnings unless Debug is set. The returned closer flushes the file sink.
func Setup(ctx context.Context, opts Options) (context.Context, io.Closer, error) {
	consoleLevel := zerolog.WarnLevel
	if opts.Debug {
		consoleLevel = zerolog.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: zerolog.ConsoleWriter{Out: console, NoColor: !isTerminal(console)}},
			Level:  consoleLevel,
		},
	}
	minLevel := consoleLevel

	var closer io.Closer = nopCloser{}
	if opts.FilePath != "" {
		fileLevel, err := ParseLevel(opts.FileLevel)
		if err != nil {
			return ctx, nil, err
		}
		fw, err := NewFileWriter(opts.FilePath)
		if err != nil {
			return ctx, nil, err
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: fw},
			Level:  fileLevel,
		})
		if fileLevel < minLevel {
			minLevel = fileLevel
		}
		closer = fw
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(minLevel)

	return logger.WithContext(ctx), closer, nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

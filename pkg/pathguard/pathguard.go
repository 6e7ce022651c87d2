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

// Package pathguard keeps relative paths from a config inside the template
// root.
package pathguard

import (
	"path/filepath"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPath matches every error returned by Normalize.
var ErrInvalidPath = errors.New("invalid path")

var driveLetter = regexp.MustCompile(`^[A-Za-z]:`)

// 🚫 PathError describes why a path was rejected.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Path
}

// Is makes errors.Is(err, ErrInvalidPath) hold.
func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// 🧹 Normalize converts backslashes to slashes, strips one leading "./" and
// rejects empty, absolute, drive-qualified and parent-traversing paths.
// Interior "./" segments are kept as written.
func Normalize(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", &PathError{Reason: "File path must be a non-empty string."}
	}

	cleaned := strings.ReplaceAll(input, `\`, "/")
	cleaned = strings.TrimPrefix(cleaned, "./")

	if driveLetter.MatchString(cleaned) || strings.HasPrefix(cleaned, "/") {
		return "", &PathError{Path: input, Reason: "Absolute paths are not allowed"}
	}

	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", &PathError{Path: input, Reason: "Parent path segments are not allowed"}
		}
	}

	return cleaned, nil
}

// 📍 ResolveFromRoot joins root with the normalized form of rel.
func ResolveFromRoot(root, rel string) (string, error) {
	normalized, err := Normalize(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(normalized)), nil
}

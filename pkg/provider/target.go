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
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrTargetRequired is returned for an empty target.
	ErrTargetRequired = errors.New("Target is required. Use <owner>/<repo>[@<ref>].")
	// ErrRefRequired is returned for a trailing "@" with nothing after it.
	ErrRefRequired = errors.New(`If "@" is present, ref is required.`)
	// ErrTargetFormat is returned when the repo part is not owner/repo.
	ErrTargetFormat = errors.New("Target must be <owner>/<repo>[@<ref>].")
)

// 🎯 Target names a template repository and optional ref.
type Target struct {
	Owner string
	Repo  string
	Ref   string
}

// String returns owner/repo.
func (t Target) String() string {
	return t.Owner + "/" + t.Repo
}

// 🔍 ParseTarget reads <owner>/<repo>[@<ref>], splitting at the last "@".
func ParseTarget(s string) (Target, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Target{}, ErrTargetRequired
	}

	repoPart := trimmed
	ref := ""
	if at := strings.LastIndex(trimmed, "@"); at >= 0 {
		repoPart = trimmed[:at]
		ref = strings.TrimSpace(trimmed[at+1:])
		if ref == "" {
			return Target{}, ErrRefRequired
		}
	}

	parts := strings.Split(repoPart, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Target{}, ErrTargetFormat
	}

	return Target{Owner: parts[0], Repo: parts[1], Ref: ref}, nil
}

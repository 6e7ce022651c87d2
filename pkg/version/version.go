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

// Package version gates templates on the running tpull version.
package version

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/mod/semver"
)

var (
	// ErrInvalid is returned for a tpull_version that does not parse.
	ErrInvalid = errors.New("Invalid tpull_version")
	// ErrTooOld is returned when the template needs a newer tpull.
	ErrTooOld = errors.New("tpull version too old")
)

const upgradeHint = `Update via "go install github.com/walteh/tpull/cmd/tpull@latest".`

// Current is the running version. Release builds set it with
// -ldflags "-X github.com/walteh/tpull/pkg/version.Current=v1.2.3".
var Current = ""

// 🏷️ Version is a parsed major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
	Raw                 string
}

// Canonical returns the vMAJOR.MINOR.PATCH form understood by semver.
func (v Version) Canonical() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// 🔍 Parse reads "1", "1.2", "v1.2.3", "1.2.3-rc.1+build". Pre-release and
// build suffixes are dropped and missing minor/patch are zero.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	normalized := strings.TrimPrefix(strings.TrimPrefix(raw, "v"), "V")
	normalized, _, _ = strings.Cut(normalized, "+")
	normalized, _, _ = strings.Cut(normalized, "-")

	if normalized == "" {
		return Version{}, errors.Errorf("%w: %s", ErrInvalid, s)
	}

	parts := strings.Split(normalized, ".")
	if len(parts) > 3 {
		return Version{}, errors.Errorf("%w: %s", ErrInvalid, s)
	}

	nums := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || strings.HasPrefix(part, "+") {
			return Version{}, errors.Errorf("%w: %s", ErrInvalid, s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Raw: raw}, nil
}

// ✅ Check fails when current is older than required.
func Check(required, current string) error {
	req, err := Parse(required)
	if err != nil {
		return err
	}
	cur, err := Parse(current)
	if err != nil {
		return errors.Errorf("invalid current version %q: %w", current, err)
	}

	if semver.Compare(cur.Canonical(), req.Canonical()) < 0 {
		return &TooOldError{Required: req.Raw, Current: cur.Raw}
	}
	return nil
}

// TooOldError reports the required and running versions.
type TooOldError struct {
	Required string
	Current  string
}

func (e *TooOldError) Error() string {
	return fmt.Sprintf("tpull >= %s is required. Current: %s. %s", e.Required, e.Current, upgradeHint)
}

func (e *TooOldError) Is(target error) bool {
	return target == ErrTooOld
}

// 🚦 Gate checks required against the running binary. Development builds
// without a release version only log the requirement.
func Gate(ctx context.Context, required string) error {
	if _, err := Parse(required); err != nil {
		return err
	}

	current := Resolve()
	if _, err := Parse(current); err != nil {
		zerolog.Ctx(ctx).Debug().
			Str("required", required).
			Str("current", current).
			Msg("development build, skipping version gate")
		return nil
	}

	return Check(required, current)
}

// Resolve returns Current, falling back to the module version in build info.
func Resolve() string {
	if Current != "" {
		return Current
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// Info describes the binary for --version.
type Info struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Revision  string `json:"revision"`
	Time      string `json:"time"`
	Modified  bool   `json:"modified"`
}

// GetInfo collects version and VCS details from build info.
func GetInfo() *Info {
	info := &Info{
		Version:   Resolve(),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Revision = setting.Value
			case "vcs.time":
				info.Time = setting.Value
			case "vcs.modified":
				info.Modified = setting.Value == "true"
			}
		}
	}

	return info
}

// Format renders Info for the terminal.
func (i *Info) Format() string {
	modified := ""
	if i.Modified {
		modified = " (modified)"
	}
	return fmt.Sprintf(`🚀 tpull %s
Revision:  %s%s
Built:     %s
Go:        %s
Platform:  %s
`, i.Version, i.Revision, modified, i.Time, i.GoVersion, i.Platform)
}

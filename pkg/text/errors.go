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

package text

import (
	"github.com/walteh/tpull/pkg/pathguard"
	"github.com/walteh/tpull/pkg/pattern"
	"github.com/walteh/tpull/pkg/render"
	"github.com/walteh/tpull/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// Errors returned by Engine.Apply. Match them with errors.Is.
var (
	ErrUnknownVariable    = render.ErrUnknownVariable
	ErrUnknownTransform   = transform.ErrUnknownTransform
	ErrInvalidRegex       = pattern.ErrInvalidRegex
	ErrInvalidPath        = pathguard.ErrInvalidPath
	ErrInvalidRule        = errors.New(`Replacement "pattern" must be a non-empty string`)
	ErrFileNotFound       = errors.New("Replacement file not found")
	ErrBinaryFileRejected = errors.New("Binary file detected")
	ErrNoMatch            = errors.New("No matches for pattern")
)

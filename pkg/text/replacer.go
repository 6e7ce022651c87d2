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
	"bytes"

	"github.com/walteh/tpull/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// 📄 ReplacementResult is the outcome of one pattern over one piece of content.
type ReplacementResult struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// 🔍 IsBinary reports whether content holds a NUL byte.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// 🔄 ReplaceText counts the matches of p in content and replaces all of them.
// For regex patterns replacement is a substitution template.
func ReplaceText(content []byte, p pattern.Pattern, replacement string) (*ReplacementResult, error) {
	original := string(content)

	count, err := p.Count(original)
	if err != nil {
		return nil, errors.Errorf("counting matches: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent:  content,
		ModifiedContent:  content,
		ReplacementCount: count,
	}
	if count == 0 {
		return result, nil
	}

	updated, err := p.ReplaceAll(original, replacement)
	if err != nil {
		return nil, errors.Errorf("replacing matches: %w", err)
	}
	if updated != original {
		result.ModifiedContent = []byte(updated)
		result.WasModified = true
	}
	return result, nil
}

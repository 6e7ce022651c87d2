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
	"github.com/walteh/tpull/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is one configured replacement.
type Rule struct {
	Files         []string // paths relative to the template root, in order
	Pattern       string   // literal text or /regex/flags
	Replace       string   // template rendered against the variables
	Transform     string   // optional transform name
	FailIfNoMatch *bool    // nil means true
}

// 🎯 RequiresMatch reports whether a file without matches is an error.
func (r Rule) RequiresMatch() bool {
	return r.FailIfNoMatch == nil || *r.FailIfNoMatch
}

// ✅ ValidateRules checks every rule's transform before anything is touched.
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if err := transform.Validate(rule.Transform); err != nil {
			return errors.Errorf("replacement %d: %w", i+1, err)
		}
	}
	return nil
}

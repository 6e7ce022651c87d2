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

import "fmt"

// 📊 Tally sums match counts per file and remembers first-touch order.
type Tally struct {
	order  []string
	totals map[string]int
}

func newTally() *Tally {
	return &Tally{totals: make(map[string]int)}
}

// Add records n matches for path.
func (t *Tally) Add(path string, n int) {
	if _, ok := t.totals[path]; !ok {
		t.order = append(t.order, path)
	}
	t.totals[path] += n
}

// Files returns touched paths in first-touch order.
func (t *Tally) Files() []string {
	return append([]string(nil), t.order...)
}

// Total returns the cumulative count for path.
func (t *Tally) Total(path string) int {
	return t.totals[path]
}

// Lines formats one report line per touched file.
func (t *Tally) Lines() []string {
	lines := make([]string, 0, len(t.order))
	for _, path := range t.order {
		lines = append(lines, FormatReport(path, t.totals[path]))
	}
	return lines
}

// FormatReport is the per-file summary line.
func FormatReport(path string, total int) string {
	return fmt.Sprintf("Replaced %d occurrence(s) in %s", total, path)
}

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

package status

import (
	"fmt"
	"math"
	"time"
)

// ⏱️ FormatDuration prints short runs as seconds truncated to hundredths
// ("1.23s") and anything from a minute up as "Xm Ys".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := d.Seconds()
	if seconds < 60 {
		truncated := math.Floor(seconds*100) / 100
		return fmt.Sprintf("%.2fs", truncated)
	}
	minutes := int(seconds / 60)
	rest := int(seconds) - minutes*60
	return fmt.Sprintf("%dm %ds", minutes, rest)
}

var byteUnits = []string{"B", "KB", "MB", "GB"}

// 📏 FormatBytes uses 1024 steps. Values under 10 in a unit above bytes
// keep one decimal.
func FormatBytes(n int64) string {
	value := math.Max(0, float64(n))
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	if value >= 10 || unit == 0 {
		return fmt.Sprintf("%.0f %s", value, byteUnits[unit])
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// FormatProgress renders "[=====-----] 50% (512 B / 1.0 KB)".
func FormatProgress(loaded, total int64, width int) string {
	ratio := 0.0
	if total > 0 {
		ratio = math.Min(float64(loaded)/float64(total), 1)
	}
	filled := int(math.Round(float64(width) * ratio))
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '='
		} else {
			bar[i] = '-'
		}
	}
	return fmt.Sprintf("[%s] %d%% (%s / %s)", bar, int(math.Round(ratio*100)), FormatBytes(loaded), FormatBytes(total))
}

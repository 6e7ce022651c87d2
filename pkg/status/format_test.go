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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{name: "zero", in: 0, want: "0.00s"},
		{name: "negative_clamps", in: -time.Second, want: "0.00s"},
		{name: "truncates_not_rounds", in: 1239 * time.Millisecond, want: "1.23s"},
		{name: "just_under_minute", in: 59999 * time.Millisecond, want: "59.99s"},
		{name: "one_minute", in: time.Minute, want: "1m 0s"},
		{name: "minutes_and_seconds", in: 2*time.Minute + 5*time.Second + 900*time.Millisecond, want: "2m 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in), "duration should match")
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{name: "zero", in: 0, want: "0 B"},
		{name: "negative", in: -5, want: "0 B"},
		{name: "bytes", in: 1023, want: "1023 B"},
		{name: "one_kb", in: 1024, want: "1.0 KB"},
		{name: "fractional_kb", in: 1536, want: "1.5 KB"},
		{name: "ten_kb_drops_decimal", in: 10 * 1024, want: "10 KB"},
		{name: "megabytes", in: 5*1024*1024 + 512*1024, want: "5.5 MB"},
		{name: "gigabytes_cap", in: 3 * 1024 * 1024 * 1024 * 1024, want: "3072 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.in), "bytes should match")
		})
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "[=====-----] 50% (512 B / 1.0 KB)", FormatProgress(512, 1024, 10), "half progress should match")
	assert.Equal(t, "[----------] 0% (0 B / 0 B)", FormatProgress(0, 0, 10), "unknown total should be empty")
	assert.Equal(t, "[==========] 100% (2.0 KB / 1.0 KB)", FormatProgress(2048, 1024, 10), "overflow should clamp")
}

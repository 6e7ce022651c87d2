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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf)

	lines := strings.Split(strings.Trim(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6, "banner should have six rows")
	assert.Equal(t, BannerLines(), lines, "non-terminal output should be uncolored")
	assert.Equal(t, "########  #######   ##    ##  ##        ##      ", lines[0], "first row should spell TPULL")
}

func TestInfoBox(t *testing.T) {
	var buf bytes.Buffer
	InfoBox(&buf, "tpull v1.0.0")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, "box should have three rows")
	assert.Equal(t, "╭──────────────╮", lines[0], "top border should match")
	assert.Equal(t, "│ tpull v1.0.0 │", lines[1], "content row should match")
	assert.Equal(t, "╰──────────────╯", lines[2], "bottom border should match")
}

func TestDownloadUI_NonInteractive(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		ui := NewDownloadUI(&buf, "tpl@main")
		ui.Start()
		ui.Update(0, 2048)
		ui.Update(2048, 2048)
		ui.Stop(true, "")

		assert.Equal(t, "✅ Pull completed: tpl@main (2.0 KB)\n", buf.String(), "only the final line should be printed")
	})

	t.Run("failure", func(t *testing.T) {
		var buf bytes.Buffer
		ui := NewDownloadUI(&buf, "tpl@main")
		ui.Start()
		ui.Stop(false, "Download failed (404 Not Found)")

		assert.Equal(t, "❌ Pulling: tpl@main - Download failed (404 Not Found)\n", buf.String(), "failure line should match")
	})

	t.Run("failure_without_message", func(t *testing.T) {
		var buf bytes.Buffer
		ui := NewDownloadUI(&buf, "tpl@main")
		ui.Stop(false, "")

		assert.Equal(t, "❌ Pulling: tpl@main - Download failed.\n", buf.String(), "default failure message should be used")
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}), "buffers are never terminals")
}

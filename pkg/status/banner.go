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
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	glyphT = []string{"########", "   ##   ", "   ##   ", "   ##   ", "   ##   ", "   ##   "}
	glyphP = []string{"####### ", "##    ##", "####### ", "##      ", "##      ", "##      "}
	glyphU = []string{"##    ##", "##    ##", "##    ##", "##    ##", "##    ##", " ###### "}
	glyphL = []string{"##      ", "##      ", "##      ", "##      ", "##      ", "########"}

	// green fading to blue, one per banner row
	bannerColors = []lipgloss.Color{"2", "10", "14", "6", "12", "4"}

	boxColor = lipgloss.Color("#00C8A0")
)

// BannerLines returns the uncolored block letters.
func BannerLines() []string {
	lines := make([]string, len(glyphT))
	for i := range glyphT {
		lines[i] = strings.Join([]string{glyphT[i], glyphP[i], glyphU[i], glyphL[i], glyphL[i]}, "  ")
	}
	return lines
}

// 🎨 Banner prints the TPULL block letters. Color is decided per writer, so
// pipes and files get plain text.
func Banner(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	fmt.Fprintln(w)
	for i, line := range BannerLines() {
		style := r.NewStyle().Foreground(bannerColors[i%len(bannerColors)])
		fmt.Fprintln(w, style.Render(line))
	}
	fmt.Fprintln(w)
}

// 📦 InfoBox prints text inside a rounded border.
func InfoBox(w io.Writer, text string) {
	r := lipgloss.NewRenderer(w)
	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(boxColor).
		Foreground(boxColor).
		Padding(0, 1)
	fmt.Fprintln(w, style.Render(text))
	fmt.Fprintln(w)
}

// Bold emphasizes s for w when w supports it.
func Bold(w io.Writer, s string) string {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(s)
}

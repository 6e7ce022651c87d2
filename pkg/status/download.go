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
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// ⏬ DownloadUI shows a spinner until the size is known and a progress bar
// after that. On a non-terminal writer it only prints the final line.
type DownloadUI struct {
	w           io.Writer
	interactive bool

	label      string
	doneLabel  string
	errorLabel string

	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
	bar     *pterm.ProgressbarPrinter
	loaded  int64
	total   int64
}

// 🏭 NewDownloadUI creates a UI for pulling ref (shown bold) into w.
func NewDownloadUI(w io.Writer, ref string) *DownloadUI {
	emphasized := Bold(w, ref)
	pull := "Pulling: " + emphasized
	return &DownloadUI{
		w:           w,
		interactive: IsTerminal(w),
		label:       "⏬ " + pull,
		doneLabel:   "✅ Pull completed: " + emphasized,
		errorLabel:  "❌ " + pull,
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start shows the spinner.
func (d *DownloadUI) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.interactive {
		return
	}
	spinner, err := pterm.DefaultSpinner.
		WithWriter(d.w).
		WithRemoveWhenDone(true).
		Start(d.label)
	if err == nil {
		d.spinner = spinner
	}
}

// Update records progress. It is safe to use as a provider.ProgressFunc.
func (d *DownloadUI) Update(loaded, total int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delta := loaded - d.loaded
	d.loaded = loaded
	d.total = total

	if !d.interactive {
		return
	}

	if total <= 0 {
		if d.spinner != nil {
			d.spinner.UpdateText(fmt.Sprintf("%s (%s)", d.label, FormatBytes(loaded)))
		}
		return
	}

	if d.bar == nil {
		if d.spinner != nil {
			_ = d.spinner.Stop()
			d.spinner = nil
		}
		bar, err := pterm.DefaultProgressbar.
			WithWriter(d.w).
			WithTotal(int(total)).
			WithShowCount(false).
			WithTitle(d.label).
			Start()
		if err != nil {
			return
		}
		d.bar = bar
		delta = loaded
	}
	if delta > 0 {
		d.bar.Add(int(delta))
	}
}

// Stop clears the live output and prints the outcome. msg explains a failure.
func (d *DownloadUI) Stop(ok bool, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner != nil {
		_ = d.spinner.Stop()
		d.spinner = nil
	}
	if d.bar != nil {
		_, _ = d.bar.Stop()
		d.bar = nil
	}

	if !ok {
		if msg == "" {
			msg = "Download failed."
		}
		line := d.errorLabel + " - " + msg
		if d.interactive {
			line = color.RedString(line)
		}
		fmt.Fprintln(d.w, line)
		return
	}

	line := fmt.Sprintf("%s (%s)", d.doneLabel, FormatBytes(d.loaded))
	if d.interactive {
		line = color.GreenString(line)
	}
	fmt.Fprintln(d.w, line)
}

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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// 🏃 Runner executes workflows and measures them.
type Runner struct {
	now func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner() *Runner {
	return &Runner{now: time.Now}
}

// 🏃 Run executes op and returns how long it took, successful or not.
func (r *Runner) Run(ctx context.Context, op Operation) (*Result, time.Duration, error) {
	logger := zerolog.Ctx(ctx)

	start := r.now()
	result, err := op.Execute(ctx)
	elapsed := r.now().Sub(start)

	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", elapsed).Msg("operation failed")
		return nil, elapsed, err
	}

	ev := logger.Debug().Dur("elapsed", elapsed).Str("dest", result.Dest)
	if result.Tally != nil {
		ev = ev.Int("files_changed", len(result.Tally.Files()))
	}
	ev.Msg("operation finished")

	return result, elapsed, nil
}

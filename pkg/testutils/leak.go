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

// Package testutils holds helpers shared by tpull tests.
package testutils

import (
	"testing"

	"go.uber.org/goleak"
)

// 🔍 VerifyNoLeaks fails t when goroutines outlive the test.
//
//	func TestCopy(t *testing.T) {
//	    defer testutils.VerifyNoLeaks(t)
//	    ...
//	}
func VerifyNoLeaks(t testing.TB, options ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, append(DefaultLeakOptions(), options...)...)
}

// VerifyTestMain runs the package tests and then checks for leaks.
func VerifyTestMain(m *testing.M, options ...goleak.Option) {
	goleak.VerifyTestMain(m, append(DefaultLeakOptions(), options...)...)
}

// DefaultLeakOptions ignores goroutines owned by the test runner.
func DefaultLeakOptions() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("testing.tRunner.func1"),
		goleak.IgnoreTopFunction("testing.runTests"),
		goleak.IgnoreTopFunction("testing.(*M).Run"),
		goleak.IgnoreTopFunction("go.uber.org/goleak.(*opts).retry"),
		goleak.IgnoreTopFunction("time.Sleep"),
	}
}

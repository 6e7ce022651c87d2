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

package testutils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyNoLeaks(t *testing.T) {
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-done
	}()
	close(done)
	wg.Wait()

	VerifyNoLeaks(t)
}

func TestDefaultLeakOptions(t *testing.T) {
	assert.NotEmpty(t, DefaultLeakOptions(), "default options should not be empty")
}

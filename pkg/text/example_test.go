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

package text_test

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/text"
)

func ExampleEngine_Apply() {
	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/tpl/README.md", []byte("# template-name\n\nRun template-name.\n"), 0o644)

	engine := text.NewEngine(fsys, text.WithReporter(text.ReporterFunc(func(_ context.Context, path string, total int) {
		fmt.Println(text.FormatReport(path, total))
	})))

	rules := []text.Rule{
		{
			Files:     []string{"README.md"},
			Pattern:   "template-name",
			Replace:   "{{project_name}}",
			Transform: "kebab",
		},
	}

	if _, err := engine.Apply(context.Background(), "/tpl", rules, map[string]string{"project_name": "My App"}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	content, _ := afero.ReadFile(fsys, "/tpl/README.md")
	fmt.Print(string(content))

	// Output:
	// Replaced 2 occurrence(s) in README.md
	// # my-app
	//
	// Run my-app.
}

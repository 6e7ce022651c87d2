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

package config

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🔧 HCLParser reads .hcl files written with prompt and replacement blocks:
//
//	tpull_version = "1.0.0"
//
//	prompt "project_name" {
//	  type    = "input"
//	  message = "Project name"
//	}
//
//	replacement {
//	  files   = ["README.md"]
//	  pattern = "template-name"
//	  replace = "{{project_name}}"
//	}
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

type hclConfig struct {
	Schema       *string          `hcl:"schema,optional"`
	Name         *string          `hcl:"name,optional"`
	TemplateRepo *string          `hcl:"template_repo,optional"`
	TpullVersion *string          `hcl:"tpull_version,optional"`
	Ignore       []string         `hcl:"ignore,optional"`
	Prompts      []hclPrompt      `hcl:"prompt,block"`
	Replacements []hclReplacement `hcl:"replacement,block"`
}

type hclPrompt struct {
	Var      string    `hcl:"var,label"`
	Type     *string   `hcl:"type,optional"`
	Message  *string   `hcl:"message,optional"`
	Default  cty.Value `hcl:"default,optional"`
	Required *bool     `hcl:"required,optional"`
	Validate *string   `hcl:"validate,optional"`
}

type hclReplacement struct {
	Files         []string `hcl:"files,optional"`
	Pattern       *string  `hcl:"pattern,optional"`
	Replace       *string  `hcl:"replace,optional"`
	Transform     *string  `hcl:"transform,optional"`
	FailIfNoMatch *bool    `hcl:"fail_if_no_match,optional"`
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, name string, data []byte) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg hclConfig
	diags = gohcl.DecodeBody(file.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return cfg.document()
}

// document rebuilds the generic shape the schema expects. Only attributes
// that were set are emitted so the schema sees the same document a YAML file
// would produce.
func (c *hclConfig) document() (map[string]any, error) {
	doc := map[string]any{}
	setString(doc, "$schema", c.Schema)
	setString(doc, "name", c.Name)
	setString(doc, "template_repo", c.TemplateRepo)
	setString(doc, "tpull_version", c.TpullVersion)
	if c.Ignore != nil {
		doc["ignore"] = c.Ignore
	}

	if len(c.Prompts) > 0 {
		prompts := make([]any, 0, len(c.Prompts))
		for _, hp := range c.Prompts {
			pm := map[string]any{"var": hp.Var}
			setString(pm, "type", hp.Type)
			setString(pm, "message", hp.Message)
			setString(pm, "validate", hp.Validate)
			if hp.Required != nil {
				pm["required"] = *hp.Required
			}
			def, err := ctyToAny(hp.Default)
			if err != nil {
				return nil, errors.Errorf("prompt %q default: %w", hp.Var, err)
			}
			if def != nil {
				pm["default"] = def
			}
			prompts = append(prompts, pm)
		}
		doc["prompts"] = prompts
	}

	if len(c.Replacements) > 0 {
		replacements := make([]any, 0, len(c.Replacements))
		for _, hr := range c.Replacements {
			rm := map[string]any{}
			if hr.Files != nil {
				rm["files"] = hr.Files
			}
			setString(rm, "pattern", hr.Pattern)
			setString(rm, "replace", hr.Replace)
			setString(rm, "transform", hr.Transform)
			if hr.FailIfNoMatch != nil {
				rm["failIfNoMatch"] = *hr.FailIfNoMatch
			}
			replacements = append(replacements, rm)
		}
		doc["replacements"] = replacements
	}

	return doc, nil
}

func setString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

// ctyToAny converts a scalar default. Collections are not valid defaults.
func ctyToAny(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	default:
		return nil, errors.Errorf("unsupported type %s", v.Type().FriendlyName())
	}
}

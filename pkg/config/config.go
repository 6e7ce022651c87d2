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
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/tpull/pkg/text"
	"github.com/walteh/tpull/pkg/transform"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileNames are looked up in the template root, first match wins.
var FileNames = []string{
	"tpull-config.yaml",
	"tpull-config.yml",
	"tpull-config.json",
	"tpull-config.hcl",
}

// 🔌 Parser turns raw config bytes into a generic document that is then
// checked against the schema.
type Parser interface {
	// 📝 Parse decodes data into maps, slices and scalars
	Parse(ctx context.Context, name string, data []byte) (any, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 💬 Prompt asks the user for one variable.
type Prompt struct {
	Var      string `json:"var"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Default  any    `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
	Validate string `json:"validate,omitempty"`
}

// HasDefault reports whether a default was configured. A null default counts
// as none.
func (p Prompt) HasDefault() bool {
	return p.Default != nil
}

// 🔄 Replacement is one find/replace rule as written in the config.
type Replacement struct {
	Files         []string `json:"files"`
	Pattern       string   `json:"pattern"`
	Replace       string   `json:"replace"`
	Transform     string   `json:"transform,omitempty"`
	FailIfNoMatch *bool    `json:"failIfNoMatch,omitempty"`
}

// 📚 Config is a validated tpull-config file.
type Config struct {
	Schema       string        `json:"$schema,omitempty"`
	Name         string        `json:"name,omitempty"`
	TemplateRepo string        `json:"template_repo,omitempty"`
	TpullVersion string        `json:"tpull_version"`
	Ignore       []string      `json:"ignore,omitempty"`
	Prompts      []Prompt      `json:"prompts,omitempty"`
	Replacements []Replacement `json:"replacements,omitempty"`

	// Path is where the config was read from.
	Path string `json:"-"`
}

// 🎯 Load finds and parses the config in root. It returns nil without error
// when no config file exists.
func Load(ctx context.Context, fsys afero.Fs, root string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	for _, name := range FileNames {
		path := filepath.Join(root, name)
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", name, err)
		}
		if !exists {
			continue
		}

		logger.Debug().Str("path", path).Msg("loading configuration")

		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.Errorf("reading config file: %w", err)
		}

		cfg, err := ParseContent(ctx, name, data)
		if err != nil {
			return nil, err
		}
		cfg.Path = path
		return cfg, nil
	}

	logger.Debug().Str("root", root).Msg("no configuration found")
	return nil, nil
}

// 📝 ParseContent parses data as the config file called name.
func ParseContent(ctx context.Context, name string, data []byte) (*Config, error) {
	p := GetParser(name)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", name)
	}

	doc, err := p.Parse(ctx, name, data)
	if err != nil {
		return nil, errors.Errorf("Failed to parse %s: %s", name, err.Error())
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Errorf("Failed to parse %s: %s", name, err.Error())
	}

	if err := validateSchema(raw); err != nil {
		return nil, errors.Errorf("Invalid %s: %s", name, err.Error())
	}

	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("Invalid %s: %s", name, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("Invalid %s: %w", name, err)
	}

	return &cfg, nil
}

// 🔍 Validate checks what the schema cannot: unique prompt vars and
// registered transform names.
func (cfg *Config) Validate() error {
	seen := make(map[string]bool, len(cfg.Prompts))
	for _, p := range cfg.Prompts {
		if seen[p.Var] {
			return errors.Errorf("Duplicate prompt var: %s", p.Var)
		}
		seen[p.Var] = true
	}

	for i, r := range cfg.Replacements {
		if err := transform.Validate(r.Transform); err != nil {
			return errors.Errorf("replacements[%d]: %w", i, err)
		}
	}
	return nil
}

// 🔄 Rules converts the configured replacements to engine rules.
func (cfg *Config) Rules() []text.Rule {
	rules := make([]text.Rule, 0, len(cfg.Replacements))
	for _, r := range cfg.Replacements {
		rules = append(rules, text.Rule{
			Files:         append([]string(nil), r.Files...),
			Pattern:       r.Pattern,
			Replace:       r.Replace,
			Transform:     r.Transform,
			FailIfNoMatch: r.FailIfNoMatch,
		})
	}
	return rules
}

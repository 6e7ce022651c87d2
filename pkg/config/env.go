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
	"github.com/ilyakaznacheev/cleanenv"
	"gitlab.com/tozd/go/errors"
)

// 🌍 Env is the process environment tpull reads.
type Env struct {
	GHToken     string `env:"GH_TOKEN" env-description:"GitHub token (preferred)"`
	GitHubToken string `env:"GITHUB_TOKEN" env-description:"GitHub token"`
	LogLevel    string `env:"TPULL_LOG_LEVEL" env-default:"info" env-description:"zerolog level for the debug log"`
	LogFile     string `env:"TPULL_LOG_FILE" env-description:"path of the rotating debug log"`
	NoColor     string `env:"NO_COLOR" env-description:"disable colored output when set to any non-empty value"`
}

// 🎯 LoadEnv reads Env from the environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}
	return &env, nil
}

// ColorDisabled follows no-color.org: any non-empty NO_COLOR disables color.
func (e *Env) ColorDisabled() bool {
	return e.NoColor != ""
}

// 🔑 Token picks the flag value, then GH_TOKEN, then GITHUB_TOKEN.
func (e *Env) Token(flag string) string {
	switch {
	case flag != "":
		return flag
	case e.GHToken != "":
		return e.GHToken
	default:
		return e.GitHubToken
	}
}

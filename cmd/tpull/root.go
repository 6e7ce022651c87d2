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

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/tpull/pkg/config"
	"github.com/walteh/tpull/pkg/log"
	"github.com/walteh/tpull/pkg/operation"
	"github.com/walteh/tpull/pkg/prompt"
	"github.com/walteh/tpull/pkg/provider"
	"github.com/walteh/tpull/pkg/status"
	"github.com/walteh/tpull/pkg/version"
	"gitlab.com/tozd/go/errors"
)

const (
	description = "Pull a template repository and turn it into a new project"
	localTarget = "local"
)

var errLocalArgs = errors.New(`When using target "local", provide at most one positional argument for project_name.`)

// rootOpts holds flags plus the seams tests replace.
type rootOpts struct {
	sets     []string
	noPrompt bool
	token    string
	debug    bool
	logFile  string

	stdout io.Writer
	stderr io.Writer

	fs       afero.Fs
	workDir  string
	provider provider.Provider
	prompter prompt.Prompter
	env      func() (*config.Env, error)
}

func newRootOpts(stdout, stderr io.Writer) *rootOpts {
	return &rootOpts{
		stdout: stdout,
		stderr: stderr,
		env:    config.LoadEnv,
	}
}

// 🌳 newRootCmd builds the tpull command.
func newRootCmd(o *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tpull <owner/repo[@ref]|local> [project_name]",
		Short: description,
		Long: `tpull downloads a template repository, asks for the variables declared in its
tpull-config file, applies the configured replacements and copies the result
into a new directory. Use "local" as the target to render the current
directory in place.`,
		Example: `  tpull acme/go-service billing --set port=9090
  tpull acme/go-service@v1.2.0 --no-prompt
  tpull local`,
		Version:       version.Resolve(),
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), args)
		},
	}

	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)
	cmd.SetVersionTemplate(version.GetInfo().Format())

	flags := cmd.Flags()
	flags.StringArrayVar(&o.sets, "set", nil, "set a variable as key=value (repeatable)")
	flags.BoolVar(&o.noPrompt, "no-prompt", false, "never prompt; use defaults and fail on missing required values")
	flags.StringVar(&o.token, "token", "", "GitHub token (defaults to GH_TOKEN or GITHUB_TOKEN)")
	flags.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging on stderr")
	flags.StringVar(&o.logFile, "log-file", "", "write a rotating debug log to this path (defaults to TPULL_LOG_FILE)")

	return cmd
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return provider.ErrTargetRequired
	}
	if len(args) > 2 {
		if strings.TrimSpace(args[0]) == localTarget {
			return errLocalArgs
		}
		return errors.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	return nil
}

// 🏃 run executes argv and returns the process exit code.
func run(ctx context.Context, argv []string, o *rootOpts) int {
	cmd := newRootCmd(o)
	cmd.SetArgs(argv)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !operation.IsReported(err) {
		errLog := log.New(o.stderr, zerolog.Nop())
		errLog.Error(err.Error())
	}
	return 1
}

func (o *rootOpts) run(ctx context.Context, args []string) error {
	env, err := o.env()
	if err != nil {
		return err
	}
	if env.ColorDisabled() {
		color.NoColor = true
	}

	logFile := o.logFile
	if logFile == "" {
		logFile = env.LogFile
	}

	ctx, closer, err := log.Setup(ctx, log.Options{
		Console:   o.stderr,
		Debug:     o.debug,
		FileLevel: env.LogLevel,
		FilePath:  logFile,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	console := log.New(o.stdout, *zerolog.Ctx(ctx))
	ctx = log.NewContext(ctx, console)

	status.Banner(o.stdout)
	status.InfoBox(o.stdout, fmt.Sprintf("tpull %s - %s", version.Resolve(), description))

	target := strings.TrimSpace(args[0])
	var projectName string
	if len(args) > 1 {
		projectName = args[1]
	}

	base := operation.Options{
		ProjectName: projectName,
		Sets:        o.sets,
		SkipPrompt:  o.noPrompt,
		WorkDir:     o.workDir,
		Fs:          o.fs,
		Prompter:    o.prompter,
		Reporter:    console,
		Out:         o.stderr,
	}

	var op operation.Operation
	if target == localTarget {
		op = operation.NewLocal(operation.LocalOptions{Options: base})
	} else {
		op = operation.NewRemote(operation.RemoteOptions{
			Options:  base,
			Target:   target,
			Token:    env.Token(o.token),
			Provider: o.provider,
		})
	}

	zerolog.Ctx(ctx).Debug().Str("target", target).Strs("set", o.sets).Bool("no_prompt", o.noPrompt).Msg("starting")

	result, elapsed, err := operation.NewRunner().Run(ctx, op)
	if err != nil {
		return err
	}

	if target != localTarget {
		console.Infof("Project created in %s", result.Dest)
	}
	console.Successf("Done in %s", status.FormatDuration(elapsed))
	return nil
}

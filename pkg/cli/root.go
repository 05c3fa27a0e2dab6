// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semtag/pkg/actions"
	"github.com/NVIDIA/semtag/pkg/config"
	"github.com/NVIDIA/semtag/pkg/logging"
)

const (
	name           = "semtag"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type configKey struct{}

// Execute runs the CLI with os.Args. Inside a GitHub Actions step with no
// arguments the Actions adapter runs instead.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if actions.IsGitHubActions() && len(os.Args) == 1 {
		level := "warn"
		if actions.DebugEnabled() {
			level = "debug"
		}
		logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
		if err := actions.Run(ctx, os.Stdout); err != nil {
			stop()
			os.Exit(1)
		}
		return
	}

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		stop()
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Semantic version tag incrementer",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: heredoc.Doc(`
			Increments SemVer 2.0 tags and avoids versions that already exist
			as tags in a git repository, GitHub, an OCI registry, a ConfigMap or
			a tag document.

			Prefixes (v/V) and build metadata are understood; pre-release
			counters such as 1.2.3-rc.4 are incremented in place.

			Examples:
			  semtag increment --tag v1.2.3 --increment patch
			  semtag increment -t 1.0.0 -i prerelease -p alpha --output-format both
			  semtag suggest -t v1.2.3 -i prerelease
			  semtag validate -t v1.2.3-rc.1+build.5
			  semtag tags --source github://NVIDIA/semtag --constraint ">= 1.0.0"
		`),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: fmt.Sprintf("Config file (default $XDG_CONFIG_HOME/%s/%s)", config.DirName, config.FileName),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: initRoot,
		Commands: []*cli.Command{
			incrementCmd(),
			validateCmd(),
			suggestCmd(),
			tagsCmd(),
			configCmd(),
			versionCmd(),
		},
	}
}

// initRoot configures logging and loads the config file. A broken config
// file is reported by the commands that need it, not here, so that
// "config init --force" can replace it.
func initRoot(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, cfgErr := loadConfig(cmd)

	level := "info"
	if cfg != nil {
		level = cfg.LogLevel
	}
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if cmd.Bool("debug") {
		level = "debug"
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)

	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)

	if cfgErr != nil {
		slog.Debug("config not loaded", "error", cfgErr)
		return ctx, nil
	}
	return context.WithValue(ctx, configKey{}, cfg), nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.Load(afero.NewOsFs(), cmd.String("config"))
}

// configFrom returns the config loaded by initRoot, loading it again to
// surface the error when that failed.
func configFrom(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg, nil
	}
	return loadConfig(cmd)
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	switch {
	case errors.As(err, &ec):
		return ec.ExitCode()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 2
	default:
		return 1
	}
}

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
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semtag/pkg/config"
	"github.com/NVIDIA/semtag/pkg/serializer"
)

// configFs is replaced in tests.
var configFs = afero.NewOsFs

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the semtag configuration file",
		Description: heredoc.Docf(`
			The configuration file lives at $XDG_CONFIG_HOME/%s/%s unless
			--config is given. Every key can be overridden with a %s_*
			environment variable, e.g. %s_PRERELEASE_TYPE=rc.
		`, config.DirName, config.FileName, config.EnvPrefix, config.EnvPrefix),
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a configuration file with the default values",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					path, err := config.Init(configFs(), cmd.String("config"), cmd.Bool("force"))
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.Root().Writer, "%s %s\n", color.GreenString("Wrote default configuration to"), path)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					outputFlag(),
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					format, structured, err := structuredFormat(cmd)
					if err != nil {
						return err
					}
					cfg, err := configFrom(ctx, cmd)
					if err != nil {
						return err
					}
					if !structured {
						format = serializer.FormatYAML
						source := cfg.File
						if source == "" {
							source = "defaults (no config file)"
						}
						fmt.Fprintf(cmd.Root().Writer, "# source: %s\n", source)
					}
					return writeResult(ctx, cmd, format, cfg)
				},
			},
		},
	}
}

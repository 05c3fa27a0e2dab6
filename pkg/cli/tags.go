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
	"github.com/Masterminds/semver/v3"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/tags"
	ver "github.com/NVIDIA/semtag/pkg/version"
)

type tagsResult struct {
	Source  string   `json:"source" yaml:"source"`
	Tags    []string `json:"tags" yaml:"tags"`
	Skipped int      `json:"skipped" yaml:"skipped"`
}

func tagsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "tags",
		EnableShellCompletion: true,
		Usage:                 "List semantic version tags from tag sources",
		Description: heredoc.Doc(`
			List the tags that parse as semantic versions, lowest precedence
			first. Other tags are ignored.

			Constraints use Masterminds/semver syntax, e.g. ">= 1.2, < 2.0" or
			"~1.4". Pre-releases only match constraints that name one.

			Examples:
			  semtag tags
			  semtag tags --source github://NVIDIA/semtag --latest
			  semtag tags --source oci://ghcr.io/nvidia/semtag --constraint "^1.0" --format json
		`),
		Flags: []cli.Flag{
			sourceFlag(),
			pathFlag(),
			fetchTimeoutFlag(),
			&cli.BoolFlag{
				Name:  "fetch",
				Usage: "Fetch tags from origin before listing git repositories",
			},
			&cli.StringFlag{
				Name:    "constraint",
				Aliases: []string{"c"},
				Usage:   "Only list versions matching a semver constraint",
			},
			&cli.BoolFlag{
				Name:  "latest",
				Usage: "Only print the highest matching version",
			},
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

			var constraint *semver.Constraints
			if c := cmd.String("constraint"); c != "" {
				if constraint, err = semver.NewConstraint(c); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("invalid constraint %q", c), err)
				}
			}

			timeout := cfg.FetchTimeout
			if cmd.IsSet("fetch-timeout") {
				timeout = cmd.Duration("fetch-timeout")
			}
			uris, _ := sourceURIs(cmd, cfg)
			src, err := tags.NewSources(uris,
				tags.WithFetch(cmd.Bool("fetch")),
				tags.WithFetchTimeout(timeout))
			if err != nil {
				return err
			}
			raw, err := tags.Fetch(ctx, src, timeout)
			if err != nil {
				return err
			}

			versions := lo.FilterMap(raw, func(t string, _ int) (ver.Version, bool) {
				v, err := ver.Parse(t)
				return v, err == nil
			})
			skipped := len(raw) - len(versions)
			ver.Sort(versions)
			versions = filterConstraint(versions, constraint)

			if cmd.Bool("latest") {
				if len(versions) == 0 {
					return errors.New(errors.ErrCodeNotFound, "no matching version tags in "+src.String())
				}
				versions = versions[len(versions)-1:]
			}

			list := lo.Map(versions, func(v ver.Version, _ int) string { return v.String() })
			if structured {
				return writeResult(ctx, cmd, format, tagsResult{Source: src.String(), Tags: list, Skipped: skipped})
			}
			for _, t := range list {
				fmt.Fprintln(cmd.Root().Writer, t)
			}
			return nil
		},
	}
}

func filterConstraint(versions []ver.Version, c *semver.Constraints) []ver.Version {
	if c == nil {
		return versions
	}
	return lo.Filter(versions, func(v ver.Version, _ int) bool {
		sv, err := semver.NewVersion(v.Numeric())
		return err == nil && c.Check(sv)
	})
}

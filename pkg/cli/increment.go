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
	"github.com/urfave/cli/v3"

	ver "github.com/NVIDIA/semtag/pkg/version"
)

// incrementResult is the structured form of an increment.
type incrementResult struct {
	Original        string `json:"original" yaml:"original"`
	Next            string `json:"next" yaml:"next"`
	Numeric         string `json:"numeric" yaml:"numeric"`
	Directive       string `json:"directive" yaml:"directive"`
	ConflictChecked bool   `json:"conflictChecked" yaml:"conflictChecked"`
	ExistingTags    int    `json:"existingTags" yaml:"existingTags"`
}

// ConfigMapData exposes the tags as plain ConfigMap keys.
func (r incrementResult) ConfigMapData() map[string]string {
	return map[string]string{
		"tag":         r.Next,
		"numeric_tag": r.Numeric,
	}
}

func incrementCmd() *cli.Command {
	return &cli.Command{
		Name:                  "increment",
		EnableShellCompletion: true,
		Usage:                 "Increment a semantic version tag",
		Description: heredoc.Doc(`
			Compute the next version after --tag. Versions that already exist as
			tags in the configured sources are skipped.

			Increment types:
			  major, minor, patch   bump the component and reset the lower ones
			  prerelease (dev)      bump the pre-release counter or start one

			Examples:
			  semtag increment -t v1.2.3 -i patch
			  semtag increment -t v1.2.3-rc.1 -i prerelease
			  semtag increment -t 2.0.0 -i prerelease -p beta --output-format both
			  semtag increment -t v1.0.0 -i minor --format json -o cm://release/next-version
		`),
		Flags: incrementFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, structured, err := structuredFormat(cmd)
			if err != nil {
				return err
			}

			in, err := parseIncrementInput(ctx, cmd, "")
			if err != nil {
				return err
			}
			existing, err := in.existing(ctx, cmd)
			if err != nil {
				return err
			}
			in.Options.Existing = existing

			next, err := ver.Increment(in.Version, in.Directive, in.Options)
			if err != nil {
				return err
			}

			if structured {
				return writeResult(ctx, cmd, format, incrementResult{
					Original:        in.Version.String(),
					Next:            next.Full(),
					Numeric:         next.Numeric(),
					Directive:       string(in.Directive),
					ConflictChecked: existing != nil,
					ExistingTags:    existing.Len(),
				})
			}
			printVersion(cmd, next, in.Mode)
			return nil
		},
	}
}

func printVersion(cmd *cli.Command, v ver.Version, mode ver.FormatMode) {
	w := cmd.Root().Writer
	if mode == ver.FormatBoth {
		fmt.Fprintf(w, "Full version:    %s\n", v.Full())
		fmt.Fprintf(w, "Numeric version: %s\n", v.Numeric())
		return
	}
	fmt.Fprintln(w, v.Format(mode))
}

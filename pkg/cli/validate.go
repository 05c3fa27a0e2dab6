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
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	ver "github.com/NVIDIA/semtag/pkg/version"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a semantic version tag and show its components",
		Description: heredoc.Doc(`
			Parse --tag as SemVer 2.0 (with an optional v/V prefix) and print its
			components. Exits with a non-zero status when the tag is invalid.

			Examples:
			  semtag validate -t v1.2.3
			  semtag validate -t 1.0.0-alpha.1+build.42 --format json
		`),
		Flags: []cli.Flag{
			tagFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, structured, err := structuredFormat(cmd)
			if err != nil {
				return err
			}

			v, err := ver.Parse(cmd.String("tag"))
			if err != nil {
				fmt.Fprintln(cmd.Root().ErrWriter, color.RedString("✗ Invalid semantic version: %q", cmd.String("tag")))
				return err
			}

			if structured {
				return writeResult(ctx, cmd, format, v.Details())
			}
			printDetails(cmd, v.Details())
			return nil
		},
	}
}

func printDetails(cmd *cli.Command, d ver.Details) {
	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓ Valid semantic version:"), d.Version)
	fmt.Fprintf(w, "   Major:      %d\n", d.Major)
	fmt.Fprintf(w, "   Minor:      %d\n", d.Minor)
	fmt.Fprintf(w, "   Patch:      %d\n", d.Patch)
	if d.IsPrerelease {
		fmt.Fprintf(w, "   Pre-release: %s\n", strings.Join(d.Prerelease, "."))
		fmt.Fprintf(w, "   Pre-release identifiers: [%s]\n", strings.Join(d.Prerelease, ", "))
		if len(d.NumericIdentifiers) > 0 {
			fmt.Fprintf(w, "   Numeric components:      [%s]\n", strings.Join(d.NumericIdentifiers, ", "))
		}
	}
	if d.Metadata != "" {
		fmt.Fprintf(w, "   Metadata:   %s\n", d.Metadata)
	}
	if d.Prefix != "" {
		fmt.Fprintf(w, "   Prefix:     %s\n", d.Prefix)
	}
}

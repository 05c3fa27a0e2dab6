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
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	ver "github.com/NVIDIA/semtag/pkg/version"
)

type suggestResult struct {
	Original    string   `json:"original" yaml:"original"`
	Directive   string   `json:"directive" yaml:"directive"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// selectVersion is replaced in tests.
var selectVersion = func(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  ver.MaxSuggestions,
	}
	_, chosen, err := prompt.Run()
	return chosen, err
}

func suggestCmd() *cli.Command {
	return &cli.Command{
		Name:                  "suggest",
		EnableShellCompletion: true,
		Usage:                 "Show candidate next versions",
		Description: heredoc.Doc(`
			List up to five candidate versions after --tag for the increment
			type (prerelease by default). The first candidate is what
			"semtag increment" would return. Candidates that already exist as
			tags are skipped.

			With --interactive and a terminal on stdin, pick a candidate from a
			menu; the chosen version is printed.

			Examples:
			  semtag suggest -t v1.2.3
			  semtag suggest -t 1.0.0-beta.2 -i prerelease --interactive
		`),
		Flags: append(incrementFlags(), &cli.BoolFlag{
			Name:  "interactive",
			Usage: "Select one of the candidates interactively",
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, structured, err := structuredFormat(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("interactive") && !isTerminal() {
				return errors.New("--interactive requires a terminal on stdin")
			}

			in, err := parseIncrementInput(ctx, cmd, string(ver.DirectivePrerelease))
			if err != nil {
				return err
			}
			existing, err := in.existing(ctx, cmd)
			if err != nil {
				return err
			}
			in.Options.Existing = existing

			candidates, err := ver.Suggest(in.Version, in.Directive, in.Options)
			if err != nil {
				return err
			}
			rendered := lo.Map(candidates, func(v ver.Version, _ int) string {
				return v.Format(in.Mode)
			})

			if cmd.Bool("interactive") {
				chosen, err := selectVersion(fmt.Sprintf("Next version after %s", in.Version), rendered)
				if err != nil {
					return fmt.Errorf("selection aborted: %w", err)
				}
				fmt.Fprintln(cmd.Root().Writer, chosen)
				return nil
			}

			if structured {
				return writeResult(ctx, cmd, format, suggestResult{
					Original:    in.Version.String(),
					Directive:   string(in.Directive),
					Suggestions: rendered,
				})
			}

			w := cmd.Root().Writer
			fmt.Fprintf(w, "Suggestions for %s increment of %s:\n", in.Directive, in.Version)
			for i, s := range rendered {
				fmt.Fprintf(w, "  %d. %s\n", i+1, s)
			}
			return nil
		},
	}
}

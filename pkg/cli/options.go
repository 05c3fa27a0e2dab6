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
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semtag/pkg/config"
	"github.com/NVIDIA/semtag/pkg/serializer"
	"github.com/NVIDIA/semtag/pkg/tags"
	ver "github.com/NVIDIA/semtag/pkg/version"
)

// incrementInput is the merged view of flags and config for increment and
// suggest. Flags win over the config file.
type incrementInput struct {
	Version        ver.Version
	Directive      ver.Directive
	Options        ver.Options
	Mode           ver.FormatMode
	CheckConflicts bool
	Sources        []string
	FetchTimeout   time.Duration

	// explicitSources is false when the default --path repository is used.
	explicitSources bool
}

func parseIncrementInput(ctx context.Context, cmd *cli.Command, defaultDirective string) (*incrementInput, error) {
	cfg, err := configFrom(ctx, cmd)
	if err != nil {
		return nil, err
	}

	v, err := ver.Parse(cmd.String("tag"))
	if err != nil {
		return nil, err
	}

	if defaultDirective == "" {
		defaultDirective = cfg.Increment
	}
	d, err := ver.ParseDirective(stringOr(cmd, "increment", defaultDirective))
	if err != nil {
		return nil, err
	}

	mode, err := ver.ParseFormatMode(stringOr(cmd, "output-format", cfg.OutputFormat))
	if err != nil {
		return nil, err
	}

	in := &incrementInput{
		Version:   v,
		Directive: d,
		Options: ver.Options{
			PrereleaseType:   stringOr(cmd, "prerelease-type", cfg.PrereleaseType),
			PreserveMetadata: boolOr(cmd, "preserve-metadata", cfg.PreserveMetadata),
		},
		Mode:           mode,
		CheckConflicts: boolOr(cmd, "check-conflicts", cfg.CheckConflicts),
		FetchTimeout:   cfg.FetchTimeout,
	}
	if err := ver.ValidatePrereleaseType(in.Options.PrereleaseType); err != nil {
		return nil, err
	}
	if cmd.IsSet("fetch-timeout") {
		in.FetchTimeout = cmd.Duration("fetch-timeout")
	}
	in.Sources, in.explicitSources = sourceURIs(cmd, cfg)
	return in, nil
}

// sourceURIs returns --source, else the configured sources, else --path.
func sourceURIs(cmd *cli.Command, cfg *config.Config) ([]string, bool) {
	if s := cmd.StringSlice("source"); len(s) > 0 {
		return s, true
	}
	if len(cfg.Sources) > 0 {
		return cfg.Sources, true
	}
	return []string{cmd.String("path")}, false
}

// existing loads the conflict set. The default repository is best effort:
// outside a git checkout the increment proceeds without conflict checking.
func (in *incrementInput) existing(ctx context.Context, cmd *cli.Command) (*ver.TagSet, error) {
	if !in.CheckConflicts {
		return nil, nil
	}

	src, err := tags.NewSources(in.Sources,
		tags.WithFetch(true),
		tags.WithFetchTimeout(in.FetchTimeout))
	if err != nil {
		return nil, err
	}

	set, err := tags.Existing(ctx, src, in.FetchTimeout)
	if err != nil {
		if in.explicitSources {
			return nil, fmt.Errorf("failed to list tags from %s: %w", src, err)
		}
		slog.Warn("tag retrieval failed, conflict checking disabled", "source", src.String(), "error", err)
		fmt.Fprintln(cmd.Root().ErrWriter, color.YellowString("Warning: %v; proceeding without conflict checking", err))
		return nil, nil
	}
	return set, nil
}

// structuredFormat reports whether a structured result was requested with
// --format or --output. Without --format the format follows the output
// extension.
func structuredFormat(cmd *cli.Command) (serializer.Format, bool, error) {
	raw, out := cmd.String("format"), strings.TrimSpace(cmd.String("output"))
	if raw == "" && out == "" {
		return "", false, nil
	}
	if raw == "" {
		if strings.HasPrefix(out, serializer.ConfigMapURIScheme) {
			return serializer.FormatYAML, true, nil
		}
		return serializer.FormatFromPath(out), true, nil
	}
	f, err := serializer.ParseFormat(raw)
	if err != nil {
		return "", false, err
	}
	return f, true, nil
}

// writeResult serializes v to --output, or to the command writer.
func writeResult(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	var ser serializer.Serializer
	if out := strings.TrimSpace(cmd.String("output")); out != "" {
		ser = serializer.NewFileWriterOrStdout(format, out)
	} else {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}

func stringOr(cmd *cli.Command, flag, fallback string) string {
	if cmd.IsSet(flag) {
		return cmd.String(flag)
	}
	return fallback
}

func boolOr(cmd *cli.Command, flag string, fallback bool) bool {
	if cmd.IsSet(flag) {
		return cmd.Bool(flag)
	}
	return fallback
}

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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/semtag/pkg/serializer"
	ver "github.com/NVIDIA/semtag/pkg/version"
)

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Write a structured result to a file or ConfigMap URI (cm://namespace/name).
	Default: stdout.`,
	}
}

// formatFlag selects a structured result. It has no short alias; -t is the tag.
func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name: "format",
		Usage: fmt.Sprintf("Structured output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func tagFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "tag",
		Aliases:  []string{"t"},
		Required: true,
		Usage:    "The existing semantic version tag (e.g., v1.2.3, 1.0.0-rc.1+build.5)",
	}
}

func incrementFlags() []cli.Flag {
	return []cli.Flag{
		tagFlag(),
		&cli.StringFlag{
			Name:    "increment",
			Aliases: []string{"i"},
			Usage: fmt.Sprintf("Increment type (supported values: %s, or dev/pre/prerel)",
				strings.Join(ver.SupportedDirectives(), ", ")),
		},
		&cli.StringFlag{
			Name:    "prerelease-type",
			Aliases: []string{"p"},
			Usage:   "Pre-release identifier (dev, alpha, beta, rc, ...); unset continues the current pre-release or starts dev",
		},
		&cli.BoolFlag{
			Name:  "check-conflicts",
			Value: true,
			Usage: "Skip versions that already exist as tags (--check-conflicts=false to disable)",
		},
		&cli.BoolFlag{
			Name:  "preserve-metadata",
			Usage: "Keep build metadata on the incremented version",
		},
		&cli.StringFlag{
			Name:    "output-format",
			Aliases: []string{"f"},
			Usage: fmt.Sprintf("Version rendering (supported values: %s)",
				strings.Join(ver.SupportedFormatModes(), ", ")),
		},
		sourceFlag(),
		pathFlag(),
		fetchTimeoutFlag(),
		outputFlag(),
		formatFlag(),
	}
}

func sourceFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name: "source",
		Usage: `Tag source URI, repeatable. Default: the git repository at --path.
	Supports: git://path, github://owner/repo, oci://registry/repo,
	cm://namespace/name, file://path, http(s) URLs, or .json/.yaml documents.`,
	}
}

func pathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "path",
		Value: ".",
		Usage: "Directory of the git repository used when no --source is given",
	}
}

func fetchTimeoutFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "fetch-timeout",
		Usage: "Timeout for fetching tags (e.g., 60s); overrides the config file",
	}
}

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

// Package cli implements the semtag command-line interface.
//
// # Commands
//
// increment - Compute the next version:
//
//	semtag increment --tag v1.2.3 --increment patch
//
// Bumps major, minor, patch or the pre-release counter and skips versions that
// already exist as tags. Prints the version in the --output-format rendering
// (full, numeric or both).
//
// validate - Check a tag and show its components:
//
//	semtag validate --tag 1.0.0-rc.1+build.5
//
// suggest - List up to five candidate versions:
//
//	semtag suggest --tag v1.2.3 [--interactive]
//
// tags - List version tags from sources:
//
//	semtag tags --source github://owner/repo --constraint ">= 1.0" --latest
//
// config - Manage the config file:
//
//	semtag config init [--force]
//	semtag config show
//
// version - Print build information.
//
// # Global Flags
//
//	--config     Config file (default $XDG_CONFIG_HOME/semantic_tag_increment/config.yaml)
//	--log-level  Log level (debug, info, warn, error)
//	--debug      Shorthand for --log-level debug
//
// # Output
//
// Without --format or --output the commands print plain text. --format
// json|yaml|table prints a structured result; --output writes it to a file or
// a ConfigMap (cm://namespace/name). Without --format, the file extension
// picks the format.
//
// # Tag Sources
//
// --source is repeatable and accepts git://path, github://owner/repo,
// oci://registry/repo, cm://namespace/name, file://path, http(s) URLs and
// .json/.yaml documents. Without --source the "sources" config key is used,
// then the git repository at --path. Failing to read the default repository
// only disables conflict checking; failing explicit sources is an error.
//
// # GitHub Actions
//
// With GITHUB_ACTIONS=true and no arguments, Execute runs pkg/actions, which
// reads INPUT_* variables and writes the step outputs.
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid tag, no free version, source failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/semtag/pkg/cli.version=1.0.0'"
package cli

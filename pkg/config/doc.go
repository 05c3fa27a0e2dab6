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

// Package config loads semtag settings from
// $XDG_CONFIG_HOME/semantic_tag_increment/config.yaml and SEMTAG_*
// environment variables.
//
// Precedence, lowest first: built-in defaults, the config file, environment.
// Command line flags are applied on top by pkg/cli.
//
// Example file:
//
//	increment: prerelease
//	prerelease-type: rc
//	check-conflicts: true
//	output-format: both
//	fetch-timeout: 2m
//	sources:
//	  - github://NVIDIA/semtag
//	server:
//	  port: 8080
package config

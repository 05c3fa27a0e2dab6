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

// Package actions runs semtag as a GitHub Action.
//
// Inputs arrive as INPUT_* environment variables (see LoadInputs). The next
// version is written to $GITHUB_OUTPUT as "tag" and "numeric_tag":
//
//	tag=v1.2.4
//	numeric_tag=1.2.4
//
// When GITHUB_OUTPUT is unset the legacy ::set-output workflow command is
// printed instead. Progress is grouped with ::group:: markers; failures are
// reported with ::error:: and a non-nil error so the step fails.
//
// Tag retrieval failures never fail the step: the increment proceeds without
// conflict checking and a ::warning:: is emitted.
package actions

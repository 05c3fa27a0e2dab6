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

// Package version parses, compares, increments and formats SemVer 2.0 tags.
//
// A tag is parsed into an immutable Version value:
//
//	v, err := version.Parse("v1.2.3-rc.1+build.7")
//	// v.Prefix == "v", v.Prerelease == [rc 1], v.Metadata == "build.7"
//
// Versions are ordered by SemVer precedence (Compare). Build metadata never affects
// ordering or equality.
//
// Increment computes the next version for a Directive:
//
//	next, err := version.Increment(v, version.DirectivePrerelease, version.Options{
//	    PrereleaseType: "beta",
//	    Existing:       version.NewTagSet(tags),
//	})
//
// When Options.Existing is set, the result never equals a parsed member of the set.
// The search past taken versions is bounded; exhaustion yields a
// *ConflictResolutionError.
//
// Suggest returns a short, deterministic list of candidate next versions for
// interactive selection.
//
// Format renders a version with or without its original prefix:
//
//	next.Format(version.FormatFull)    // "v1.2.4-beta.1"
//	next.Format(version.FormatNumeric) // "1.2.4-beta.1"
//
// All functions are pure and values are safe for concurrent use.
package version

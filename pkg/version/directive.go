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

package version

import "strings"

// Directive is the kind of increment to perform.
type Directive string

const (
	DirectiveMajor      Directive = "major"
	DirectiveMinor      Directive = "minor"
	DirectivePatch      Directive = "patch"
	DirectivePrerelease Directive = "prerelease"
)

var directiveAliases = map[string]Directive{
	"dev":    DirectivePrerelease,
	"pre":    DirectivePrerelease,
	"prerel": DirectivePrerelease,
}

// ParseDirective maps a user-supplied string to a Directive. Matching is case
// insensitive and accepts the prerelease aliases "dev", "pre" and "prerel".
func ParseDirective(s string) (Directive, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	d := Directive(norm)
	if d.IsValid() {
		return d, nil
	}
	if alias, ok := directiveAliases[norm]; ok {
		return alias, nil
	}
	return "", &InvalidDirectiveError{Value: s}
}

// IsValid reports whether d is one of the four known directives.
func (d Directive) IsValid() bool {
	switch d {
	case DirectiveMajor, DirectiveMinor, DirectivePatch, DirectivePrerelease:
		return true
	default:
		return false
	}
}

func (d Directive) String() string {
	return string(d)
}

// SupportedDirectives returns the canonical directive names.
func SupportedDirectives() []string {
	return []string{
		string(DirectiveMajor),
		string(DirectiveMinor),
		string(DirectivePatch),
		string(DirectivePrerelease),
	}
}

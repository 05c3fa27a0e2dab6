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

import (
	"fmt"
	"strings"
)

// FormatMode selects how a version is rendered.
type FormatMode string

const (
	// FormatFull renders prefix, core, pre-release and metadata.
	FormatFull FormatMode = "full"
	// FormatNumeric renders the same as FormatFull without the prefix.
	FormatNumeric FormatMode = "numeric"
	// FormatBoth renders the full and numeric forms separated by a space.
	FormatBoth FormatMode = "both"
)

// ParseFormatMode maps a user-supplied string to a FormatMode.
func ParseFormatMode(s string) (FormatMode, error) {
	m := FormatMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case FormatFull, FormatNumeric, FormatBoth:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (supported values: %s)",
			ErrInvalidFormatMode, s, strings.Join(SupportedFormatModes(), ", "))
	}
}

// SupportedFormatModes returns the known format mode names.
func SupportedFormatModes() []string {
	return []string{string(FormatFull), string(FormatNumeric), string(FormatBoth)}
}

// Format renders v in the given mode. Unknown modes render as FormatFull.
func (v Version) Format(mode FormatMode) string {
	switch mode {
	case FormatNumeric:
		return v.render(false)
	case FormatBoth:
		return v.render(true) + " " + v.render(false)
	default:
		return v.render(true)
	}
}

// Full returns v with its original prefix.
func (v Version) Full() string {
	return v.render(true)
}

// Numeric returns v without a prefix.
func (v Version) Numeric() string {
	return v.render(false)
}

func (v Version) render(withPrefix bool) string {
	var b strings.Builder
	if withPrefix {
		b.WriteString(v.Prefix)
	}
	b.WriteString(v.Core())
	if v.IsPrerelease() {
		b.WriteByte('-')
		b.WriteString(v.PrereleaseString())
	}
	if v.Metadata != "" {
		b.WriteByte('+')
		b.WriteString(v.Metadata)
	}
	return b.String()
}

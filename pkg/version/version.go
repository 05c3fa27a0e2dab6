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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLength is the longest input Parse accepts.
const MaxLength = 1000

// Identifier is one dot-separated pre-release identifier. Numeric is decided
// once at parse time and drives precedence comparison.
type Identifier struct {
	Value   string
	Numeric bool
}

// ParseIdentifier validates a single pre-release identifier.
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, newParseError(s, ErrInvalidIdentifier, "empty identifier")
	}
	numeric := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isIdentChar(c) {
			return Identifier{}, newParseError(s, ErrInvalidIdentifier, "invalid character %q in identifier %q", c, s)
		}
		if c < '0' || c > '9' {
			numeric = false
		}
	}
	if numeric && len(s) > 1 && s[0] == '0' {
		return Identifier{}, newParseError(s, ErrLeadingZero, "leading zero in numeric identifier %q", s)
	}
	return Identifier{Value: s, Numeric: numeric}, nil
}

func (i Identifier) String() string {
	return i.Value
}

// MarshalText renders the identifier as its raw value.
func (i Identifier) MarshalText() ([]byte, error) {
	return []byte(i.Value), nil
}

// UnmarshalText parses and classifies the identifier.
func (i *Identifier) UnmarshalText(b []byte) error {
	id, err := ParseIdentifier(string(b))
	if err != nil {
		return err
	}
	*i = id
	return nil
}

// Version is a parsed semantic version. Values are never mutated by this
// package; every operation returns a new Version.
type Version struct {
	Major uint64 `json:"major" yaml:"major"`
	Minor uint64 `json:"minor" yaml:"minor"`
	Patch uint64 `json:"patch" yaml:"patch"`

	// Prerelease is empty for release versions.
	Prerelease []Identifier `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`

	// Metadata is the build metadata without the leading "+".
	Metadata string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Prefix is "", "v" or "V" as found in the input.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Parse parses raw into a Version. A single leading "v" or "V" is accepted and
// recorded. Surrounding whitespace, leading zeros in numeric components and
// empty identifiers are rejected with a *ParseError.
func Parse(raw string) (Version, error) {
	if raw == "" {
		return Version{}, newParseError(raw, ErrEmpty, "empty string")
	}
	if len(raw) > MaxLength {
		return Version{}, newParseError(raw, ErrTooLong, "length %d exceeds %d characters", len(raw), MaxLength)
	}
	if strings.TrimSpace(raw) != raw {
		return Version{}, newParseError(raw, ErrWhitespace, "leading or trailing whitespace")
	}

	var v Version
	s := raw
	if isPrefix(s[0]) {
		v.Prefix = s[:1]
		s = s[1:]
		if s != "" && isPrefix(s[0]) {
			return Version{}, newParseError(raw, ErrMultiplePrefix, "multiple leading prefixes")
		}
	}

	if i := strings.IndexByte(s, '+'); i >= 0 {
		meta := s[i+1:]
		if err := validateMetadata(raw, meta); err != nil {
			return Version{}, err
		}
		v.Metadata = meta
		s = s[:i]
	}

	core := s
	if i := strings.IndexByte(s, '-'); i >= 0 {
		core = s[:i]
		pre, err := parsePrerelease(raw, s[i+1:])
		if err != nil {
			return Version{}, err
		}
		v.Prerelease = pre
	}

	if err := parseCore(raw, core, &v); err != nil {
		return Version{}, err
	}
	return v, nil
}

// MustParse parses raw and panics if parsing fails. Only use it with
// hardcoded strings or in tests.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}

// IsValid reports whether raw is a valid tag.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

var coreNames = [3]string{"major", "minor", "patch"}

func parseCore(raw, core string, v *Version) error {
	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return newParseError(raw, ErrTooManyComponents, "core %q has %d components", core, len(parts))
	}
	var nums [3]uint64
	for i, name := range coreNames {
		if i >= len(parts) || parts[i] == "" {
			return newParseError(raw, ErrMissingComponent, "missing %s component", name)
		}
		part := parts[i]
		for j := 0; j < len(part); j++ {
			if part[j] < '0' || part[j] > '9' {
				return newParseError(raw, ErrNonNumeric, "%s %q is not numeric", name, part)
			}
		}
		if len(part) > 1 && part[0] == '0' {
			return newParseError(raw, ErrLeadingZero, "leading zero in %s %q", name, part)
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return newParseError(raw, ErrOverflow, "%s %q is out of range", name, part)
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return nil
}

func parsePrerelease(raw, pre string) ([]Identifier, error) {
	if pre == "" {
		return nil, newParseError(raw, ErrInvalidIdentifier, "empty prerelease")
	}
	parts := strings.Split(pre, ".")
	ids := make([]Identifier, 0, len(parts))
	for _, p := range parts {
		id, err := ParseIdentifier(p)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, newParseError(raw, pe.Err, "prerelease: %s", pe.Reason)
			}
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func validateMetadata(raw, meta string) error {
	if meta == "" {
		return newParseError(raw, ErrInvalidIdentifier, "empty build metadata")
	}
	for _, seg := range strings.Split(meta, ".") {
		if seg == "" {
			return newParseError(raw, ErrInvalidIdentifier, "empty build metadata segment")
		}
		for j := 0; j < len(seg); j++ {
			if !isIdentChar(seg[j]) {
				return newParseError(raw, ErrInvalidIdentifier, "invalid character %q in build metadata %q", seg[j], seg)
			}
		}
	}
	return nil
}

func isPrefix(c byte) bool {
	return c == 'v' || c == 'V'
}

func isIdentChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-'
}

// IsPrerelease reports whether v carries pre-release identifiers.
func (v Version) IsPrerelease() bool {
	return len(v.Prerelease) > 0
}

// Core returns "MAJOR.MINOR.PATCH".
func (v Version) Core() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// PrereleaseString returns the dot-joined pre-release, or "" for a release.
func (v Version) PrereleaseString() string {
	return joinIdentifiers(v.Prerelease)
}

// Identifiers returns the raw pre-release identifier values.
func (v Version) Identifiers() []string {
	out := make([]string, len(v.Prerelease))
	for i, id := range v.Prerelease {
		out[i] = id.Value
	}
	return out
}

// String returns the full representation including prefix and metadata.
func (v Version) String() string {
	return v.Format(FormatFull)
}

// Details is a flattened description of a Version, used for validation output.
type Details struct {
	Version            string   `json:"version" yaml:"version"`
	Prefix             string   `json:"prefix" yaml:"prefix"`
	Major              uint64   `json:"major" yaml:"major"`
	Minor              uint64   `json:"minor" yaml:"minor"`
	Patch              uint64   `json:"patch" yaml:"patch"`
	IsPrerelease       bool     `json:"isPrerelease" yaml:"isPrerelease"`
	Prerelease         []string `json:"prerelease" yaml:"prerelease"`
	NumericIdentifiers []string `json:"numericIdentifiers" yaml:"numericIdentifiers"`
	Metadata           string   `json:"metadata" yaml:"metadata"`
}

// Details describes v component by component.
func (v Version) Details() Details {
	numeric := make([]string, 0, len(v.Prerelease))
	for _, id := range v.Prerelease {
		if id.Numeric {
			numeric = append(numeric, id.Value)
		}
	}
	return Details{
		Version:            v.String(),
		Prefix:             v.Prefix,
		Major:              v.Major,
		Minor:              v.Minor,
		Patch:              v.Patch,
		IsPrerelease:       v.IsPrerelease(),
		Prerelease:         v.Identifiers(),
		NumericIdentifiers: numeric,
		Metadata:           v.Metadata,
	}
}

func joinIdentifiers(ids []Identifier) string {
	switch len(ids) {
	case 0:
		return ""
	case 1:
		return ids[0].Value
	}
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(id.Value)
	}
	return b.String()
}

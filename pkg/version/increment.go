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
	"math"
	"slices"
	"strings"
)

const (
	// DefaultPrereleaseType starts a pre-release from a release when
	// Options.PrereleaseType is empty.
	DefaultPrereleaseType = "dev"

	// MaxCoreAttempts bounds conflict avoidance for major, minor and patch.
	MaxCoreAttempts = 100

	// MaxPrereleaseAttempts bounds conflict avoidance for pre-release counters.
	MaxPrereleaseAttempts = 1000
)

// Options tunes Increment and Suggest.
type Options struct {
	// PrereleaseType is the leading pre-release identifier (or dot-separated
	// identifiers) for new pre-releases. Empty continues the current
	// pre-release, or starts DefaultPrereleaseType on a release.
	PrereleaseType string

	// PreserveMetadata keeps the source build metadata on the result.
	PreserveMetadata bool

	// Existing holds tags the result must not collide with.
	Existing *TagSet
}

// prereleaseType returns the validated type identifiers, nil when unset.
func (o Options) prereleaseType() ([]Identifier, error) {
	t := o.PrereleaseType
	if t == "" {
		return nil, nil
	}
	parts := strings.Split(t, ".")
	ids := make([]Identifier, 0, len(parts))
	for _, p := range parts {
		id, err := ParseIdentifier(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPrereleaseType, o.PrereleaseType, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ValidatePrereleaseType checks a pre-release type without incrementing.
func ValidatePrereleaseType(t string) error {
	_, err := Options{PrereleaseType: t}.prereleaseType()
	return err
}

// Increment returns the next version after v for directive d.
//
//   - major, minor and patch bump their component, reset lower ones and clear
//     the pre-release.
//   - prerelease on a release bumps patch and starts [type, 1]. On a
//     pre-release with no type requested, or of the requested type, it bumps
//     the counter (see bumpCounter). On a different type it restarts at
//     [type, 1] on the same core, bumping patch only when the restart would not
//     sort above v.
//
// With opts.Existing set, the bump is re-applied until the result is free,
// up to MaxCoreAttempts or MaxPrereleaseAttempts.
func Increment(v Version, d Directive, opts Options) (Version, error) {
	typ, err := opts.prereleaseType()
	if err != nil {
		return Version{}, err
	}
	next, err := step(v, d, typ)
	if err != nil {
		return Version{}, err
	}
	next = carry(v, next, opts)
	return avoidConflicts(next, d, opts.Existing)
}

func step(v Version, d Directive, typ []Identifier) (Version, error) {
	switch d {
	case DirectiveMajor:
		if v.Major == math.MaxUint64 {
			return Version{}, overflow(v, "major")
		}
		return Version{Major: v.Major + 1}, nil
	case DirectiveMinor:
		if v.Minor == math.MaxUint64 {
			return Version{}, overflow(v, "minor")
		}
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case DirectivePatch:
		return bumpPatch(v, nil)
	case DirectivePrerelease:
		return stepPrerelease(v, typ)
	default:
		return Version{}, &InvalidDirectiveError{Value: string(d)}
	}
}

func stepPrerelease(v Version, typ []Identifier) (Version, error) {
	if !v.IsPrerelease() {
		return bumpPatch(v, firstPrerelease(startType(typ)))
	}
	if len(typ) == 0 || hasType(v.Prerelease, typ) {
		next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
		next.Prerelease = bumpCounter(v.Prerelease)
		return next, nil
	}
	next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: firstPrerelease(typ)}
	if next.Compare(v) > 0 {
		return next, nil
	}
	return bumpPatch(v, firstPrerelease(typ))
}

func bumpPatch(v Version, pre []Identifier) (Version, error) {
	if v.Patch == math.MaxUint64 {
		return Version{}, overflow(v, "patch")
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, Prerelease: pre}, nil
}

// carry copies prefix and, when requested, metadata from the source.
func carry(src, next Version, opts Options) Version {
	next.Prefix = src.Prefix
	next.Metadata = ""
	if opts.PreserveMetadata {
		next.Metadata = src.Metadata
	}
	return next
}

func avoidConflicts(candidate Version, d Directive, existing *TagSet) (Version, error) {
	if existing.Len() == 0 {
		return candidate, nil
	}
	limit := MaxCoreAttempts
	if d == DirectivePrerelease {
		limit = MaxPrereleaseAttempts
	}
	start := candidate
	for attempt := 0; attempt < limit; attempt++ {
		if !existing.Contains(candidate) {
			return candidate, nil
		}
		next, err := rebump(candidate, d)
		if err != nil {
			return Version{}, err
		}
		candidate = next
	}
	return Version{}, &ConflictResolutionError{
		Directive: d,
		Start:     start.String(),
		Attempts:  limit,
	}
}

// rebump applies the minimal monotonic bump for d to an already computed
// candidate, keeping its prefix and metadata.
func rebump(c Version, d Directive) (Version, error) {
	next := c
	switch d {
	case DirectiveMajor:
		if c.Major == math.MaxUint64 {
			return Version{}, overflow(c, "major")
		}
		next.Major++
	case DirectiveMinor:
		if c.Minor == math.MaxUint64 {
			return Version{}, overflow(c, "minor")
		}
		next.Minor++
	case DirectivePatch:
		if c.Patch == math.MaxUint64 {
			return Version{}, overflow(c, "patch")
		}
		next.Patch++
	case DirectivePrerelease:
		next.Prerelease = bumpCounter(c.Prerelease)
	default:
		return Version{}, &InvalidDirectiveError{Value: string(d)}
	}
	return next, nil
}

// hasType reports whether pre starts with the type identifiers, compared case
// insensitively. A single type also matches a leading identifier that carries
// its counter as trailing digits, such as beta1 for beta.
func hasType(pre, typ []Identifier) bool {
	if len(pre) < len(typ) {
		return false
	}
	if len(typ) == 1 && strings.EqualFold(typeName(pre[0]), typ[0].Value) {
		return true
	}
	for i, id := range typ {
		if !strings.EqualFold(pre[i].Value, id.Value) {
			return false
		}
	}
	return true
}

// typeName strips a trailing counter from an alphanumeric identifier.
func typeName(id Identifier) string {
	if id.Numeric {
		return id.Value
	}
	name, _ := splitTrailingDigits(id.Value)
	if name == "" {
		return id.Value
	}
	return name
}

// startType is the type used when a release starts a pre-release.
func startType(typ []Identifier) []Identifier {
	if len(typ) == 0 {
		return named(DefaultPrereleaseType)
	}
	return typ
}

func firstPrerelease(typ []Identifier) []Identifier {
	return append(slices.Clone(typ), Identifier{Value: "1", Numeric: true})
}

// bumpCounter increments the rightmost counter: a numeric identifier or the
// trailing digits of an alphanumeric one (beta1 -> beta2). Without a counter
// it appends "1". When trailing digits would carry into a longer run (beta9),
// the result would sort lower, so "1" is appended instead. The input slice is
// not modified.
func bumpCounter(pre []Identifier) []Identifier {
	out := slices.Clone(pre)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Numeric {
			out[i] = Identifier{Value: incrementDecimal(out[i].Value), Numeric: true}
			return out
		}
		name, digits := splitTrailingDigits(out[i].Value)
		if digits == "" {
			continue
		}
		next := incrementDecimal(digits)
		if len(next) > len(digits) {
			break
		}
		out[i] = Identifier{Value: name + next}
		return out
	}
	return append(out, Identifier{Value: "1", Numeric: true})
}

// splitTrailingDigits splits s into its leading part and trailing digit run.
func splitTrailingDigits(s string) (string, string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

// incrementDecimal adds one to a decimal string of any length.
func incrementDecimal(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func overflow(v Version, component string) error {
	return fmt.Errorf("%w: %s of %s cannot be incremented past %d", ErrOverflow, component, v, uint64(math.MaxUint64))
}

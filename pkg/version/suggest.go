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

// MaxSuggestions caps the number of candidates returned by Suggest.
const MaxSuggestions = 5

// suggestTypes are offered as first pre-releases, in order.
var suggestTypes = []string{"dev", "alpha", "beta", "rc"}

// nextStage maps a pre-release type to the following stage.
var nextStage = map[string]string{
	"dev":   "beta",
	"alpha": "beta",
	"beta":  "rc",
}

// Suggest returns up to MaxSuggestions distinct candidate versions after v for
// directive d. The first candidate is always the Increment result. Every
// candidate sorts above v and is free of opts.Existing. The result depends only
// on the arguments.
func Suggest(v Version, d Directive, opts Options) ([]Version, error) {
	primary, err := Increment(v, d, opts)
	if err != nil {
		return nil, err
	}
	typ, err := opts.prereleaseType()
	if err != nil {
		return nil, err
	}

	s := &suggestions{base: v, opts: opts}
	s.add(primary)

	switch d {
	case DirectivePrerelease:
		if v.IsPrerelease() {
			current := typ
			if len(current) == 0 {
				id := v.Prerelease[0]
				current = []Identifier{{Value: typeName(id), Numeric: id.Numeric}}
			}
			reset := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: firstPrerelease(current)}
			if reset.Compare(v) <= 0 {
				reset, err = bumpPatch(v, firstPrerelease(current))
			}
			if err == nil {
				s.add(reset)
			}
			if stage, ok := nextStage[strings.ToLower(typeName(v.Prerelease[0]))]; ok {
				s.add(Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: firstPrerelease(named(stage))})
			}
		}
		if patch, err := bumpPatch(v, nil); err == nil {
			s.add(patch)
			for _, t := range suggestTypes {
				pre := patch
				pre.Prerelease = firstPrerelease(named(t))
				s.add(pre)
			}
		}
	case DirectiveMajor, DirectiveMinor, DirectivePatch:
		pre := primary
		pre.Prerelease = firstPrerelease(startType(typ))
		s.add(pre)
		for _, other := range []Directive{DirectiveMajor, DirectiveMinor, DirectivePatch} {
			if other == d {
				continue
			}
			if next, err := Increment(v, other, opts); err == nil {
				s.add(next)
			}
		}
	}
	return s.list, nil
}

type suggestions struct {
	base Version
	opts Options
	list []Version
}

// add appends c when there is room, it sorts above the base, it is not taken
// and it is not already listed.
func (s *suggestions) add(c Version) {
	if len(s.list) >= MaxSuggestions {
		return
	}
	c = carry(s.base, c, s.opts)
	if c.Compare(s.base) <= 0 || s.opts.Existing.Contains(c) {
		return
	}
	for _, have := range s.list {
		if have.Equal(c) {
			return
		}
	}
	s.list = append(s.list, c)
}

func named(t string) []Identifier {
	return []Identifier{{Value: t}}
}

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
	"slices"

	"golang.org/x/text/cases"
)

// TagSet is a read-only set of existing tags used for conflict checks. Tags are
// keyed by their case-folded core and pre-release, so "v1.0.0-RC.1+a" and
// "1.0.0-rc.1" occupy the same slot. Tags that are not valid versions are
// recorded as skipped and never conflict.
type TagSet struct {
	keys     map[string]struct{}
	versions []Version
	skipped  []string
}

// NewTagSet builds a TagSet from raw tag strings.
func NewTagSet(tags []string) *TagSet {
	s := &TagSet{keys: make(map[string]struct{}, len(tags))}
	fold := cases.Fold()
	for _, tag := range tags {
		v, err := Parse(tag)
		if err != nil {
			s.skipped = append(s.skipped, tag)
			continue
		}
		key := fold.String(conflictKey(v))
		if _, dup := s.keys[key]; dup {
			continue
		}
		s.keys[key] = struct{}{}
		s.versions = append(s.versions, v)
	}
	Sort(s.versions)
	return s
}

// Contains reports whether a version equal to v (ignoring prefix, metadata
// and case) is in the set. A nil set contains nothing.
func (s *TagSet) Contains(v Version) bool {
	if s == nil || len(s.keys) == 0 {
		return false
	}
	_, ok := s.keys[cases.Fold().String(conflictKey(v))]
	return ok
}

// Len returns the number of distinct valid versions in the set.
func (s *TagSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.versions)
}

// Skipped returns the input tags that did not parse.
func (s *TagSet) Skipped() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.skipped)
}

// Versions returns the distinct valid versions by ascending precedence.
func (s *TagSet) Versions() []Version {
	if s == nil {
		return nil
	}
	return slices.Clone(s.versions)
}

// Latest returns the highest precedence version in the set.
func (s *TagSet) Latest() (Version, bool) {
	if s.Len() == 0 {
		return Version{}, false
	}
	return s.versions[len(s.versions)-1], true
}

func conflictKey(v Version) string {
	v.Prefix = ""
	v.Metadata = ""
	return v.render(false)
}

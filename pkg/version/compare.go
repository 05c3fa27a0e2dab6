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
	"cmp"
	"slices"
	"strings"
)

// Compare returns -1, 0 or 1 as v has lower, equal or higher precedence than
// other. Build metadata and prefix are ignored.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}
	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// Equal reports precedence equality: core and pre-release identifiers match.
// Build metadata and prefix are ignored.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v has lower precedence than other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v has higher precedence than other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Sort orders versions by ascending precedence. Equal versions keep their
// relative order.
func Sort(versions []Version) {
	slices.SortStableFunc(versions, Version.Compare)
}

// Compare orders two identifiers: numeric identifiers compare by value and
// sort before alphanumeric ones, which compare in ASCII order.
func (i Identifier) Compare(other Identifier) int {
	switch {
	case i.Numeric && other.Numeric:
		return compareDecimal(i.Value, other.Value)
	case i.Numeric:
		return -1
	case other.Numeric:
		return 1
	default:
		return strings.Compare(i.Value, other.Value)
	}
}

func comparePrerelease(a, b []Identifier) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareDecimal compares two decimal strings without leading zeros.
func compareDecimal(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

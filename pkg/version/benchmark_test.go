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
	"testing"
)

func BenchmarkParse(b *testing.B) {
	inputs := []string{"1.2.3", "v1.2.3-rc.1", "V10.20.30-alpha.beta.7+build.42"}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_, _ = Parse(inputs[i%len(inputs)])
	}
}

func BenchmarkCompare(b *testing.B) {
	x := MustParse("1.0.0-alpha.beta.11")
	y := MustParse("1.0.0-alpha.beta.2")
	for b.Loop() {
		_ = x.Compare(y)
	}
}

func BenchmarkString(b *testing.B) {
	v := MustParse("v1.2.3-rc.1+build.5")
	for b.Loop() {
		_ = v.String()
	}
}

func BenchmarkNewTagSet(b *testing.B) {
	tags := make([]string, 0, 500)
	for i := range 500 {
		tags = append(tags, fmt.Sprintf("v1.%d.%d", i/10, i%10))
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = NewTagSet(tags)
	}
}

func BenchmarkIncrementWithConflicts(b *testing.B) {
	tags := make([]string, 0, 200)
	for i := 1; i <= 200; i++ {
		tags = append(tags, fmt.Sprintf("1.2.3-rc.%d", i))
	}
	opts := Options{PrereleaseType: "rc", Existing: NewTagSet(tags)}
	v := MustParse("1.2.3-rc.1")
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Increment(v, DirectivePrerelease, opts)
	}
}

func BenchmarkSuggest(b *testing.B) {
	v := MustParse("v1.0.0-beta.3")
	opts := Options{PrereleaseType: "beta"}
	for b.Loop() {
		_, _ = Suggest(v, DirectivePrerelease, opts)
	}
}

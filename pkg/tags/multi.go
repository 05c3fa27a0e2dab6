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

package tags

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MultiSource lists several sources concurrently and merges the results.
type MultiSource struct {
	sources []Source
}

// NewMultiSource combines sources.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Tags returns the sorted, de-duplicated union of all sources. The first
// failure cancels the remaining fetches.
func (m *MultiSource) Tags(ctx context.Context) ([]string, error) {
	results := make([][]string, len(m.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		g.Go(func() error {
			tags, err := src.Tags(ctx)
			if err != nil {
				return err
			}
			results[i] = tags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := lo.Uniq(lo.Flatten(results))
	slices.Sort(merged)
	return merged, nil
}

func (m *MultiSource) String() string {
	return strings.Join(lo.Map(m.sources, func(s Source, _ int) string {
		return s.String()
	}), ",")
}

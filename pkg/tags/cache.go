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
	"sync"
	"time"

	"github.com/NVIDIA/semtag/pkg/defaults"
)

// CachedSource reuses a successful listing for ttl. Failures are not cached.
type CachedSource struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	tags    []string
	fetched time.Time
}

// NewCachedSource wraps src; a non-positive ttl uses defaults.TagCacheTTL.
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = defaults.TagCacheTTL
	}
	return &CachedSource{src: src, ttl: ttl, now: time.Now}
}

// Tags returns a copy of the cached tags, refreshing them when stale.
// Concurrent callers share a single refresh.
func (c *CachedSource) Tags(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tags != nil && c.now().Sub(c.fetched) < c.ttl {
		return slices.Clone(c.tags), nil
	}

	tags, err := c.src.Tags(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	c.tags = tags
	c.fetched = c.now()
	return slices.Clone(tags), nil
}

// Invalidate drops the cached listing.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = nil
}

func (c *CachedSource) String() string {
	return c.src.String()
}

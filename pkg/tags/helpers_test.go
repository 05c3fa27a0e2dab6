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
	"sync/atomic"
)

// stubSource returns errs in order, then tags.
type stubSource struct {
	name  string
	tags  []string
	errs  []error
	calls atomic.Int32
}

func (s *stubSource) Tags(ctx context.Context) ([]string, error) {
	n := int(s.calls.Add(1))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= len(s.errs) {
		return nil, s.errs[n-1]
	}
	return s.tags, nil
}

func (s *stubSource) String() string {
	return s.name
}

// blockingSource waits for the context to end.
type blockingSource struct{}

func (blockingSource) Tags(ctx context.Context) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) String() string { return "blocking" }

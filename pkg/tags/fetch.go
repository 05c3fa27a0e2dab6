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
	"log/slog"
	"time"

	"github.com/NVIDIA/semtag/pkg/defaults"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/version"
)

// Fetch lists src within timeout (defaults.TagFetchTimeout when not
// positive).
func Fetch(ctx context.Context, src Source, timeout time.Duration) ([]string, error) {
	if timeout <= 0 {
		timeout = defaults.TagFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	tags, err := src.Tags(ctx)
	if err != nil {
		if ctx.Err() != nil && apperrors.CodeOf(err) != apperrors.ErrCodeTimeout {
			return nil, apperrors.Wrap(apperrors.ErrCodeTimeout,
				"timed out listing tags from "+src.String(), err)
		}
		return nil, err
	}

	slog.Debug("fetched tags", "source", src.String(), "count", len(tags), "duration", time.Since(start))
	return tags, nil
}

// Existing fetches src and builds the conflict set. Unparseable tags are
// skipped and logged at debug level.
func Existing(ctx context.Context, src Source, timeout time.Duration) (*version.TagSet, error) {
	tags, err := Fetch(ctx, src, timeout)
	if err != nil {
		return nil, err
	}
	set := version.NewTagSet(tags)
	if skipped := set.Skipped(); len(skipped) > 0 {
		slog.Debug("ignoring non-semver tags", "count", len(skipped), "tags", skipped)
	}
	return set, nil
}

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

	"github.com/cenkalti/backoff/v4"

	"github.com/NVIDIA/semtag/pkg/defaults"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
)

// RetrySource retries a failing source with exponential backoff. Not found,
// unauthorized and invalid request errors are not retried.
type RetrySource struct {
	src         Source
	maxAttempts int
	initial     time.Duration
	max         time.Duration
}

// RetryOption configures a RetrySource.
type RetryOption func(*RetrySource)

// WithMaxAttempts sets the total number of attempts, including the first.
func WithMaxAttempts(n int) RetryOption {
	return func(r *RetrySource) { r.maxAttempts = n }
}

// WithBackoff sets the initial and maximum delay between attempts.
func WithBackoff(initial, max time.Duration) RetryOption {
	return func(r *RetrySource) {
		r.initial = initial
		r.max = max
	}
}

// NewRetrySource wraps src with the default retry bounds.
func NewRetrySource(src Source, opts ...RetryOption) *RetrySource {
	r := &RetrySource{
		src:         src,
		maxAttempts: defaults.TagRetryMaxAttempts,
		initial:     defaults.TagRetryInitialInterval,
		max:         defaults.TagRetryMaxInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxAttempts < 1 {
		r.maxAttempts = 1
	}
	return r
}

func (r *RetrySource) Tags(ctx context.Context) ([]string, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.initial
	eb.MaxInterval = r.max
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(r.maxAttempts-1)), ctx)

	op := func() ([]string, error) {
		tags, err := r.src.Tags(ctx)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return tags, err
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("tag source failed, retrying", "source", r.src.String(), "error", err, "wait", wait)
	}

	return backoff.RetryNotifyWithData(op, b, notify)
}

func (r *RetrySource) String() string {
	return r.src.String()
}

// Unwrap returns the wrapped source.
func (r *RetrySource) Unwrap() Source {
	return r.src
}

func retryable(err error) bool {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidRequest:
		return false
	default:
		return true
	}
}

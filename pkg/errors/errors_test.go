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

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/NVIDIA/semtag/pkg/version"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "tag source not found")

	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "tag source not found" {
		t.Errorf("expected message 'tag source not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]any{
		"source": "github://NVIDIA/semtag",
		"page":   3,
	}

	err := WrapWithContext(ErrCodeTimeout, "tag listing failed", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
	if err.Context["source"] != "github://NVIDIA/semtag" {
		t.Errorf("unexpected context: %v", err.Context)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeConflict, "no free version", errors.New("root cause")),
			expected: "[CONFLICT] no free version: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeConflict, "exhausted", errors.New("x")))

	if !errors.Is(err, &StructuredError{Code: ErrCodeConflict}) {
		t.Error("expected match by code")
	}
	if errors.Is(err, &StructuredError{Code: ErrCodeInternal}) {
		t.Error("unexpected match for different code")
	}
	if errors.Is(err, &StructuredError{Code: ErrCodeConflict, Message: "other"}) {
		t.Error("unexpected match for different message")
	}
}

func TestCodeOf(t *testing.T) {
	_, parseErr := version.Parse("01.2.3")
	_, dirErr := version.ParseDirective("bogus")
	_, conflictErr := version.Increment(version.MustParse("1.0.0"), version.DirectiveMajor, version.Options{
		Existing: version.NewTagSet(conflictTags()),
	})

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"structured", New(ErrCodeNotFound, "x"), ErrCodeNotFound},
		{"wrapped structured", fmt.Errorf("ctx: %w", New(ErrCodeUnauthorized, "x")), ErrCodeUnauthorized},
		{"parse error", parseErr, ErrCodeInvalidRequest},
		{"directive error", dirErr, ErrCodeInvalidRequest},
		{"prerelease type", version.ValidatePrereleaseType("a..b"), ErrCodeInvalidRequest},
		{"conflict", conflictErr, ErrCodeConflict},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"unknown", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func conflictTags() []string {
	tags := make([]string, 0, version.MaxCoreAttempts)
	for i := 2; i < 2+version.MaxCoreAttempts; i++ {
		tags = append(tags, fmt.Sprintf("%d.0.0", i))
	}
	return tags
}

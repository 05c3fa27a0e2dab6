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

package actions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/NVIDIA/semtag/pkg/tags"
	"github.com/NVIDIA/semtag/pkg/version"
)

const banner = "=================================================="

// Result is the outcome of a successful run.
type Result struct {
	Original     version.Version
	Next         version.Version
	Directive    version.Directive
	ExistingTags int
}

// Runner executes the action. The zero value is not usable; use NewRunner.
type Runner struct {
	fs     afero.Fs
	out    io.Writer
	getenv func(string) string
	source func(Inputs) tags.Source
}

// Option configures a Runner.
type Option func(*Runner)

// WithFs replaces the filesystem used for $GITHUB_OUTPUT.
func WithFs(fs afero.Fs) Option {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithGetenv replaces the environment lookup for GITHUB_OUTPUT.
func WithGetenv(getenv func(string) string) Option {
	return func(r *Runner) {
		r.getenv = getenv
	}
}

// WithSource replaces the tag source; by default the repository at
// Inputs.Path is fetched and read with go-git.
func WithSource(fn func(Inputs) tags.Source) Option {
	return func(r *Runner) {
		r.source = fn
	}
}

// NewRunner creates a Runner writing workflow commands to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		fs:     afero.NewOsFs(),
		out:    out,
		getenv: os.Getenv,
		source: func(in Inputs) tags.Source {
			return tags.NewGitSource(in.Path, true, in.FetchTimeout)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the inputs and executes them. Errors are also printed as
// ::error:: commands.
func Run(ctx context.Context, out io.Writer, opts ...Option) error {
	r := NewRunner(out, opts...)
	in, err := LoadInputs(out)
	if err != nil {
		r.printf("::error::Input Error: %v\n", err)
		return err
	}
	if _, err := r.Execute(ctx, in); err != nil {
		r.printf("::error::%v\n", err)
		return err
	}
	return nil
}

// Execute increments in.Tag and publishes the step outputs.
func (r *Runner) Execute(ctx context.Context, in Inputs) (*Result, error) {
	r.printConfig(in)

	var (
		original  version.Version
		directive version.Directive
		existing  *version.TagSet
		next      version.Version
	)
	err := r.group("Version Source", func() error {
		var err error
		if original, err = version.Parse(in.Tag); err != nil {
			return err
		}
		if directive, err = version.ParseDirective(in.Increment); err != nil {
			return err
		}
		r.printf("Version source: input tag\n")
		r.printf("Version: %s\n", original)
		r.printf("Increment type: %s\n", directive)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = r.group("Git Operations", func() error {
		existing = r.existing(ctx, in)
		return nil
	})

	err = r.group("Version Increment", func() error {
		var err error
		next, err = version.Increment(original, directive, version.Options{
			PrereleaseType:   in.PrereleaseType,
			PreserveMetadata: in.PreserveMetadata,
			Existing:         existing,
		})
		if err != nil {
			return err
		}
		r.printf("Incremented version successfully\n")
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("version incremented",
		"original", original.String(),
		"next", next.String(),
		"existingTags", existing.Len())

	_ = r.group("Results", func() error {
		r.writeOutputs(next)
		r.printf("Original version: %s\n", original)
		r.printf("Next version:     %s\n", next.Full())
		r.printf("Numeric version:  %s\n", next.Numeric())
		r.printf("::notice title=Version Increment Complete::Original: %s -> New: %s\n", original, next.Full())
		return nil
	})

	r.printf("\n")
	_ = r.group("Success", func() error {
		r.printf("Semantic Tag Increment\n%s\n", banner)
		r.printf("Version increment completed successfully!\n")
		return nil
	})

	return &Result{
		Original:     original,
		Next:         next,
		Directive:    directive,
		ExistingTags: existing.Len(),
	}, nil
}

// group wraps fn in a ::group:: block that is closed even when fn fails.
func (r *Runner) group(title string, fn func() error) error {
	r.printf("::group::%s\n", title)
	defer r.printf("::endgroup::\n")
	return fn()
}

// existing returns the tags to avoid. A nil TagSet disables conflict
// checking; retrieval failures degrade to that with a warning.
func (r *Runner) existing(ctx context.Context, in Inputs) *version.TagSet {
	if !in.CheckTags {
		r.printf("Tag checking disabled - proceeding without conflict checking\n")
		return nil
	}

	set, err := tags.Existing(ctx, r.source(in), in.FetchTimeout)
	if err != nil {
		slog.Warn("tag retrieval failed", "path", in.Path, "error", err)
		r.printf("::warning::Git operation failed: %v\n", err)
		r.printf("Proceeding without conflict checking\n")
		return nil
	}
	r.printf("Retrieved %d existing git tags\n", set.Len())
	return set
}

func (r *Runner) writeOutputs(v version.Version) {
	outputs := [][2]string{
		{"tag", v.Full()},
		{"numeric_tag", v.Numeric()},
	}

	path := r.getenv(EnvGitHubOutput)
	if path == "" {
		for _, o := range outputs {
			r.printf("::set-output name=%s::%s\n", o[0], o[1])
		}
		return
	}

	f, err := r.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("failed to open GitHub output file", "path", path, "error", err)
		return
	}
	defer f.Close()

	var b strings.Builder
	for _, o := range outputs {
		fmt.Fprintf(&b, "%s=%s\n", o[0], o[1])
	}
	if _, err := f.WriteString(b.String()); err != nil {
		slog.Error("failed to write GitHub output", "path", path, "error", err)
	}
}

func (r *Runner) printConfig(in Inputs) {
	r.printf("::group::Semantic Tag Increment Configuration\n")
	r.printf("Semantic Tag Increment\n%s\n", banner)
	r.printf("Configuration:\n")
	r.printf("   Tag: %s\n", in.Tag)
	r.printf("   Increment: %s\n", in.Increment)
	if in.PrereleaseType != "" {
		r.printf("   Prerelease Type: %s\n", in.PrereleaseType)
	}
	r.printf("   Path: %s\n", in.Path)
	r.printf("   Check Tags: %t\n", in.CheckTags)
	r.printf("   Preserve Metadata: %t\n", in.PreserveMetadata)
	r.printf("   Fetch Timeout: %d seconds\n", int(in.FetchTimeout.Seconds()))
	r.printf("%s\n::endgroup::\n\n", banner)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

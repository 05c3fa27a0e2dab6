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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/semtag/pkg/defaults"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/tags"
)

type fakeSource struct {
	tags []string
	err  error
}

func (f fakeSource) Tags(context.Context) ([]string, error) { return f.tags, f.err }
func (f fakeSource) String() string                         { return "fake" }

func withTags(list []string, err error) Option {
	return WithSource(func(Inputs) tags.Source { return fakeSource{tags: list, err: err} })
}

func clearInputs(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TAG", "INCREMENT", "PRERELEASE_TYPE", "PATH", "DEBUG",
		"CHECK_TAGS", "PRESERVE_METADATA", "FETCH_TIMEOUT"} {
		t.Setenv("INPUT_"+k, "")
	}
}

func TestLoadInputsDefaults(t *testing.T) {
	clearInputs(t)
	t.Setenv("INPUT_TAG", " v1.2.3 ")

	var out bytes.Buffer
	in, err := LoadInputs(&out)
	require.NoError(t, err)
	assert.Equal(t, Inputs{
		Tag:          "v1.2.3",
		Increment:    DefaultIncrement,
		Path:         ".",
		CheckTags:    true,
		FetchTimeout: defaults.TagFetchTimeout,
	}, in)
	assert.Empty(t, out.String())
}

func TestLoadInputsOverrides(t *testing.T) {
	clearInputs(t)
	t.Setenv("INPUT_TAG", "1.0.0")
	t.Setenv("INPUT_INCREMENT", "minor")
	t.Setenv("INPUT_PRERELEASE_TYPE", "rc")
	t.Setenv("INPUT_PATH", "/src")
	t.Setenv("INPUT_DEBUG", "TRUE")
	t.Setenv("INPUT_CHECK_TAGS", "false")
	t.Setenv("INPUT_PRESERVE_METADATA", "true")
	t.Setenv("INPUT_FETCH_TIMEOUT", "30")

	in, err := LoadInputs(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "minor", in.Increment)
	assert.Equal(t, "rc", in.PrereleaseType)
	assert.Equal(t, "/src", in.Path)
	assert.True(t, in.Debug)
	assert.False(t, in.CheckTags)
	assert.True(t, in.PreserveMetadata)
	assert.Equal(t, 30*time.Second, in.FetchTimeout)
	assert.True(t, DebugEnabled())
}

func TestLoadInputsInvalidTimeout(t *testing.T) {
	clearInputs(t)
	t.Setenv("INPUT_TAG", "1.0.0")
	t.Setenv("INPUT_FETCH_TIMEOUT", "soon")

	var out bytes.Buffer
	in, err := LoadInputs(&out)
	require.NoError(t, err)
	assert.Equal(t, defaults.TagFetchTimeout, in.FetchTimeout)
	assert.Contains(t, out.String(), "::warning::Invalid fetch_timeout value: soon")
}

func TestLoadInputsMissingTag(t *testing.T) {
	clearInputs(t)

	_, err := LoadInputs(&bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestExecuteWritesGitHubOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/gh/output", []byte("previous=1\n"), 0o644))

	var out bytes.Buffer
	r := NewRunner(&out,
		WithFs(fs),
		WithGetenv(func(string) string { return "/gh/output" }),
		withTags([]string{"v1.2.4", "not-a-version"}, nil),
	)

	res, err := r.Execute(context.Background(), Inputs{
		Tag:       "v1.2.3",
		Increment: "patch",
		Path:      ".",
		CheckTags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "v1.2.5", res.Next.String())
	assert.Equal(t, 1, res.ExistingTags)

	data, err := afero.ReadFile(fs, "/gh/output")
	require.NoError(t, err)
	assert.Equal(t, "previous=1\ntag=v1.2.5\nnumeric_tag=1.2.5\n", string(data))

	log := out.String()
	assert.Contains(t, log, "::group::Semantic Tag Increment Configuration")
	assert.Contains(t, log, "Retrieved 1 existing git tags")
	assert.Contains(t, log, "::notice title=Version Increment Complete::Original: v1.2.3 -> New: v1.2.5")
	assert.NotContains(t, log, "::set-output")
}

func TestExecuteLegacyOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out,
		WithFs(afero.NewMemMapFs()),
		WithGetenv(func(string) string { return "" }),
	)

	res, err := r.Execute(context.Background(), Inputs{Tag: "1.0.0", Increment: "dev"})
	require.NoError(t, err)
	assert.Equal(t, "1.0.1-dev.1", res.Next.String())
	assert.Contains(t, out.String(), "Tag checking disabled")
	assert.Contains(t, out.String(), "::set-output name=tag::1.0.1-dev.1\n")
	assert.Contains(t, out.String(), "::set-output name=numeric_tag::1.0.1-dev.1\n")
}

func TestExecuteTagFailureDegrades(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out,
		WithFs(afero.NewMemMapFs()),
		WithGetenv(func(string) string { return "" }),
		withTags(nil, errors.New("no repository")),
	)

	res, err := r.Execute(context.Background(), Inputs{Tag: "v2.0.0", Increment: "major", CheckTags: true})
	require.NoError(t, err)
	assert.Equal(t, "v3.0.0", res.Next.String())
	assert.Equal(t, 0, res.ExistingTags)
	assert.Contains(t, out.String(), "::warning::Git operation failed: no repository")
}

func TestExecuteInvalidInput(t *testing.T) {
	r := NewRunner(&bytes.Buffer{}, WithFs(afero.NewMemMapFs()))

	_, err := r.Execute(context.Background(), Inputs{Tag: "not-semver", Increment: "patch"})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	_, err = r.Execute(context.Background(), Inputs{Tag: "1.0.0", Increment: "build"})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestRunReportsErrors(t *testing.T) {
	clearInputs(t)
	t.Setenv("INPUT_TAG", "1.0")

	var out bytes.Buffer
	err := Run(context.Background(), &out, WithFs(afero.NewMemMapFs()))
	require.Error(t, err)
	assert.Contains(t, out.String(), "::error::")
}

func TestExecuteClosesGroupsOnError(t *testing.T) {
	tests := map[string]Inputs{
		"parse":     {Tag: "1.0", Increment: "patch"},
		"directive": {Tag: "1.0.0", Increment: "build"},
		"increment": {Tag: "18446744073709551615.0.0", Increment: "major"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewRunner(&out, WithFs(afero.NewMemMapFs()))

			_, err := r.Execute(context.Background(), in)
			require.Error(t, err)

			log := out.String()
			assert.Equal(t, strings.Count(log, "::group::"), strings.Count(log, "::endgroup::"))
			assert.True(t, strings.HasSuffix(log, "::endgroup::\n"), "log does not end with a closed group:\n%s", log)
		})
	}
}

func TestRunErrorAfterEndGroup(t *testing.T) {
	clearInputs(t)
	t.Setenv("INPUT_TAG", "1.0")

	var out bytes.Buffer
	require.Error(t, Run(context.Background(), &out, WithFs(afero.NewMemMapFs())))

	log := out.String()
	end := strings.LastIndex(log, "::endgroup::")
	require.GreaterOrEqual(t, end, 0)
	assert.Greater(t, strings.Index(log, "::error::"), end)
}

func TestRunMissingTag(t *testing.T) {
	clearInputs(t)

	var out bytes.Buffer
	require.Error(t, Run(context.Background(), &out))
	assert.Contains(t, out.String(), "::error::Input Error:")
}

func TestIsGitHubActions(t *testing.T) {
	t.Setenv(EnvGitHubActions, "true")
	assert.True(t, IsGitHubActions())
	t.Setenv(EnvGitHubActions, "false")
	assert.False(t, IsGitHubActions())
}

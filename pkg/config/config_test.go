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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")

	cfg, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Increment, cfg.Increment)
	assert.Empty(t, cfg.PrereleaseType)
	assert.True(t, cfg.CheckConflicts)
	assert.Equal(t, "full", cfg.OutputFormat)
	assert.Equal(t, 120*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.File)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/etc/semtag/config.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(`
increment: prerelease
prerelease-type: rc
preserve-metadata: true
output-format: both
fetch-timeout: 30s
sources:
  - github://NVIDIA/semtag
  - oci://ghcr.io/nvidia/semtag
server:
  port: 9090
`), 0o644))

	cfg, err := Load(fs, path)
	require.NoError(t, err)

	assert.Equal(t, "prerelease", cfg.Increment)
	assert.Equal(t, "rc", cfg.PrereleaseType)
	assert.True(t, cfg.PreserveMetadata)
	assert.Equal(t, "both", cfg.OutputFormat)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"github://NVIDIA/semtag", "oci://ghcr.io/nvidia/semtag"}, cfg.Sources)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, path, cfg.File)
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope/config.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "colour: blue\n",
		"bad format":      "output-format: short\n",
		"bad increment":   "increment: huge\n",
		"bad type":        "prerelease-type: a..b\n",
		"bad timeout":     "fetch-timeout: soon\n",
		"port range":      "server:\n  port: 70000\n",
		"not a list":      "sources: github://x/y\n",
		"invalid yaml":    "increment: [\n",
		"metadata string": "preserve-metadata: \"yes\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte(body), 0o644))
			_, err := Load(fs, "/c.yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SEMTAG_PRERELEASE_TYPE", "beta")
	t.Setenv("SEMTAG_CHECK_CONFLICTS", "false")
	t.Setenv("SEMTAG_SERVER_PORT", "9999")
	t.Setenv("SEMTAG_SOURCES", "github://a/b,cm://default/tags")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("prerelease-type: rc\n"), 0o644))

	cfg, err := Load(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Equal(t, "beta", cfg.PrereleaseType)
	assert.False(t, cfg.CheckConflicts)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, []string{"github://a/b", "cm://default/tags"}, cfg.Sources)
}

func TestLoadEnvInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("SEMTAG_OUTPUT_FORMAT", "short")

	_, err := Load(afero.NewMemMapFs(), "")
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/home/u/.config", DirName, FileName)

	got, err := Init(fs, path, false)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	cfg, err := Load(fs, path)
	require.NoError(t, err)
	want := Default()
	want.File = path
	want.Sources = nil
	cfg.Sources = nil
	assert.Equal(t, want, *cfg)

	_, err = Init(fs, path, false)
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = Init(fs, path, true)
	assert.NoError(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/semantic_tag_increment/config.yaml", p)
}

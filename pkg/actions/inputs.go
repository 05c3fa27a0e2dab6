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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NVIDIA/semtag/pkg/defaults"
	"github.com/NVIDIA/semtag/pkg/errors"
)

const (
	// EnvGitHubActions is set to "true" by the Actions runner.
	EnvGitHubActions = "GITHUB_ACTIONS"
	// EnvGitHubOutput names the step output file.
	EnvGitHubOutput = "GITHUB_OUTPUT"

	inputEnvPrefix = "INPUT"

	inputTag              = "tag"
	inputIncrement        = "increment"
	inputPrereleaseType   = "prerelease-type"
	inputPath             = "path"
	inputDebug            = "debug"
	inputCheckTags        = "check-tags"
	inputPreserveMetadata = "preserve-metadata"
	inputFetchTimeout     = "fetch-timeout"

	// DefaultIncrement matches the action.yml default.
	DefaultIncrement = "dev"
)

// IsGitHubActions reports whether the process runs inside a workflow.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) == "true"
}

// Inputs are the action inputs after defaults are applied.
type Inputs struct {
	Tag              string
	Increment        string
	PrereleaseType   string
	Path             string
	Debug            bool
	CheckTags        bool
	PreserveMetadata bool
	FetchTimeout     time.Duration
}

// DebugEnabled reports whether INPUT_DEBUG is "true", without validating the
// other inputs. Used to pick the log level before anything else runs.
func DebugEnabled() bool {
	return isTrue(newInputViper().GetString(inputDebug))
}

// LoadInputs reads INPUT_* variables. An invalid fetch timeout falls back to
// the default with a ::warning:: written to w. A missing tag is an
// INVALID_REQUEST error.
func LoadInputs(w io.Writer) (Inputs, error) {
	v := newInputViper()

	in := Inputs{
		Tag:              strings.TrimSpace(v.GetString(inputTag)),
		Increment:        valueOr(v.GetString(inputIncrement), DefaultIncrement),
		PrereleaseType:   strings.TrimSpace(v.GetString(inputPrereleaseType)),
		Path:             valueOr(v.GetString(inputPath), "."),
		Debug:            isTrue(v.GetString(inputDebug)),
		CheckTags:        isTrue(valueOr(v.GetString(inputCheckTags), "true")),
		PreserveMetadata: isTrue(v.GetString(inputPreserveMetadata)),
		FetchTimeout:     defaults.TagFetchTimeout,
	}

	if raw := strings.TrimSpace(v.GetString(inputFetchTimeout)); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			fmt.Fprintf(w, "::warning::Invalid fetch_timeout value: %s, using default %d\n",
				raw, int(defaults.TagFetchTimeout.Seconds()))
		} else {
			in.FetchTimeout = time.Duration(secs) * time.Second
		}
	}

	if in.Tag == "" {
		return in, errors.New(errors.ErrCodeInvalidRequest, "the 'tag' input is required and must not be empty")
	}
	return in, nil
}

func newInputViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(inputEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func valueOr(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func isTrue(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

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

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/tags"
)

// Query parameter names. JSON bodies use the same names.
const (
	ParamTag              = "tag"
	ParamIncrement        = "increment"
	ParamPrereleaseType   = "prerelease_type"
	ParamPreserveMetadata = "preserve_metadata"
	ParamCheckConflicts   = "check_conflicts"
	ParamExisting         = "existing"
	ParamSources          = "sources"
	ParamFormat           = "format"
)

// remoteSchemes are the tag sources a client may name in a request. Local
// paths, files, ConfigMaps and OCI registries are only reachable through
// server config, so clients cannot point the daemon at arbitrary hosts.
var remoteSchemes = []string{tags.GitHubScheme}

// Request is the input to every /v1 endpoint. Unset optional fields fall
// back to the server configuration.
type Request struct {
	Tag              string   `json:"tag"`
	Increment        string   `json:"increment,omitempty"`
	PrereleaseType   string   `json:"prerelease_type,omitempty"`
	PreserveMetadata *bool    `json:"preserve_metadata,omitempty"`
	CheckConflicts   *bool    `json:"check_conflicts,omitempty"`
	Existing         []string `json:"existing,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	Format           string   `json:"format,omitempty"`
}

// ParseRequest reads a GET query string or a POST JSON body.
func ParseRequest(r *http.Request) (*Request, error) {
	var req *Request
	var err error

	switch r.Method {
	case http.MethodGet:
		req, err = parseQuery(r.URL.Query())
	case http.MethodPost:
		req, err = parseBody(r.Body)
	default:
		return nil, apperrors.New(apperrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method))
	}
	if err != nil {
		return nil, err
	}

	req.Tag = strings.TrimSpace(req.Tag)
	if req.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required")
	}
	if err := req.validateSources(); err != nil {
		return nil, err
	}
	return req, nil
}

func parseQuery(q url.Values) (*Request, error) {
	req := &Request{
		Tag:            q.Get(ParamTag),
		Increment:      q.Get(ParamIncrement),
		PrereleaseType: q.Get(ParamPrereleaseType),
		Format:         q.Get(ParamFormat),
		Existing:       splitList(q[ParamExisting]),
		Sources:        splitList(q[ParamSources]),
	}

	var err error
	if req.PreserveMetadata, err = parseBool(q, ParamPreserveMetadata); err != nil {
		return nil, err
	}
	if req.CheckConflicts, err = parseBool(q, ParamCheckConflicts); err != nil {
		return nil, err
	}
	return req, nil
}

func parseBody(body io.Reader) (*Request, error) {
	if body == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "request body is required")
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req Request
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"request body too large", err, map[string]any{"limit": tooLarge.Limit})
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid JSON body", err)
	}
	return &req, nil
}

func parseBool(q url.Values, key string) (*bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid %s value %q", key, raw), map[string]any{"parameter": key})
	}
	return &b, nil
}

// splitList accepts repeated parameters and comma-separated values.
func splitList(values []string) []string {
	return lo.FlatMap(values, func(v string, _ int) []string {
		return lo.Compact(lo.Map(strings.Split(v, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	})
}

func (r *Request) validateSources() error {
	for _, uri := range r.Sources {
		remote := lo.ContainsBy(remoteSchemes, func(scheme string) bool {
			return strings.HasPrefix(uri, scheme)
		})
		if !remote {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unsupported source %q, allowed schemes: %s", uri, strings.Join(remoteSchemes, ", ")),
				map[string]any{"source": uri})
		}
	}
	return nil
}

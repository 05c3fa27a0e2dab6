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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/NVIDIA/semtag/pkg/config"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/server"
	"github.com/NVIDIA/semtag/pkg/tags"
)

type fakeSource struct {
	uri   string
	tags  []string
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Tags(context.Context) ([]string, error) {
	f.calls.Add(1)
	return f.tags, f.err
}

func (f *fakeSource) String() string { return f.uri }

func newTestHandler(cfg config.Config, sources map[string]*fakeSource) *Handler {
	return NewHandler(cfg, WithSourceFactory(func(uri string) (tags.Source, error) {
		src, ok := sources[uri]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "unknown source "+uri)
		}
		return src, nil
	}))
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHandleIncrement(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	tests := []struct {
		name   string
		do     func() *httptest.ResponseRecorder
		want   string
		full   string
		format string
		check  bool
	}{
		{
			name: "query with existing",
			do: func() *httptest.ResponseRecorder {
				return get(h.HandleIncrement, "/v1/increment?tag=v1.2.3&increment=minor&existing=v1.3.0")
			},
			want:   "v1.4.0",
			full:   "v1.4.0",
			format: "full",
			check:  true,
		},
		{
			name:   "config default increment",
			do:     func() *httptest.ResponseRecorder { return get(h.HandleIncrement, "/v1/increment?tag=1.2.3") },
			want:   "1.2.4",
			full:   "1.2.4",
			format: "full",
		},
		{
			name: "body prerelease numeric",
			do: func() *httptest.ResponseRecorder {
				return post(h.HandleIncrement, "/v1/increment",
					`{"tag":"v1.2.3","increment":"prerelease","existing":["1.2.4-dev.1"],"format":"numeric"}`)
			},
			want:   "1.2.4-dev.2",
			full:   "v1.2.4-dev.2",
			format: "numeric",
			check:  true,
		},
		{
			name: "conflict checking disabled",
			do: func() *httptest.ResponseRecorder {
				return get(h.HandleIncrement, "/v1/increment?tag=v1.2.3&increment=minor&existing=v1.3.0&check_conflicts=false")
			},
			want:   "v1.3.0",
			full:   "v1.3.0",
			format: "full",
		},
		{
			name: "prerelease type and metadata",
			do: func() *httptest.ResponseRecorder {
				return post(h.HandleIncrement, "/v1/increment",
					`{"tag":"1.0.0-rc.1+sha.abc","increment":"dev","prerelease_type":"rc","preserve_metadata":true}`)
			},
			want:   "1.0.0-rc.2+sha.abc",
			full:   "1.0.0-rc.2+sha.abc",
			format: "full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.do()
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			resp := decode[IncrementResponse](t, rec)
			if resp.Version != tt.want || resp.Full != tt.full || resp.Format != tt.format {
				t.Errorf("response = %+v, want version %s full %s format %s", resp, tt.want, tt.full, tt.format)
			}
			if resp.ConflictChecked != tt.check {
				t.Errorf("conflictChecked = %v, want %v", resp.ConflictChecked, tt.check)
			}
		})
	}
}

func TestHandleIncrementErrors(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	tests := []struct {
		name   string
		rec    *httptest.ResponseRecorder
		status int
		code   string
	}{
		{"missing tag", get(h.HandleIncrement, "/v1/increment"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"invalid tag", get(h.HandleIncrement, "/v1/increment?tag=1.2"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"invalid increment", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&increment=huge"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"invalid format", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&format=xml"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"invalid prerelease type", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&prerelease_type=a..b"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"invalid bool", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&check_conflicts=maybe"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"local source", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&sources=/etc"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"registry source", get(h.HandleIncrement, "/v1/increment?tag=1.2.3&sources=oci://10.0.0.1:5000/x"), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"file source", post(h.HandleIncrement, "/v1/increment", `{"tag":"1.2.3","sources":["file:///etc/passwd"]}`), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"unknown field", post(h.HandleIncrement, "/v1/increment", `{"tag":"1.2.3","bump":"major"}`), http.StatusBadRequest, server.ErrCodeInvalidRequest},
		{"malformed body", post(h.HandleIncrement, "/v1/increment", `{"tag":`), http.StatusBadRequest, server.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", tt.rec.Code, tt.status, tt.rec.Body.String())
			}
			if resp := decode[server.ErrorResponse](t, tt.rec); resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestHandleIncrementMethodNotAllowed(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	rec := httptest.NewRecorder()
	h.HandleIncrement(rec, httptest.NewRequest(http.MethodPut, "/v1/increment?tag=1.2.3", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "GET, POST" {
		t.Errorf("Allow = %q, want %q", got, "GET, POST")
	}
}

func TestHandleIncrementSources(t *testing.T) {
	remote := &fakeSource{uri: "github://acme/app", tags: []string{"v1.2.4", "latest"}}
	h := newTestHandler(config.Default(), map[string]*fakeSource{remote.uri: remote})

	for range 2 {
		rec := get(h.HandleIncrement, "/v1/increment?tag=v1.2.3&sources=github://acme/app&existing=v1.2.5")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		resp := decode[IncrementResponse](t, rec)
		if resp.Version != "v1.2.6" {
			t.Errorf("version = %s, want v1.2.6", resp.Version)
		}
		if resp.ExistingTags != 2 {
			t.Errorf("existingTags = %d, want 2", resp.ExistingTags)
		}
	}

	if got := remote.calls.Load(); got != 2 {
		t.Errorf("request source listed %d times, want 2 (uncached)", got)
	}
	if n := len(h.caches); n != 0 {
		t.Errorf("request sources cached %d entries, want 0", n)
	}
}

func TestHandleIncrementConfiguredSourceCached(t *testing.T) {
	remote := &fakeSource{uri: "oci://registry.example.com/app", tags: []string{"1.2.4"}}
	cfg := config.Default()
	cfg.Sources = []string{remote.uri}
	h := newTestHandler(cfg, map[string]*fakeSource{remote.uri: remote})

	for range 2 {
		rec := get(h.HandleIncrement, "/v1/increment?tag=1.2.3")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if resp := decode[IncrementResponse](t, rec); resp.Version != "1.2.5" {
			t.Errorf("version = %s, want 1.2.5", resp.Version)
		}
	}

	if got := remote.calls.Load(); got != 1 {
		t.Errorf("configured source listed %d times, want 1 (cached)", got)
	}
	if n := len(h.caches); n != 1 {
		t.Errorf("cache entries = %d, want 1", n)
	}
}

func TestHandleIncrementRequestSourcesNotCached(t *testing.T) {
	sources := map[string]*fakeSource{}
	for _, uri := range []string{"github://acme/a", "github://acme/b", "github://acme/c"} {
		sources[uri] = &fakeSource{uri: uri}
	}
	h := newTestHandler(config.Default(), sources)

	for uri := range sources {
		if rec := get(h.HandleIncrement, "/v1/increment?tag=1.2.3&sources="+uri); rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
	}
	if n := len(h.caches); n != 0 {
		t.Errorf("cache grew to %d entries from request sources", n)
	}
}

func TestHandleIncrementConfiguredSources(t *testing.T) {
	local := &fakeSource{uri: "tags.json", tags: []string{"2.0.0"}}
	cfg := config.Default()
	cfg.Sources = []string{local.uri}
	h := newTestHandler(cfg, map[string]*fakeSource{local.uri: local})

	rec := get(h.HandleIncrement, "/v1/increment?tag=1.2.3&increment=major")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if resp := decode[IncrementResponse](t, rec); resp.Version != "3.0.0" {
		t.Errorf("version = %s, want 3.0.0", resp.Version)
	}
}

func TestHandleIncrementSourceFailure(t *testing.T) {
	broken := &fakeSource{
		uri: "oci://registry.example.com/app",
		err: apperrors.New(apperrors.ErrCodeUnavailable, "registry down"),
	}
	cfg := config.Default()
	cfg.Sources = []string{broken.uri}
	h := newTestHandler(cfg, map[string]*fakeSource{broken.uri: broken})

	rec := get(h.HandleIncrement, "/v1/increment?tag=1.2.3")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503: %s", rec.Code, rec.Body.String())
	}
	resp := decode[server.ErrorResponse](t, rec)
	if resp.Code != server.ErrCodeServiceUnavailable || !resp.Retryable {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestHandleSuggest(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	rec := get(h.HandleSuggest, "/v1/suggest?tag=1.2.3&existing=1.2.4,1.2.4-beta.1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decode[SuggestResponse](t, rec)
	want := []string{"1.2.4-dev.1", "1.2.4-alpha.1", "1.2.4-rc.1"}
	if strings.Join(resp.Suggestions, ",") != strings.Join(want, ",") {
		t.Errorf("suggestions = %v, want %v", resp.Suggestions, want)
	}
	if resp.Directive != "prerelease" {
		t.Errorf("directive = %q, want prerelease", resp.Directive)
	}
}

func TestHandleSuggestNumeric(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	rec := post(h.HandleSuggest, "/v1/suggest", `{"tag":"v1.2.3","increment":"major","format":"numeric"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decode[SuggestResponse](t, rec)
	want := []string{"2.0.0", "2.0.0-dev.1", "1.3.0", "1.2.4"}
	if strings.Join(resp.Suggestions, ",") != strings.Join(want, ",") {
		t.Errorf("suggestions = %v, want %v", resp.Suggestions, want)
	}
}

func TestHandleValidate(t *testing.T) {
	h := newTestHandler(config.Default(), nil)

	rec := get(h.HandleValidate, "/v1/validate?tag=v1.2.3-rc.1%2Bbuild.5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decode[ValidateResponse](t, rec)
	if !resp.Valid || resp.Details == nil {
		t.Fatalf("expected valid response with details, got %+v", resp)
	}
	if resp.Details.Prefix != "v" || resp.Details.Minor != 2 || resp.Details.Metadata != "build.5" {
		t.Errorf("unexpected details: %+v", resp.Details)
	}

	rec = post(h.HandleValidate, "/v1/validate", `{"tag":"1.2.3.4"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp = decode[ValidateResponse](t, rec)
	if resp.Valid || resp.Error == "" || resp.Details != nil {
		t.Errorf("expected invalid response, got %+v", resp)
	}

	if rec := get(h.HandleValidate, "/v1/validate"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing tag status = %d, want 400", rec.Code)
	}
}

func TestRoutesThroughServer(t *testing.T) {
	t.Setenv(server.EnvPort, "")

	h := newTestHandler(config.Default(), nil)
	s := server.New(server.WithHandler(h.Routes()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/increment?tag=v0.1.0&increment=minor", nil)
	req.Header.Set(server.APIVersionHeader, "v1")
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
	if rec.Header().Get(server.APIVersionHeader) != "v1" {
		t.Errorf("%s = %q, want v1", server.APIVersionHeader, rec.Header().Get(server.APIVersionHeader))
	}
	if resp := decode[IncrementResponse](t, rec); resp.Version != "v0.2.0" {
		t.Errorf("version = %s, want v0.2.0", resp.Version)
	}
}

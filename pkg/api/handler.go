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
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/samber/lo"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/semtag/pkg/config"
	"github.com/NVIDIA/semtag/pkg/defaults"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/serializer"
	"github.com/NVIDIA/semtag/pkg/server"
	"github.com/NVIDIA/semtag/pkg/tags"
	ver "github.com/NVIDIA/semtag/pkg/version"
)

// IncrementResponse is returned by /v1/increment.
type IncrementResponse struct {
	Original        string `json:"original"`
	Version         string `json:"version"`
	Full            string `json:"full"`
	Numeric         string `json:"numeric"`
	Directive       string `json:"directive"`
	Format          string `json:"format"`
	ConflictChecked bool   `json:"conflictChecked"`
	ExistingTags    int    `json:"existingTags"`
}

// ValidateResponse is returned by /v1/validate. Invalid tags are not an
// error: Valid is false and Error explains why.
type ValidateResponse struct {
	Tag     string       `json:"tag"`
	Valid   bool         `json:"valid"`
	Error   string       `json:"error,omitempty"`
	Details *ver.Details `json:"details,omitempty"`
}

// SuggestResponse is returned by /v1/suggest.
type SuggestResponse struct {
	Original    string   `json:"original"`
	Directive   string   `json:"directive"`
	Format      string   `json:"format"`
	Suggestions []string `json:"suggestions"`
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSourceFactory replaces the tag source constructor.
func WithSourceFactory(f func(uri string) (tags.Source, error)) HandlerOption {
	return func(h *Handler) { h.newSource = f }
}

// WithCacheTTL sets how long listed tags are reused.
func WithCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) { h.cacheTTL = ttl }
}

// Handler serves the /v1 version endpoints.
type Handler struct {
	cfg          config.Config
	cacheTTL     time.Duration
	fetchTimeout time.Duration
	newSource    func(uri string) (tags.Source, error)

	mu     sync.Mutex
	caches map[string]*tags.CachedSource
}

// NewHandler creates a Handler using cfg for request defaults and
// server-side sources.
func NewHandler(cfg config.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		cfg:          cfg,
		cacheTTL:     defaults.TagCacheTTL,
		fetchTimeout: min(cfg.FetchTimeout, defaults.SourceFetchTimeout),
		caches:       make(map[string]*tags.CachedSource),
	}
	if h.fetchTimeout <= 0 {
		h.fetchTimeout = defaults.SourceFetchTimeout
	}
	h.newSource = func(uri string) (tags.Source, error) {
		return tags.NewSources([]string{uri}, tags.WithFetch(true), tags.WithFetchTimeout(h.fetchTimeout))
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handler map for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/increment": h.HandleIncrement,
		"/v1/validate":  h.HandleValidate,
		"/v1/suggest":   h.HandleSuggest,
	}
}

// HandleIncrement computes the next free version.
func (h *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), defaults.VersionHandlerTimeout)
	defer cancel()

	in, err := h.resolve(ctx, r, h.cfg.Increment)
	if err != nil {
		h.fail(w, r, "increment", err)
		return
	}

	next, err := ver.Increment(in.v, in.directive, in.opts)
	if err != nil {
		h.fail(w, r, "increment", err)
		return
	}
	requestsTotal.WithLabelValues("increment", "ok").Inc()

	serializer.RespondJSON(w, http.StatusOK, IncrementResponse{
		Original:        in.v.String(),
		Version:         next.Format(in.mode),
		Full:            next.Full(),
		Numeric:         next.Numeric(),
		Directive:       string(in.directive),
		Format:          string(in.mode),
		ConflictChecked: in.opts.Existing != nil,
		ExistingTags:    in.opts.Existing.Len(),
	})
}

// HandleSuggest lists candidate next versions, defaulting to a pre-release
// increment.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), defaults.VersionHandlerTimeout)
	defer cancel()

	in, err := h.resolve(ctx, r, string(ver.DirectivePrerelease))
	if err != nil {
		h.fail(w, r, "suggest", err)
		return
	}

	candidates, err := ver.Suggest(in.v, in.directive, in.opts)
	if err != nil {
		h.fail(w, r, "suggest", err)
		return
	}
	requestsTotal.WithLabelValues("suggest", "ok").Inc()

	serializer.RespondJSON(w, http.StatusOK, SuggestResponse{
		Original:  in.v.String(),
		Directive: string(in.directive),
		Format:    string(in.mode),
		Suggestions: lo.Map(candidates, func(v ver.Version, _ int) string {
			return v.Format(in.mode)
		}),
	})
}

// HandleValidate reports whether tag is a semantic version.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	req, err := ParseRequest(r)
	if err != nil {
		h.fail(w, r, "validate", err)
		return
	}

	resp := ValidateResponse{Tag: req.Tag}
	v, err := ver.Parse(req.Tag)
	if err != nil {
		resp.Error = err.Error()
		requestsTotal.WithLabelValues("validate", "invalid").Inc()
	} else {
		d := v.Details()
		resp.Valid = true
		resp.Details = &d
		requestsTotal.WithLabelValues("validate", "ok").Inc()
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// allowMethod writes a 405 for anything but GET and POST.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		server.MethodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := apperrors.CodeOf(err)
	requestsTotal.WithLabelValues(op, string(code)).Inc()
	slog.Debug("request failed",
		"requestID", server.RequestID(r.Context()),
		"operation", op,
		"code", code,
		"error", err)
	server.WriteErrorFromErr(w, r, err)
}

// resolved is a request merged with the server configuration.
type resolved struct {
	v         ver.Version
	directive ver.Directive
	mode      ver.FormatMode
	opts      ver.Options
}

func (h *Handler) resolve(ctx context.Context, r *http.Request, defaultDirective string) (*resolved, error) {
	req, err := ParseRequest(r)
	if err != nil {
		return nil, err
	}

	v, err := ver.Parse(req.Tag)
	if err != nil {
		return nil, err
	}
	d, err := ver.ParseDirective(lo.CoalesceOrEmpty(req.Increment, defaultDirective))
	if err != nil {
		return nil, err
	}
	mode, err := ver.ParseFormatMode(lo.CoalesceOrEmpty(req.Format, h.cfg.OutputFormat))
	if err != nil {
		return nil, err
	}

	in := &resolved{
		v:         v,
		directive: d,
		mode:      mode,
		opts: ver.Options{
			PrereleaseType:   lo.CoalesceOrEmpty(req.PrereleaseType, h.cfg.PrereleaseType),
			PreserveMetadata: ptr.Deref(req.PreserveMetadata, h.cfg.PreserveMetadata),
		},
	}
	if err := ver.ValidatePrereleaseType(in.opts.PrereleaseType); err != nil {
		return nil, err
	}

	if ptr.Deref(req.CheckConflicts, h.cfg.CheckConflicts) {
		existing, err := h.existing(ctx, req)
		if err != nil {
			return nil, err
		}
		in.opts.Existing = existing
	}
	return in, nil
}

// existing merges the tags sent by the client with the tags listed from the
// configured and request sources. Only configured sources are cached; request
// sources are listed on every call. Nil means there is nothing to check.
func (h *Handler) existing(ctx context.Context, req *Request) (*ver.TagSet, error) {
	requested := lo.Without(lo.Uniq(req.Sources), h.cfg.Sources...)
	if len(h.cfg.Sources) == 0 && len(requested) == 0 && len(req.Existing) == 0 {
		return nil, nil
	}

	all := append([]string{}, req.Existing...)
	for _, uri := range lo.Uniq(h.cfg.Sources) {
		src, err := h.cachedSource(uri)
		if err != nil {
			return nil, err
		}
		listed, err := h.list(ctx, uri, src)
		if err != nil {
			return nil, err
		}
		all = append(all, listed...)
	}
	for _, uri := range requested {
		src, err := h.newSource(uri)
		if err != nil {
			return nil, err
		}
		listed, err := h.list(ctx, uri, src)
		if err != nil {
			return nil, err
		}
		all = append(all, listed...)
	}
	return ver.NewTagSet(all), nil
}

func (h *Handler) list(ctx context.Context, uri string, src tags.Source) ([]string, error) {
	start := time.Now()
	listed, err := tags.Fetch(ctx, src, h.fetchTimeout)
	sourceFetchDuration.WithLabelValues(schemeOf(uri)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to list tags from %s: %w", src, err)
	}
	return listed, nil
}

// cachedSource returns the cached source for a configured uri, creating it on
// first use. The cache holds at most one entry per configured source.
func (h *Handler) cachedSource(uri string) (tags.Source, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.caches[uri]; ok {
		return c, nil
	}
	src, err := h.newSource(uri)
	if err != nil {
		return nil, err
	}
	c := tags.NewCachedSource(src, h.cacheTTL)
	h.caches[uri] = c
	return c, nil
}

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
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/k8s/client"
	"github.com/NVIDIA/semtag/pkg/oci"
	"github.com/NVIDIA/semtag/pkg/serializer"
)

// URI schemes understood by NewSource.
const (
	GitScheme       = "git://"
	GitHubScheme    = "github://"
	OCIScheme       = oci.URIScheme
	ConfigMapScheme = serializer.ConfigMapURIScheme
	FileScheme      = "file://"
)

// Source lists the tags that already exist somewhere.
type Source interface {
	Tags(ctx context.Context) ([]string, error)
	String() string
}

// SourceOption configures sources built by NewSource.
type SourceOption func(*sourceOptions)

type sourceOptions struct {
	fetch        bool
	fetchTimeout time.Duration
	httpClient   *http.Client
	githubURL    string
	githubToken  string
	kubeClient   client.Interface
	kubeconfig   string
	plainHTTP    bool
	insecureTLS  bool
}

// WithFetch makes git sources fetch tags from origin before listing.
func WithFetch(fetch bool) SourceOption {
	return func(o *sourceOptions) { o.fetch = fetch }
}

// WithFetchTimeout bounds the git fetch.
func WithFetchTimeout(d time.Duration) SourceOption {
	return func(o *sourceOptions) { o.fetchTimeout = d }
}

// WithHTTPClient sets the client for GitHub and HTTP file sources.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(o *sourceOptions) { o.httpClient = c }
}

// WithGitHubBaseURL points GitHub sources at an Enterprise or test server.
func WithGitHubBaseURL(u string) SourceOption {
	return func(o *sourceOptions) { o.githubURL = u }
}

// WithGitHubToken overrides GITHUB_TOKEN.
func WithGitHubToken(token string) SourceOption {
	return func(o *sourceOptions) { o.githubToken = token }
}

// WithKubeClient sets the client for ConfigMap sources.
func WithKubeClient(c client.Interface) SourceOption {
	return func(o *sourceOptions) { o.kubeClient = c }
}

// WithKubeconfig selects the kubeconfig for ConfigMap sources.
func WithKubeconfig(path string) SourceOption {
	return func(o *sourceOptions) { o.kubeconfig = path }
}

// WithPlainHTTP talks to OCI registries over HTTP.
func WithPlainHTTP(plain bool) SourceOption {
	return func(o *sourceOptions) { o.plainHTTP = plain }
}

// WithInsecureTLS skips certificate verification for OCI registries.
func WithInsecureTLS(insecure bool) SourceOption {
	return func(o *sourceOptions) { o.insecureTLS = insecure }
}

// NewSource resolves a tag source URI:
//
//	""  or a directory      local git repository
//	git://path              local git repository
//	github://owner/repo     GitHub repository tags
//	oci://registry/repo     OCI registry repository tags
//	cm://namespace/name     ConfigMap data key "tags"
//	file://path, http(s)://url, *.json, *.yaml, *.yml
//	                        {"tags": [...]} document
func NewSource(uri string, opts ...SourceOption) (Source, error) {
	o := sourceOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case strings.HasPrefix(uri, GitHubScheme):
		owner, repo, ok := strings.Cut(strings.TrimPrefix(uri, GitHubScheme), "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid GitHub source %q, expected github://owner/repo", uri))
		}
		return NewGitHubSource(owner, repo, GitHubConfig{
			HTTPClient: o.httpClient,
			BaseURL:    o.githubURL,
			Token:      o.githubToken,
		})
	case strings.HasPrefix(uri, OCIScheme):
		return NewOCISource(uri, oci.ListOptions{PlainHTTP: o.plainHTTP, InsecureTLS: o.insecureTLS})
	case strings.HasPrefix(uri, ConfigMapScheme):
		return NewConfigMapSource(uri, o.kubeClient, o.kubeconfig)
	case strings.HasPrefix(uri, FileScheme):
		return NewFileSource(strings.TrimPrefix(uri, FileScheme), o.httpClient), nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"), isDocument(uri):
		return NewFileSource(uri, o.httpClient), nil
	case strings.HasPrefix(uri, GitScheme):
		return NewGitSource(strings.TrimPrefix(uri, GitScheme), o.fetch, o.fetchTimeout), nil
	case strings.Contains(uri, "://"):
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported tag source scheme in %q", uri))
	default:
		return NewGitSource(uri, o.fetch, o.fetchTimeout), nil
	}
}

// NewSources resolves every URI, wrapping each remote source in a
// RetrySource. A single URI is returned as is; several become a MultiSource.
func NewSources(uris []string, opts ...SourceOption) (Source, error) {
	if len(uris) == 0 {
		uris = []string{""}
	}
	sources := make([]Source, 0, len(uris))
	for _, uri := range uris {
		src, err := NewSource(uri, opts...)
		if err != nil {
			return nil, err
		}
		if _, local := src.(*GitSource); !local {
			src = NewRetrySource(src)
		}
		sources = append(sources, src)
	}
	if len(sources) == 1 {
		return sources[0], nil
	}
	return NewMultiSource(sources...), nil
}

func isDocument(uri string) bool {
	return serializer.IsDocumentPath(uri)
}

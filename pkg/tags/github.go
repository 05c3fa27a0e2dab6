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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v33/github"
	"golang.org/x/oauth2"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
)

// githubPageSize is the maximum page size the tags API accepts.
const githubPageSize = 100

// GitHubConfig configures a GitHubSource. Zero values use github.com with
// GITHUB_TOKEN, when set, for authentication.
type GitHubConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
}

// GitHubSource lists tags of a GitHub repository.
type GitHubSource struct {
	Owner  string
	Repo   string
	client *github.Client
}

// NewGitHubSource builds a source for owner/repo.
func NewGitHubSource(owner, repo string, cfg GitHubConfig) (*GitHubSource, error) {
	token := cfg.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	httpClient := cfg.HTTPClient
	if token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	gh := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid GitHub base URL", err)
		}
		gh.BaseURL = base
	}

	return &GitHubSource{Owner: owner, Repo: repo, client: gh}, nil
}

// Tags pages through the repository tags.
func (s *GitHubSource) Tags(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: githubPageSize}
	var out []string
	for {
		page, resp, err := s.client.Repositories.ListTags(ctx, s.Owner, s.Repo, opts)
		if err != nil {
			return nil, s.classify(resp, err)
		}
		for _, t := range page {
			out = append(out, t.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	slog.Debug("listed GitHub tags", "source", s.String(), "count", len(out))
	return out, nil
}

func (s *GitHubSource) classify(resp *github.Response, err error) error {
	name := s.Owner + "/" + s.Repo
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return apperrors.Wrap(apperrors.ErrCodeRateLimitExceeded, "GitHub rate limit exceeded", err)
	}
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperrors.Wrap(apperrors.ErrCodeNotFound, fmt.Sprintf("repository %s not found", name), err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.Wrap(apperrors.ErrCodeUnauthorized, fmt.Sprintf("access to %s denied", name), err)
		}
	}
	return apperrors.Wrap(apperrors.ErrCodeUnavailable, fmt.Sprintf("failed to list tags for %s", name), err)
}

func (s *GitHubSource) String() string {
	return GitHubScheme + s.Owner + "/" + s.Repo
}

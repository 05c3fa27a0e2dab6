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
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/NVIDIA/semtag/pkg/defaults"
	apperrors "github.com/NVIDIA/semtag/pkg/errors"
)

const (
	originRemote = "origin"
	tagRefSpec   = config.RefSpec("+refs/tags/*:refs/tags/*")
)

// GitSource lists tags of a local repository, optionally fetching them from
// origin first.
type GitSource struct {
	Path         string
	Fetch        bool
	FetchTimeout time.Duration
}

// NewGitSource returns a source for the repository containing path. An
// empty path is the working directory.
func NewGitSource(path string, fetch bool, timeout time.Duration) *GitSource {
	if path == "" {
		path = "."
	}
	if timeout <= 0 {
		timeout = defaults.TagFetchTimeout
	}
	return &GitSource{Path: path, Fetch: fetch, FetchTimeout: timeout}
}

// Tags returns the short names of all tags. A failed fetch is logged and the
// local tags are used.
func (s *GitSource) Tags(ctx context.Context) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(s.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound,
				fmt.Sprintf("%s is not a git repository", s.Path), err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to open git repository", err)
	}

	if s.Fetch {
		if err := s.fetch(ctx, repo); err != nil {
			slog.Warn("failed to fetch tags from origin, using local tags",
				"path", s.Path, "error", err)
		}
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to list git tags", err)
	}
	defer iter.Close()

	var out []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		out = append(out, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to read git tags", err)
	}

	slog.Debug("listed git tags", "path", s.Path, "count", len(out))
	return out, nil
}

func (s *GitSource) fetch(ctx context.Context, repo *git.Repository) error {
	remote, err := repo.Remote(originRemote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			slog.Debug("no origin remote, skipping tag fetch", "path", s.Path)
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.FetchTimeout)
	defer cancel()

	slog.Debug("fetching tags", "remote", originRemote, "timeout", s.FetchTimeout)
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: originRemote,
		RefSpecs:   []config.RefSpec{tagRefSpec},
		Tags:       git.AllTags,
		Auth:       fetchAuth(remote.Config().URLs),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("fetch timed out after %s: %w", s.FetchTimeout, err)
		}
		return err
	}
	return nil
}

// fetchAuth uses GITHUB_TOKEN for HTTPS remotes, as checkouts in Actions
// usually have it available.
func fetchAuth(urls []string) transport.AuthMethod {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" || len(urls) == 0 || !strings.HasPrefix(urls[0], "https://") {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: token}
}

func (s *GitSource) String() string {
	return GitScheme + s.Path
}

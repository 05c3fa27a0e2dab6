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

package oci

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"

	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
	"oras.land/oras-go/v2/registry/remote/errcode"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
)

// ListOptions configures registry access.
type ListOptions struct {
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Client overrides the authenticating client built from Docker credentials.
	Client remote.Client
}

// ListTags returns every tag of the repository, following registry
// pagination.
func ListTags(ctx context.Context, ref *Reference, opts ListOptions) ([]string, error) {
	if ref == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}

	repo, err := remote.NewRepository(ref.Name())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = opts.Client
	if repo.Client == nil {
		repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)
	}

	var tags []string
	err = repo.Tags(ctx, "", func(page []string) error {
		tags = append(tags, page...)
		return nil
	})
	if err != nil {
		return nil, classify(ref, err)
	}

	slog.Debug("listed registry tags", "repository", ref.Name(), "count", len(tags))
	return tags, nil
}

func classify(ref *Reference, err error) error {
	var resp *errcode.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperrors.Wrap(apperrors.ErrCodeNotFound, "repository "+ref.Name()+" not found", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.Wrap(apperrors.ErrCodeUnauthorized, "access to "+ref.Name()+" denied", err)
		case http.StatusTooManyRequests:
			return apperrors.Wrap(apperrors.ErrCodeRateLimitExceeded, "registry rate limit exceeded", err)
		}
	}
	return apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to list tags for "+ref.Name(), err)
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	c := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		c.Credential = credentials.Credential(credStore)
	}
	return c
}

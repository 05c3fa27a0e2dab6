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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
)

// URIScheme is the URI scheme for registry tag sources (e.g., "oci://ghcr.io/org/repo").
const URIScheme = "oci://"

// Reference identifies a repository in an OCI registry.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "nvidia/semtag").
	Repository string
}

// ParseRepository parses "oci://registry/repository" (the scheme is
// optional). Tags and digests are rejected since tags are listed per
// repository.
func ParseRepository(uri string) (*Reference, error) {
	raw := strings.TrimPrefix(uri, URIScheme)
	if raw == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI repository is required")
	}

	ref, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := ref.(reference.Tagged); ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference %q must not include a tag", uri))
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI reference %q must not include a digest", uri))
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}, nil
}

// Name returns "registry/repository".
func (r *Reference) Name() string {
	return r.Registry + "/" + r.Repository
}

// String returns the URI form, "oci://registry/repository".
func (r *Reference) String() string {
	return URIScheme + r.Name()
}

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

	"github.com/NVIDIA/semtag/pkg/oci"
)

// OCISource lists tags of a registry repository.
type OCISource struct {
	ref  *oci.Reference
	opts oci.ListOptions
}

// NewOCISource parses uri ("oci://registry/repository").
func NewOCISource(uri string, opts oci.ListOptions) (*OCISource, error) {
	ref, err := oci.ParseRepository(uri)
	if err != nil {
		return nil, err
	}
	return &OCISource{ref: ref, opts: opts}, nil
}

func (s *OCISource) Tags(ctx context.Context) ([]string, error) {
	return oci.ListTags(ctx, s.ref, s.opts)
}

func (s *OCISource) String() string {
	return s.ref.String()
}

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
	"io/fs"
	"net/http"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/serializer"
)

// TagList is the document read by FileSource.
type TagList struct {
	Tags []string `json:"tags" yaml:"tags"`
}

// FileSource reads a TagList from a local JSON/YAML file or an HTTP(S) URL.
type FileSource struct {
	Location string
	client   *http.Client
}

// NewFileSource returns a source for location. A nil client uses the
// serializer's default HTTP reader.
func NewFileSource(location string, c *http.Client) *FileSource {
	return &FileSource{Location: location, client: c}
}

func (s *FileSource) Tags(ctx context.Context) ([]string, error) {
	var opts []serializer.HttpReaderOption
	if s.client != nil {
		opts = append(opts, serializer.WithClient(s.client))
	}
	list, err := serializer.FromLocation[TagList](ctx, s.Location, opts...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "tag list not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to read tag list", err)
	}
	return list.Tags, nil
}

func (s *FileSource) String() string {
	return s.Location
}

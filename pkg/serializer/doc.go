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

// Package serializer renders semtag results as JSON, YAML or a flat table and
// reads JSON/YAML documents from files, URLs and ConfigMaps.
//
// # Writing
//
//	w := serializer.NewStdoutWriter(serializer.FormatTable)
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// NewFileWriterOrStdout picks the destination from a path: empty means
// stdout, "cm://namespace/name" applies a ConfigMap, anything else is a file.
// Call Close when the returned value implements Closer.
//
// The table format flattens nested values into dotted keys using JSON field
// names:
//
//	FIELD          VALUE
//	-----          -----
//	details.major  1
//	version        v1.2.4
//
// # Reading
//
// FromLocation decodes a document by extension:
//
//	list, err := serializer.FromLocation[TagList](ctx, "https://example.com/tags.yaml")
//
// Local paths, http(s) URLs and ConfigMap URIs are accepted; ConfigMaps are
// read from the "result.yaml" or "result.json" key written by ConfigMapWriter.
//
// # HTTP responses
//
// RespondJSON encodes before writing headers so a failed encoding never
// produces a partial 200 response.
package serializer

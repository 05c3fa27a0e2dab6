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

package server

import (
	"mime"
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is used when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// APIVersionHeader carries the requested and the served API version.
	APIVersionHeader = "X-API-Version"

	vendorMediaPrefix = "application/vnd.nvidia.semtag."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion picks the version from X-API-Version, then from an
// Accept media type such as application/vnd.nvidia.semtag.v1+json.
// Unsupported versions fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	if v := strings.ToLower(strings.TrimSpace(r.Header.Get(APIVersionHeader))); supportedAPIVersions[v] {
		return v
	}

	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || !strings.HasPrefix(mediaType, vendorMediaPrefix) {
			continue
		}
		v, _, _ := strings.Cut(strings.TrimPrefix(mediaType, vendorMediaPrefix), "+")
		if supportedAPIVersions[v] {
			return v
		}
	}
	return DefaultAPIVersion
}

// SetAPIVersionHeader tells the client which API version served the request.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(APIVersionHeader, version)
}

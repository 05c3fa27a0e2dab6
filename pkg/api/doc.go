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

// Package api implements the semtagd HTTP API.
//
// # Endpoints
//
//	GET|POST /v1/increment  next free version for a tag
//	GET|POST /v1/suggest    up to five candidate versions
//	GET|POST /v1/validate   parse a tag and report its components
//
// GET requests take query parameters, POST requests a JSON body with the
// same names:
//
//	tag                required, e.g. v1.2.3-rc.1
//	increment          major, minor, patch or prerelease (alias dev)
//	prerelease_type    pre-release identifier (unset continues the current one, dev from a release)
//	preserve_metadata  keep +build metadata on the result
//	check_conflicts    skip versions that already exist
//	existing           tags to avoid, repeated or comma-separated
//	sources            github:// tag sources to list
//	format             full, numeric or both
//
// Example:
//
//	curl -s "localhost:8080/v1/increment?tag=v1.2.3&increment=minor&existing=v1.3.0"
//	{"original":"v1.2.3","version":"v1.4.0","full":"v1.4.0","numeric":"1.4.0",...}
//
// Omitted values come from the semtag config file and SEMTAG_* environment
// variables. Sources listed in the config (SEMTAG_SOURCES) are checked on
// every request in addition to request sources. Listed tags are cached per
// source for a short TTL.
//
// # Configuration
//
//	SEMTAG_CONFIG  explicit config file path
//	PORT           listen port, overrides server.port from the config
//
// See pkg/server for the middleware, error format and probe endpoints.
package api

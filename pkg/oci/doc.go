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

// Package oci lists tags of OCI registry repositories with ORAS.
//
//	ref, err := oci.ParseRepository("oci://ghcr.io/nvidia/semtag")
//	if err != nil {
//	    return err
//	}
//	tags, err := oci.ListTags(ctx, ref, oci.ListOptions{})
//
// # Authentication
//
// Credentials come from the Docker configuration (~/.docker/config.json)
// through the ORAS credentials package, including credential helpers.
// Anonymous access is used when no configuration exists.
//
// # Errors
//
// Registry responses are mapped to structured error codes: 404 to NOT_FOUND,
// 401 and 403 to UNAUTHORIZED, 429 to RATE_LIMIT_EXCEEDED and everything else
// to SERVICE_UNAVAILABLE.
package oci

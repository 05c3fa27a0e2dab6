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

package defaults

import "time"

// Tag source timeouts and retry bounds.
const (
	// TagFetchTimeout bounds fetching tags from all configured sources,
	// including a git fetch from origin.
	TagFetchTimeout = 120 * time.Second

	// TagCacheTTL is how long the daemon reuses a source's tag list.
	TagCacheTTL = 30 * time.Second

	// TagRetryInitialInterval is the first backoff delay for a failed listing.
	TagRetryInitialInterval = 500 * time.Millisecond

	// TagRetryMaxInterval caps a single backoff delay.
	TagRetryMaxInterval = 5 * time.Second

	// TagRetryMaxAttempts bounds listing attempts per source.
	TagRetryMaxAttempts = 4
)

// Handler timeouts for HTTP request processing.
const (
	// VersionHandlerTimeout is the timeout for increment, validate and
	// suggest requests, including any tag source fetch.
	VersionHandlerTimeout = 30 * time.Second

	// SourceFetchTimeout is the per-request fetch budget inside a handler.
	// Should be less than VersionHandlerTimeout to allow error handling.
	SourceFetchTimeout = 20 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// K8sAPITimeout bounds a single ConfigMap read.
	K8sAPITimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

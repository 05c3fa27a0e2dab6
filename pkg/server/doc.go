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

// Package server provides the HTTP runtime shared by semtag services.
//
// Handlers registered with WithHandler run behind a middleware chain that
// records Prometheus metrics, negotiates the API version, assigns a request
// ID, recovers panics, applies a token bucket rate limit and logs each
// request. Request bodies are capped at one megabyte.
//
// # Endpoints
//
// Every server exposes:
//
//	GET /         service name, version, readiness and routes
//	GET /health   liveness probe
//	GET /ready    readiness probe, 503 until Run has started listening
//	GET /metrics  Prometheus metrics
//
// # Versioning
//
// Clients select an API version with the X-API-Version header or an Accept
// media type of the form application/vnd.nvidia.semtag.v1+json. The served
// version is echoed in X-API-Version.
//
// # Errors
//
// Errors are written as ErrorResponse JSON. WriteErrorFromErr maps the
// codes from pkg/errors to HTTP status codes:
//
//	INVALID_REQUEST      400
//	UNAUTHORIZED         401
//	NOT_FOUND            404
//	METHOD_NOT_ALLOWED   405
//	CONFLICT             409
//	RATE_LIMIT_EXCEEDED  429
//	SERVICE_UNAVAILABLE  503
//	TIMEOUT              504
//	anything else        500
//
// # Usage
//
//	s := server.New(
//	    server.WithName("semtagd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/increment": h.Increment,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    slog.Error("server exited", "error", err)
//	}
//
// # Environment
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//
// Run also notifies systemd (READY=1, STOPPING=1) when NOTIFY_SOCKET is set.
package server

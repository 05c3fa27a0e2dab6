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

// Package logging configures log/slog for semtag binaries.
//
// Every logger writes JSON records to stderr tagged with the module name and
// build version. Debug level adds the source location.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: resolved options, fetched tag counts, conflict retries
//   - INFO: computed versions and server lifecycle (default)
//   - WARN/WARNING: degraded tag sources, skipped tags
//   - ERROR: failures that abort a command or request
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("semtagd", version)
//	    slog.Info("listening", "port", 8080)
//	}
//
// With an explicit level, usually from --log-level or config:
//
//	logging.SetDefaultStructuredLoggerWithLevel("semtag", version, "warn")
//
// Bridging a component that wants a *log.Logger, such as http.Server:
//
//	srv.ErrorLog = logging.NewLogLogger(slog.LevelError, false)
//
// # Environment Configuration
//
// LOG_LEVEL overrides the level passed by the caller:
//
//	LOG_LEVEL=debug semtag increment --tag v1.2.3 -i prerelease
//
// Inside GitHub Actions stdout is reserved for workflow commands; logs stay on
// stderr so they never leak into step outputs.
package logging

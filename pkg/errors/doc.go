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

// Package errors defines the structured error type shared by the semtag CLI,
// the Actions adapter and the HTTP daemon.
//
// A StructuredError carries a machine readable ErrorCode next to the message
// and the wrapped cause, so callers can pick an exit status or an HTTP status
// without string matching:
//
//	if err := src.Tags(ctx); err != nil {
//	    return errors.Wrap(errors.ErrCodeUnavailable, "failed to list tags", err)
//	}
//
// CodeOf classifies any error, including the sentinel and typed errors of
// pkg/version:
//
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeInvalidRequest:
//	    // bad tag, directive or pre-release type
//	case errors.ErrCodeConflict:
//	    // no free version within the attempt bound
//	}
package errors

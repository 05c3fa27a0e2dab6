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
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/semtag/pkg/errors"
	"github.com/NVIDIA/semtag/pkg/serializer"
)

// Error codes as constants
const (
	ErrCodeRateLimitExceeded  = string(apperrors.ErrCodeRateLimitExceeded)
	ErrCodeInternalError      = string(apperrors.ErrCodeInternal)
	ErrCodeServiceUnavailable = string(apperrors.ErrCodeUnavailable)
	ErrCodeInvalidRequest     = string(apperrors.ErrCodeInvalidRequest)
	ErrCodeMethodNotAllowed   = string(apperrors.ErrCodeMethodNotAllowed)
	ErrCodeNotFound           = string(apperrors.ErrCodeNotFound)
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr classifies err with apperrors.CodeOf and writes the
// matching status. StructuredError context becomes the details.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	status, retryable := statusFor(code)

	var details map[string]any
	var se *apperrors.StructuredError
	if errors.As(err, &se) && len(se.Context) > 0 {
		details = se.Context
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	WriteError(w, r, status, string(code), message, retryable, details)
}

func statusFor(code apperrors.ErrorCode) (status int, retryable bool) {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest, false
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, false
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, false
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}

// MethodNotAllowed writes a 405 with the Allow header set.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"method "+r.Method+" not allowed", false, map[string]any{"allowed": allowed})
}

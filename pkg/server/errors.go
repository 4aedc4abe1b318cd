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
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/serializer"
)

// Error codes that only occur at the HTTP layer.
const (
	ErrCodeRateLimitExceeded apperrors.ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  apperrors.ErrorCode = "METHOD_NOT_ALLOWED"
)

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a status code by its error code and writes it.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.CodeOf(err)
	message := err.Error()
	var details map[string]any

	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		message = se.Message
		details = maps.Clone(se.Context)
		if se.Cause != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["cause"] = se.Cause.Error()
		}
	}

	status, retryable := statusFor(code)
	WriteError(w, r, status, code, message, retryable, details)
}

func statusFor(code apperrors.ErrorCode) (int, bool) {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest, false
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}

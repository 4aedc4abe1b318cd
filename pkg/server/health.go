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
	"net/http"
	"time"

	"github.com/nikstur/uapi-version/pkg/defaults"
	"github.com/nikstur/uapi-version/pkg/serializer"
	"github.com/nikstur/uapi-version/pkg/version"
	"golang.org/x/time/rate"
)

// HealthResponse is returned by /health and /ready.
type HealthResponse struct {
	Status     string    `json:"status" yaml:"status"`
	Service    string    `json:"service" yaml:"service"`
	Version    string    `json:"version" yaml:"version"`
	APIVersion string    `json:"apiVersion" yaml:"apiVersion"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Reason     string    `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Set on /ready once the server accepts comparisons.
	Limits     *Limits `json:"limits,omitempty" yaml:"limits,omitempty"`
	Precedence string  `json:"precedence,omitempty" yaml:"precedence,omitempty"`
}

// Limits are the request bounds enforced by the comparison endpoints.
type Limits struct {
	MaxVersions  int     `json:"maxVersions" yaml:"maxVersions"`
	MaxBodyBytes int64   `json:"maxBodyBytes" yaml:"maxBodyBytes"`
	RateLimit    float64 `json:"rateLimit" yaml:"rateLimit"`
	RateBurst    int     `json:"rateBurst" yaml:"rateBurst"`
}

func (s *Server) healthResponse(status string) HealthResponse {
	return HealthResponse{
		Status:     status,
		Service:    s.config.Name,
		Version:    s.config.Version,
		APIVersion: DefaultAPIVersion,
		Timestamp:  time.Now().UTC(),
	}
}

// limits reports a zero rate limit when limiting is disabled.
func (s *Server) limits() *Limits {
	l := &Limits{
		MaxVersions:  s.config.MaxVersions,
		MaxBodyBytes: defaults.MaxInputBytes,
		RateBurst:    s.config.RateLimitBurst,
	}
	if s.config.RateLimit != rate.Inf {
		l.RateLimit = float64(s.config.RateLimit)
	}
	return l
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.healthResponse("healthy"))
}

// handleReady handles GET /ready
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	if !s.isReady() {
		resp := s.healthResponse("not_ready")
		resp.Reason = "service is starting or shutting down"
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := s.healthResponse("ready")
	resp.Limits = s.limits()
	resp.Precedence = version.Precedence
	serializer.RespondJSON(w, http.StatusOK, resp)
}

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

// Package server exposes version comparison over HTTP.
//
// # Endpoints
//
//	GET  /v1/compare?a=1.0~rc1&b=1.0   order two versions
//	POST /v1/sort                      sort a list of versions
//	POST /v1/latest                    pick the newest (or oldest) version
//	GET  /health                       liveness
//	GET  /ready                        readiness, request limits and precedence
//	GET  /metrics                      Prometheus metrics
//
// The sort and latest endpoints accept a JSON or YAML body of the form
//
//	{"versions": ["1.0", "1.0~rc1", "1.0^git3"], "reverse": false, "unique": false}
//
// or, with Content-Type text/plain, one version per line. The options
// reverse, unique and oldest may also be given as query parameters, which
// take precedence over the body.
//
// # Middleware
//
// API endpoints pass through, outermost first: Prometheus instrumentation,
// API version negotiation (Accept: application/vnd.uapi-version.v1+json),
// request ID propagation via X-Request-Id, panic recovery, token bucket
// rate limiting and debug request logging. Probes and /metrics skip the
// chain.
//
// # Errors
//
// Failed requests return an ErrorResponse whose code is one of the
// pkg/errors codes or an HTTP specific code such as RATE_LIMIT_EXCEEDED.
//
// # Usage
//
//	s := server.New(server.WithVersion("1.2.0"))
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is canceled and then shuts down gracefully. Under
// systemd with Type=notify, READY=1 is sent once the listener is up and
// STOPPING=1 when shutdown begins.
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Everything else defaults from pkg/defaults.
package server

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

// HTTP client timeouts for fetching remote version lists.
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
)

// HTTP request pacing shared by concurrent remote reads.
const (
	// HTTPRateLimit is the number of requests per second.
	HTTPRateLimit = 10

	// HTTPRateBurst is the number of requests allowed at once.
	HTTPRateBurst = 5
)

// Registry limits.
const (
	// RegistryTimeout bounds a single tag listing or tag resolution.
	RegistryTimeout = 1 * time.Minute
)

// Server timeouts for the HTTP API.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out writes.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum time to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the time allowed for in-flight requests on shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Server limits.
const (
	// ServerMaxVersions caps the number of versions in one request.
	ServerMaxVersions = 10000

	// ServerRateLimit is the number of API requests per second.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the number of API requests allowed at once.
	ServerRateLimitBurst = 200
)

// CLI limits for command-line operations.
const (
	// CLIReadTimeout bounds loading all inputs of a single command.
	CLIReadTimeout = 2 * time.Minute

	// CLIMaxConcurrentReads is the number of input sources read in parallel.
	CLIMaxConcurrentReads = 8
)

// Input limits.
const (
	// MaxInputBytes caps the size of a single version list.
	MaxInputBytes = 16 << 20
)

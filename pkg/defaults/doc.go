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

// Package defaults provides centralized configuration constants for the
// uapi-version command-line tool and HTTP API.
//
// This package defines timeout values and input limits used by the I/O
// layers. The comparator in pkg/version has no tunables.
//
// # Categories
//
//   - HTTP client timeouts and pacing: For fetching remote version lists
//   - Registry timeouts: For listing repository tags
//   - Server timeouts and limits: For the HTTP API started by "serve"
//   - CLI limits: For reading inputs of a single command
//   - Input limits: For bounding the size of a version list
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/nikstur/uapi-version/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CLIReadTimeout)
//	defer cancel()
package defaults

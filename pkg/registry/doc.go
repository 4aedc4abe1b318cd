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

// Package registry lists the tags of a repository in an OCI distribution
// registry so they can be ordered by version.
//
// # Usage
//
//	tags, err := registry.ListTags(ctx, registry.ListOptions{
//	    Repository: "ghcr.io/org/app",
//	})
//	if err != nil {
//	    return err
//	}
//	images, invalid, err := imagetag.FromTags("ghcr.io/org/app", tags)
//
// Resolve pins a tag to the digest of its manifest with a single HEAD
// request. Open a Client to resolve several tags over one connection and
// token cache:
//
//	client, err := registry.Open(opts)
//	if err != nil {
//	    return err
//	}
//	desc, err := client.Resolve(ctx, "1.10")
//	fmt.Println(desc.Digest)
//
// # Configuration
//
// ListOptions supports:
//   - PlainHTTP: Use HTTP instead of HTTPS (for local development registries)
//   - InsecureTLS: Skip TLS certificate verification
//
// # Authentication
//
// Credentials are loaded from the standard Docker configuration
// (~/.docker/config.json) using the ORAS credentials package. Anonymous
// access is used when no configuration exists.
//
// Docker Hub repositories are queried through registry-1.docker.io.
package registry

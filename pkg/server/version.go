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
	"strings"
)

const (
	// DefaultAPIVersion is the API version used when none is negotiated.
	DefaultAPIVersion = "v1"

	// vendorMediaTypePrefix selects an API version through the Accept header,
	// e.g. application/vnd.uapi-version.v1+json.
	vendorMediaTypePrefix = "application/vnd.uapi-version."
)

var validAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion returns the first supported version named by a vendor
// media type in the Accept header, or DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	for _, mt := range strings.Split(accept, ",") {
		mt = strings.TrimSpace(mt)
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		rest, ok := strings.CutPrefix(mt, vendorMediaTypePrefix)
		if !ok {
			continue
		}
		v, _, _ := strings.Cut(rest, "+")
		if validAPIVersions[v] {
			return v
		}
	}

	return DefaultAPIVersion
}

// SetAPIVersionHeader reports the negotiated API version to the client.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}

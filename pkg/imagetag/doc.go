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

// Package imagetag orders container image references by the version in
// their tag.
//
// References are parsed with github.com/distribution/reference, so short
// names are normalized the way Docker does it ("nginx:1.25" becomes
// "docker.io/library/nginx:1.25"). Tags are compared with the UAPI version
// ordering from the version package after removing a leading "v" that is
// followed by a digit:
//
//	images, err := imagetag.ParseAll([]string{"app:v1.10", "app:v1.9", "app:1.10.1"})
//	if err != nil {
//	    return err
//	}
//	imagetag.Sort(images) // app:v1.9, app:v1.10, app:1.10.1
//
// Registry tags cannot contain '~' or '^', so pre-release and post-release
// markers do not occur in tags. References without a tag are rejected; a
// digest alone carries no version.
package imagetag

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

package imagetag

import (
	"cmp"
	"slices"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/version"
)

// Image is a tagged image reference.
type Image struct {
	ref reference.NamedTagged
}

// Parse parses s as a tagged image reference. Familiar names are normalized.
func Parse(s string) (Image, error) {
	named, err := reference.ParseNormalizedNamed(strings.TrimSpace(s))
	if err != nil {
		return Image{}, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid image reference", err, map[string]any{"reference": s})
	}

	tagged, ok := named.(reference.NamedTagged)
	if !ok {
		return Image{}, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"image reference has no tag", map[string]any{"reference": s})
	}

	return Image{ref: tagged}, nil
}

// ParseAll parses every reference in refs and stops at the first error.
func ParseAll(refs []string) ([]Image, error) {
	images := make([]Image, 0, len(refs))
	for _, s := range refs {
		img, err := Parse(s)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// FromTags builds images for every tag of one repository, e.g. the result
// of listing tags from a registry. Invalid tags are returned separately.
func FromTags(repository string, tags []string) ([]Image, []string, error) {
	named, err := reference.ParseNormalizedNamed(repository)
	if err != nil {
		return nil, nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid repository", err, map[string]any{"repository": repository})
	}
	named = reference.TrimNamed(named)

	images := make([]Image, 0, len(tags))
	var invalid []string
	for _, tag := range tags {
		tagged, err := reference.WithTag(named, tag)
		if err != nil {
			invalid = append(invalid, tag)
			continue
		}
		images = append(images, Image{ref: tagged})
	}
	return images, invalid, nil
}

// Name returns the fully qualified repository name, e.g. "docker.io/library/nginx".
func (i Image) Name() string {
	if i.ref == nil {
		return ""
	}
	return i.ref.Name()
}

// Tag returns the tag exactly as written.
func (i Image) Tag() string {
	if i.ref == nil {
		return ""
	}
	return i.ref.Tag()
}

// Version returns the tag as a version, without a leading "v" before a digit.
func (i Image) Version() version.Version {
	return version.New(trimV(i.Tag()))
}

// String returns the reference in its familiar form, e.g. "nginx:1.25".
func (i Image) String() string {
	if i.ref == nil {
		return ""
	}
	return reference.FamiliarString(i.ref)
}

// MarshalText implements encoding.TextMarshaler.
func (i Image) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func trimV(tag string) string {
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') && tag[1] >= '0' && tag[1] <= '9' {
		return tag[1:]
	}
	return tag
}

// Compare orders images by tag version, then by repository name, then by
// the literal tag so that the order is total.
func Compare(a, b Image) int {
	if c := a.Version().Compare(b.Version()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag(), b.Tag())
}

// Sort orders images oldest first.
func Sort(images []Image) {
	slices.SortStableFunc(images, Compare)
}

// Latest returns the image with the newest tag. When several images carry
// equal versions the first one wins. It returns false for an empty slice.
func Latest(images []Image) (Image, bool) {
	if len(images) == 0 {
		return Image{}, false
	}
	best := images[0]
	for _, img := range images[1:] {
		if img.Version().IsNewer(best.Version()) {
			best = img
		}
	}
	return best, true
}

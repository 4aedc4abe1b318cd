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

package version

// Version is a version string ordered according to the UAPI Version Format.
// Any string, including the empty string, is a valid Version.
//
// Two kinds of equality apply to a Version. The == operator compares the
// underlying strings byte for byte. Equals and Compare use the version
// ordering, under which different strings can be equal: "1.0" and "1.00"
// are Equals but not ==, and so are "1.0" and "1.0_". Use Equals whenever
// the question is "is this the same version".
type Version struct {
	raw string
}

// New creates a Version from s. It never fails and performs no validation.
func New(s string) Version {
	return Version{raw: s}
}

// String returns the version string exactly as it was given to New.
func (v Version) String() string {
	return v.raw
}

// Compare orders a and b. It is equivalent to a.Cmp(b).
func Compare(a, b Version) Ordering {
	return Strverscmp(a.raw, b.raw)
}

// Cmp orders v relative to other.
func (v Version) Cmp(other Version) Ordering {
	return Strverscmp(v.raw, other.raw)
}

// Compare returns -1 if v is older than other, 0 if they are equal versions
// and +1 if v is newer. The signature matches slices.SortFunc:
//
//	slices.SortFunc(vs, version.Version.Compare)
func (v Version) Compare(other Version) int {
	return int(v.Cmp(other))
}

// Equals returns true if v and other are the same version. See the type
// documentation for how this differs from ==.
func (v Version) Equals(other Version) bool {
	return v.Cmp(other) == Equal
}

// Less returns true if v is older than other.
func (v Version) Less(other Version) bool {
	return v.Cmp(other) == Less
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Cmp(other) == Greater
}

// EqualsOrNewer returns true if v is the same version as other or newer.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Cmp(other) != Less
}

// MarshalText implements encoding.TextMarshaler. Versions encode as plain
// strings in JSON and YAML.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	v.raw = string(text)
	return nil
}

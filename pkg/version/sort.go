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

import "slices"

// Versions implements sort.Interface, oldest first.
type Versions []Version

func (vs Versions) Len() int           { return len(vs) }
func (vs Versions) Swap(i, j int)      { vs[i], vs[j] = vs[j], vs[i] }
func (vs Versions) Less(i, j int) bool { return vs[i].Less(vs[j]) }

// Sort sorts vs in place from oldest to newest. Versions that compare
// equal keep their relative order.
func Sort(vs []Version) {
	slices.SortStableFunc(vs, Version.Compare)
}

// SortStrings sorts version strings in place from oldest to newest.
func SortStrings(ss []string) {
	slices.SortStableFunc(ss, func(a, b string) int {
		return int(Strverscmp(a, b))
	})
}

// IsSorted reports whether vs is sorted from oldest to newest.
func IsSorted(vs []Version) bool {
	return slices.IsSortedFunc(vs, Version.Compare)
}

// Max returns the newest version in vs. When several versions are equally
// new the first one wins. It returns false for an empty slice.
func Max(vs []Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if v.IsNewer(best) {
			best = v
		}
	}
	return best, true
}

// Min returns the oldest version in vs. When several versions are equally
// old the first one wins. It returns false for an empty slice.
func Min(vs []Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	best := vs[0]
	for _, v := range vs[1:] {
		if v.Less(best) {
			best = v
		}
	}
	return best, true
}

// Compact removes consecutive versions that are equal under the version
// ordering, keeping the first of each run. Sort vs first to drop all
// duplicates.
func Compact(vs []Version) []Version {
	return slices.CompactFunc(vs, Version.Equals)
}

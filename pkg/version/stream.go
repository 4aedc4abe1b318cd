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

import "iter"

// Stream yields the segments of a version string from left to right.
// The zero value is an exhausted stream. Streams are plain values: copying
// one forks it, and a new stream over the same string always yields the
// same segments.
type Stream struct {
	src string
	pos int
}

// NewStream returns a stream positioned at the start of s.
func NewStream(s string) Stream {
	return Stream{src: s}
}

// Next returns the next segment and advances past it.
// It returns false once the string is exhausted.
func (st *Stream) Next() (Segment, bool) {
	if st.pos >= len(st.src) {
		return Segment{}, false
	}
	kind, n := Classify(st.src[st.pos:])
	seg := Segment{Kind: kind, Offset: st.pos, Len: n}
	st.pos += n
	return seg, true
}

// nextSignificant is Next without Other segments.
func (st *Stream) nextSignificant() (Segment, bool) {
	for {
		seg, ok := st.Next()
		if !ok || seg.Kind != Other {
			return seg, ok
		}
	}
}

// All returns an iterator over the remaining segments of the stream.
// The receiver is not advanced.
func (st Stream) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for {
			seg, ok := st.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

// Segments returns an iterator over all segments of s.
func Segments(s string) iter.Seq[Segment] {
	return NewStream(s).All()
}

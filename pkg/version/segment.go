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

// Kind classifies a segment of a version string.
type Kind uint8

const (
	// Other is any byte that is not a letter, a digit or one of the
	// separators below. Each such byte is its own segment.
	Other Kind = iota
	// Tilde is the pre-release marker '~'.
	Tilde
	// Hyphen is the '-' separator between version and release.
	Hyphen
	// Caret is the post-release marker '^'.
	Caret
	// Dot is the '.' point release separator.
	Dot
	// Letters is a maximal run of ASCII letters.
	Letters
	// Digits is a maximal run of ASCII digits.
	Digits
)

// endRank is the rank of an exhausted stream. It sits between Tilde and
// Hyphen: a pre-release is older than the bare version, anything else
// appended to it is newer.
const endRank = 2

var kindNames = [...]string{
	Other:   "other",
	Tilde:   "tilde",
	Hyphen:  "hyphen",
	Caret:   "caret",
	Dot:     "dot",
	Letters: "letters",
	Digits:  "digits",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// rank orders kinds relative to each other and to the end of a stream when
// two segments of different kinds meet at the same position. Other has no
// rank because the comparator skips it.
func (k Kind) rank() int {
	switch k {
	case Tilde:
		return 1
	case Hyphen:
		return 3
	case Caret:
		return 4
	case Dot:
		return 5
	case Letters:
		return 6
	case Digits:
		return 7
	default:
		return 0
	}
}

// Segment is a view into a version string. It does not own the bytes it
// refers to; Text returns them given the source string.
type Segment struct {
	Kind   Kind
	Offset int
	Len    int
}

// Text returns the bytes of s covered by the segment.
func (s Segment) Text(src string) string {
	return src[s.Offset : s.Offset+s.Len]
}

// Classify returns the kind and byte length of the segment that starts at
// the beginning of s. It reports a zero length for an empty string.
func Classify(s string) (Kind, int) {
	if s == "" {
		return Other, 0
	}

	c := s[0]
	switch {
	case c == '~':
		return Tilde, 1
	case c == '^':
		return Caret, 1
	case c == '-':
		return Hyphen, 1
	case c == '.':
		return Dot, 1
	case isDigit(c):
		return Digits, runLen(s, isDigit)
	case isLetter(c):
		return Letters, runLen(s, isLetter)
	default:
		return Other, 1
	}
}

func runLen(s string, match func(byte) bool) int {
	n := 1
	for n < len(s) && match(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

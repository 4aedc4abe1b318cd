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

import "strings"

// Ordering is the result of comparing two versions.
// Its values match the -1, 0, +1 convention of cmp.Compare.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns "<", "=" or ">".
func (o Ordering) String() string {
	switch {
	case o < 0:
		return "<"
	case o > 0:
		return ">"
	default:
		return "="
	}
}

// Reverse swaps Less and Greater.
func (o Ordering) Reverse() Ordering {
	return -o
}

// Precedence is the order of segment kinds that differ at the same position.
const Precedence = "'~' < end of string < '-' < '^' < '.' < letters < digits"

// Strverscmp compares two version strings.
//
// Both strings are split into segments and compared pairwise from the left.
// Digit runs compare numerically with leading zeros ignored, letter runs
// compare byte-wise, and the separators '~', '-', '^' and '.' order as
//
//	'~' < end of string < '-' < '^' < '.' < letters < digits
//
// when they meet a segment of a different kind. Bytes that are none of the
// above are ignored. The first segment pair that differs decides the result.
func Strverscmp(a, b string) Ordering {
	left, right := NewStream(a), NewStream(b)

	for {
		sa, okA := left.nextSignificant()
		sb, okB := right.nextSignificant()

		switch {
		case !okA && !okB:
			return Equal
		case !okA:
			return compareRank(endRank, sb.Kind.rank())
		case !okB:
			return compareRank(sa.Kind.rank(), endRank)
		}

		if sa.Kind != sb.Kind {
			return compareRank(sa.Kind.rank(), sb.Kind.rank())
		}

		var o Ordering
		switch sa.Kind {
		case Digits:
			o = compareDigits(sa.Text(a), sb.Text(b))
		case Letters:
			o = Ordering(strings.Compare(sa.Text(a), sb.Text(b)))
		}
		if o != Equal {
			return o
		}
	}
}

func compareRank(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// compareDigits compares two runs of ASCII digits by numeric value without
// converting them, so runs of any length are supported.
func compareDigits(a, b string) Ordering {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")

	if len(a) != len(b) {
		return compareRank(len(a), len(b))
	}
	return Ordering(strings.Compare(a, b))
}

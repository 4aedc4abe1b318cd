// Package version compares version strings according to the UAPI Version
// Format.
//
// # Overview
//
// The ordering is the one implemented by systemd's strverscmp_improved and
// shared by the major Linux package managers. Any string is a valid version;
// comparison never fails and never allocates.
//
// A version string is split into segments:
//
//   - runs of ASCII digits, compared numerically with leading zeros ignored
//   - runs of ASCII letters, compared byte-wise (a strict prefix is older)
//   - the separators '~', '-', '^' and '.', one byte each
//   - any other byte, which is ignored
//
// Segments are compared pairwise from the left and the first pair that
// differs decides. When segments of different kinds meet, or one string ends
// early, they rank as
//
//	'~' < end of string < '-' < '^' < '.' < letters < digits
//
// which gives the usual meaning to the markers:
//
//   - "1.0~rc1" < "1.0"      pre-release before release
//   - "1.0" < "1.0^git1"     post-release after release
//   - "1.0" < "1.0.1"        more components is newer
//   - "1.0" == "1.00"        leading zeros carry no weight
//
// # Usage
//
// Compare two strings directly:
//
//	if version.Strverscmp("1.0.0~rc1", "1.0.0") == version.Less {
//	    fmt.Println("release candidate is older")
//	}
//
// Wrap strings in Version values to sort them:
//
//	vs := []version.Version{version.New("5.2"), version.New("abc-5"), version.New("1.0.0~rc1")}
//	version.Sort(vs) // abc-5, 1.0.0~rc1, 5.2
//
// Version.Compare matches the signature expected by the slices package:
//
//	slices.SortFunc(vs, version.Version.Compare)
//
// # Equality
//
// The == operator on Version compares strings byte for byte. Version.Equals
// uses the version ordering, under which "01" and "1" are the same version.
//
// # Segments
//
// The segmentation used by the comparator is exported for callers that need
// it, e.g. for highlighting the part of two versions that differs:
//
//	for seg := range version.Segments("1.2~rc3") {
//	    fmt.Println(seg.Kind, seg.Text("1.2~rc3"))
//	}
//
// # Concurrency
//
// All functions are pure and safe for concurrent use.
package version

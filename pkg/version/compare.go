package version

import (
	"cmp"
	"strings"
)

// Compare returns -1, 0 or +1 depending on whether a orders before, equal to
// or after b.
//
// Versions are compared by major, minor and patch. On a numeric tie a final
// release (no modifier) ranks above any pre-release; two pre-releases rank by
// kind and then by numeric suffix. Anything still tied falls back to a
// lexicographic comparison of the raw text, so the order is total.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Patch, b.Patch); c != 0 {
		return c
	}
	if c := compareModifiers(a.Modifier, b.Modifier); c != 0 {
		return c
	}
	return strings.Compare(a.Raw, b.Raw)
}

func compareModifiers(a, b *Modifier) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.Number, b.Number)
}

// Less reports whether a orders strictly before b.
func Less(a, b Version) bool { return Compare(a, b) < 0 }

// CompareText orders two raw version strings. Parsable text orders above
// text that does not parse; two unparsable strings compare lexicographically.
// This lets hand-edited entries with free-form version text sit at the end of
// a descending list instead of breaking the sort.
func CompareText(a, b string) int {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		return Compare(va, vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

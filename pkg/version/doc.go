// Package version parses plugin version strings into a totally ordered value.
//
// # Grammar
//
// Accepted text is <major>.<minor>[.<patch>][<sep><qualifier>] with <sep>
// being "." or "-":
//
//	4.0.1           final release
//	1.2             patch defaults to 0
//	3.0.0.M2        milestone 2
//	5.0.0-RC1       release candidate 1
//	4.0.2-SNAPSHOT  snapshot
//
// Qualifiers other than SNAPSHOT, BUILD-SNAPSHOT, M<n>, RC<n>, ALPHA<n> and
// BETA<n> are kept in the raw text but carry no ordering weight, so
// "1.0.0.RELEASE" orders like "1.0.0" and only the raw-text fallback
// separates the two.
//
// # Ordering
//
// For equal numeric parts:
//
//	final > RC<n> > M<n> > BETA<n> > ALPHA<n> > SNAPSHOT
//
// and within a kind the higher suffix wins. Use [Compare] or [Less] with
// slices.SortFunc; [CompareText] additionally handles text that does not
// parse.
package version

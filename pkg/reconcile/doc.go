// Package reconcile merges a repository's published versions into a plugin
// record.
//
// For a record with a maven-repo, [Reconciler.Sync]:
//
//  1. fetches the release versions listed by the repository
//  2. skips every version already listed under the record's own source
//  3. inspects each remaining version for a release date and compatibility
//     range, appending an entry even when neither is found
//  4. re-sorts the entire list newest first
//
// [Reconciler.Reconcile] then converts dates stored as text back into typed
// values and saves the record. Saving happens on every run so formatting
// converges; version content only changes when the repository has
// something new.
//
// Entries are append-only. An existing entry keeps its date and range even
// if the repository would now report different values, and versions listed
// under an overriding coords or maven-repo do not count as present for the
// default source.
package reconcile

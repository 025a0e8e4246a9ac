// Package index builds the aggregate plugin index from a record tree.
//
// Records live at <root>/<group path>/<artifactId>.yml. [Builder.Build]
// reconciles each one in lexical path order and [Builder.Write] serializes
// the collected snapshots as a flat JSON array. [Builder.ReconcileFile]
// handles a single record and never writes the index.
package index

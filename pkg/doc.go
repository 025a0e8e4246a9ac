// Package pkg provides the libraries behind portalsync, which keeps the
// plugin catalog in step with the Maven repositories plugins publish to.
//
// # Overview
//
//  1. [record] - Plugin records, their YAML codec and the on-disk store
//  2. [version] - Version parsing and release ordering
//  3. [integrations/maven] - maven-metadata.xml and artifact inspection
//  4. [reconcile] - Merging newly published versions into a record
//  5. [index] - Walking the catalog and writing the aggregate index
//
// Supporting packages: [config], [httputil], [errors], [observability]
// and [buildinfo].
//
// # Data Flow
//
//	plugins/<group path>/<artifactId>.yml
//	         ↓
//	    [record.Store] (load + validate)
//	         ↓
//	    [reconcile] ← [integrations/maven] ← repository
//	         ↓
//	    [record.Store] (atomic save)
//	         ↓
//	    [index] → build/plugins.json
package pkg

// Package record defines the plugin catalog schema and its on-disk store.
//
// Each plugin lives in its own YAML file under
// <root>/<group path>/<artifactId>.yml:
//
//	name: Cache
//	desc: Caching support
//	coords: org.grails.plugins:cache
//	maven-repo: https://repo.grails.org/grails/plugins
//	licenses: [Apache-2.0]
//	versions:
//	  - version: 5.0.1
//	    date: 2021-06-15T10:12:00Z
//	    grailsVersion: 5.0.0 > *
//
// [Store] loads and validates records and saves them back atomically.
// Saving always writes the canonical encoding produced by [Encode], which is
// what makes repeated runs converge on identical files.
package record

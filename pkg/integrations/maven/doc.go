// Package maven reads plugin releases from Maven-layout repositories.
//
// # Overview
//
// Two kinds of resources are read for a coordinate pair:
//
//	<base>/<group path>/<artifactId>/maven-metadata.xml
//	<base>/<group path>/<artifactId>/<v>/<artifactId>-<v>.jar
//
// The metadata document lists published versions ([Client.FetchVersions]).
// Artifacts provide a release date from their Last-Modified header
// ([Client.ReleaseDate]) and a compatibility range from the embedded plugin
// descriptor ([Client.Compatibility]).
//
// # Artifact Candidates
//
// Older plugins were published under other names, so each lookup walks the
// candidates from [ArtifactURLs] strictly in order and stops at the first
// success:
//
//  1. <artifactId>-<v>.jar
//  2. <artifactId>-<v>-plain.jar
//  3. <artifactId>-<v>.zip
//
// The order is never adjusted, even when several candidates exist.
//
// # Descriptors
//
// Inside the archive, META-INF/grails-plugin.xml is read if present,
// otherwise plugin.xml. The compatibility range comes from the root
// element's grailsVersion attribute, or a nested <grailsVersion> element
// when the attribute is absent.
//
// # Failure Handling
//
// Nothing in this package returns an error for remote problems. A missing
// metadata document means no candidates; a version whose artifacts cannot
// be read simply has no date or range. Warnings are logged so the next run,
// which retries everything, can be compared.
package maven

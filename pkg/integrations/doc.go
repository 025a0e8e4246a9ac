// Package integrations provides HTTP clients for remote package repositories.
//
// # Overview
//
// Each repository layout has its own subpackage:
//
//   - [maven]: Maven-layout repositories (metadata documents, artifacts)
//
// # Shared Infrastructure
//
// The [Client] type wraps [httputil.Client] with the operations repository
// clients need: XML documents, HEAD probes and bounded downloads. Outcomes
// are normalized onto a small set of sentinels so callers can branch with
// errors.Is:
//
//   - [ErrNotFound]: the resource does not exist (404)
//   - [ErrNetwork]: transport failure, timeout, open breaker or other non-2xx status
//   - [ErrDecode]: the body could not be parsed
//   - [ErrTooLarge]: the download exceeded the size limit
//
// [maven]: github.com/matzehuels/portalsync/pkg/integrations/maven
// [httputil.Client]: github.com/matzehuels/portalsync/pkg/httputil.Client
package integrations

// Package httputil provides the HTTP primitive used by the repository clients.
//
// # Overview
//
// Every remote call goes through [Client.Do]:
//
//	c := httputil.NewClient(httputil.DefaultConfig())
//	err := c.Do(ctx, httputil.Get(url), func(resp *http.Response) error {
//	    return xml.NewDecoder(resp.Body).Decode(&doc)
//	})
//
// The response body is always closed before Do returns, regardless of how
// the handler exits. Non-2xx responses never reach the handler; they are
// returned as a [*StatusError], and [IsNotFound] distinguishes the common
// "resource missing" case.
//
// # Timeouts
//
// [Config] carries two bounds:
//
//   - ConnectTimeout: dialing and the TLS handshake
//   - ReadTimeout: waiting for response headers and each individual read
//
// The read bound is per read rather than per request, so large archive
// downloads succeed as long as bytes keep arriving.
//
// # Circuit Breaking
//
// Each host gets its own breaker. After BreakerThreshold consecutive
// transport failures or 5xx responses, requests to that host fail
// immediately without touching the network, which keeps a dead repository
// from costing a full timeout per request. 4xx responses count as successes:
// a missing artifact says nothing about the host's health.
//
// There are no retries. A failed request is simply tried again on the next
// run.
package httputil

// Package observability provides hooks for metrics and progress reporting.
//
// Libraries emit events through package-level accessors; the application
// registers implementations at startup. Nothing is recorded until a hook is
// registered, so library code never depends on a particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSyncHooks(&summary{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sync().OnPluginStart(ctx, coords)
//	// ... reconcile ...
//	observability.Sync().OnPluginComplete(ctx, coords, added, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sync Hooks
// =============================================================================

// SyncHooks receives events from catalog reconciliation.
type SyncHooks interface {
	// OnPluginStart fires before a record is reconciled.
	OnPluginStart(ctx context.Context, coords string)

	// OnPluginComplete fires after a record is reconciled and saved.
	OnPluginComplete(ctx context.Context, coords string, added int, duration time.Duration, err error)

	// OnVersionAdded fires for each newly listed version.
	OnVersionAdded(ctx context.Context, coords, version string, bare bool)

	// OnRecordSkipped fires when a file is excluded from the index.
	OnRecordSkipped(ctx context.Context, path string, reason error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSyncHooks is a no-op implementation of SyncHooks.
type NoopSyncHooks struct{}

func (NoopSyncHooks) OnPluginStart(context.Context, string)                               {}
func (NoopSyncHooks) OnPluginComplete(context.Context, string, int, time.Duration, error) {}
func (NoopSyncHooks) OnVersionAdded(context.Context, string, string, bool)                {}
func (NoopSyncHooks) OnRecordSkipped(context.Context, string, error)                      {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	syncHooks SyncHooks = NoopSyncHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetSyncHooks registers custom sync hooks.
// This should be called once at application startup before any reconciliation.
func SetSyncHooks(h SyncHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		syncHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Sync returns the registered sync hooks.
func Sync() SyncHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return syncHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	syncHooks = NoopSyncHooks{}
	httpHooks = NoopHTTPHooks{}
}

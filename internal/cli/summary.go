package cli

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/portalsync/pkg/observability"
)

// summary counts reconcile events for the closing stats line.
type summary struct {
	observability.NoopSyncHooks

	mu      sync.Mutex
	plugins int
	failed  int
	added   int
	bare    int
	skipped int
}

func (s *summary) OnPluginComplete(_ context.Context, _ string, added int, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plugins++
	s.added += added
	if err != nil {
		s.failed++
	}
}

func (s *summary) OnVersionAdded(_ context.Context, _, _ string, bare bool) {
	if !bare {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bare++
}

func (s *summary) OnRecordSkipped(context.Context, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped++
}

func (s *summary) stats() []stat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []stat{
		{n: s.plugins, label: "records"},
		{n: s.added, label: "versions added"},
		{n: s.bare, label: "without metadata"},
		{n: s.skipped, label: "skipped"},
		{n: s.failed, label: "failed", failure: true},
	}
}

func (s *summary) print() { printStats(s.stats()) }

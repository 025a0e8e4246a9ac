package httputil

import (
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// breakerSet holds one circuit breaker per remote host. A nil set (threshold
// zero) lets every request through.
type breakerSet struct {
	threshold int64

	mu       sync.Mutex
	breakers map[string]*circuit.Breaker
}

func newBreakerSet(threshold int) *breakerSet {
	if threshold <= 0 {
		return nil
	}
	return &breakerSet{
		threshold: int64(threshold),
		breakers:  make(map[string]*circuit.Breaker),
	}
}

// hostBreaker is the view of a breaker used by [Client.Do]. The zero value
// is always ready and ignores outcomes.
type hostBreaker struct {
	cb *circuit.Breaker
}

func (s *breakerSet) get(host string) hostBreaker {
	if s == nil {
		return hostBreaker{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[host]; ok {
		return hostBreaker{cb: cb}
	}

	// Once tripped, the breaker lets a probe through after 30s, backing off
	// to at most 5 minutes between probes.
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	cb := circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ConsecutiveTripFunc(s.threshold),
	})
	s.breakers[host] = cb
	return hostBreaker{cb: cb}
}

// tripped returns the hosts whose breaker is currently open.
func (s *breakerSet) tripped() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var hosts []string
	for host, cb := range s.breakers {
		if cb.Tripped() {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

func (b hostBreaker) ready() bool { return b.cb == nil || b.cb.Ready() }

func (b hostBreaker) fail() {
	if b.cb != nil {
		b.cb.Fail()
	}
}

func (b hostBreaker) success() {
	if b.cb != nil {
		b.cb.Success()
	}
}

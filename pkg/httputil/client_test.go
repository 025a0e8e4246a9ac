package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/portalsync/pkg/errors"
)

func TestClientDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("X-Agent", r.UserAgent())
			w.Write([]byte("hello"))
		case "/missing":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	c := NewClient(Config{UserAgent: "portalsync-test"})
	ctx := context.Background()

	var body, agent string
	err := c.Do(ctx, Get(server.URL+"/ok"), func(resp *http.Response) error {
		data, err := io.ReadAll(resp.Body)
		body = string(data)
		agent = resp.Header.Get("X-Agent")
		return err
	})
	if err != nil {
		t.Fatalf("Do(/ok) failed: %v", err)
	}
	if body != "hello" {
		t.Errorf("body = %q, want hello", body)
	}
	if agent != "portalsync-test" {
		t.Errorf("User-Agent = %q, want portalsync-test", agent)
	}

	called := false
	err = c.Do(ctx, Head(server.URL+"/missing"), func(*http.Response) error {
		called = true
		return nil
	})
	if !IsNotFound(err) {
		t.Errorf("Do(/missing) = %v, want not found", err)
	}
	if called {
		t.Error("handler must not run for non-2xx responses")
	}

	err = c.Do(ctx, Get(server.URL+"/forbidden"), nil)
	var se *StatusError
	if !stderrors.As(err, &se) || se.StatusCode != http.StatusForbidden {
		t.Errorf("Do(/forbidden) = %v, want StatusError 403", err)
	}
	if IsNotFound(err) {
		t.Error("403 reported as not found")
	}

	sentinel := stderrors.New("handler failed")
	err = c.Do(ctx, Get(server.URL+"/ok"), func(*http.Response) error { return sentinel })
	if !stderrors.Is(err, sentinel) {
		t.Errorf("Do() = %v, want handler error", err)
	}
}

func TestClientDoInvalidURL(t *testing.T) {
	c := NewClient(DefaultConfig())
	err := c.Do(context.Background(), Get("not a url"), nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Do() = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestClientDoNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(DefaultConfig())
	err := c.Do(context.Background(), Get(url+"/gone"), nil)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Do() = %v, want %v", err, errors.ErrCodeNetwork)
	}
}

func TestClientReadTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewClient(Config{ConnectTimeout: time.Second, ReadTimeout: 50 * time.Millisecond})
	start := time.Now()
	err := c.Do(context.Background(), Get(server.URL), nil)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("Do() = %v, want %v", err, errors.ErrCodeTimeout)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestClientBreaker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(Config{BreakerThreshold: 2})
	ctx := context.Background()

	// 404s do not count against the host.
	for range 3 {
		c.Do(ctx, Get(server.URL+"/missing"), nil)
	}
	if hosts := c.TrippedHosts(); len(hosts) != 0 {
		t.Fatalf("breaker tripped by 404s: %v", hosts)
	}

	c.Do(ctx, Get(server.URL+"/a"), nil)
	c.Do(ctx, Get(server.URL+"/b"), nil)
	before := hits.Load()

	err := c.Do(ctx, Get(server.URL+"/c"), nil)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Do() with open breaker = %v, want %v", err, errors.ErrCodeNetwork)
	}
	if hits.Load() != before {
		t.Error("request reached the server while the breaker was open")
	}
	if hosts := c.TrippedHosts(); len(hosts) != 1 {
		t.Errorf("TrippedHosts() = %v, want one host", hosts)
	}
}

func TestClientBreakerDisabled(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(Config{BreakerThreshold: 0})
	for range 5 {
		c.Do(context.Background(), Get(server.URL), nil)
	}
	if hits.Load() != 5 {
		t.Errorf("server hits = %d, want 5", hits.Load())
	}
	if hosts := c.TrippedHosts(); hosts != nil {
		t.Errorf("TrippedHosts() = %v, want nil", hosts)
	}
}

package httputil

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/matzehuels/portalsync/pkg/errors"
	"github.com/matzehuels/portalsync/pkg/observability"
)

// DefaultUserAgent identifies portalsync to remote repositories.
const DefaultUserAgent = "portalsync"

// Config holds the transport settings shared by every request.
type Config struct {
	ConnectTimeout time.Duration // dial and TLS handshake bound
	ReadTimeout    time.Duration // bound on each read, including waiting for headers
	UserAgent      string

	// BreakerThreshold is the number of consecutive failures after which a
	// host is considered down and further requests fail fast. Zero disables
	// the breaker.
	BreakerThreshold int
}

// DefaultConfig returns 20 second connect and read timeouts and a breaker
// that trips after 5 consecutive failures.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:   20 * time.Second,
		ReadTimeout:      20 * time.Second,
		UserAgent:        DefaultUserAgent,
		BreakerThreshold: 5,
	}
}

// Request describes a single outgoing call.
type Request struct {
	Method string
	URL    string
	Header http.Header
}

// Get returns a GET request for url.
func Get(url string) Request { return Request{Method: http.MethodGet, URL: url} }

// Head returns a HEAD request for url.
func Head(url string) Request { return Request{Method: http.MethodHead, URL: url} }

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err is a 404 [StatusError].
func IsNotFound(err error) bool {
	var se *StatusError
	return stderrors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Client performs requests with bounded timeouts and per-host circuit
// breaking. It is not retried: a failed request stays failed for the run.
type Client struct {
	http      *http.Client
	userAgent string
	breakers  *breakerSet
}

// NewClient builds a Client from cfg. Zero timeouts fall back to
// [DefaultConfig] values.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = def.ConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	return &Client{
		http:      &http.Client{Transport: newTransport(cfg)},
		userAgent: cfg.UserAgent,
		breakers:  newBreakerSet(cfg.BreakerThreshold),
	}
}

// Do sends req and, on a 2xx response, passes it to handle. The response
// body is closed before Do returns on every path, so handle must finish
// reading before it returns.
//
// Errors:
//   - transport failures are [errors.ErrCodeNetwork] or [errors.ErrCodeTimeout]
//   - non-2xx responses are a [*StatusError]; handle is not called
//   - a host with a tripped breaker fails with [errors.ErrCodeNetwork]
//     without touching the network
//   - errors from handle are returned unchanged
func (c *Client) Do(ctx context.Context, req Request, handle func(*http.Response) error) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request URL %q", req.URL)
	}

	breaker := c.breakers.get(u.Host)
	if !breaker.ready() {
		return errors.New(errors.ErrCodeNetwork, "%s %s: host %s is failing, skipped", method, req.URL, u.Host)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request %s", req.URL)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		breaker.fail()
		hooks.OnError(ctx, method, u.Host, u.Path, err)
		return wrapTransportError(err, method, req.URL)
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
	}()

	hooks.OnResponse(ctx, method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 500 {
		breaker.fail()
	} else {
		breaker.success()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: req.URL}
	}
	if handle == nil {
		return nil
	}
	return handle(resp)
}

// TrippedHosts returns the hosts whose breaker is open, sorted.
func (c *Client) TrippedHosts() []string {
	hosts := c.breakers.tripped()
	slices.Sort(hosts)
	return hosts
}

func wrapTransportError(err error, method, rawURL string) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "%s %s", method, rawURL)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, rawURL)
}

package integrations

import (
	"context"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/portalsync/pkg/httputil"
)

// maxDownloadSize bounds a single artifact download.
const maxDownloadSize = 256 << 20

// Client provides shared HTTP functionality for repository clients.
// It applies default headers and maps transport outcomes onto
// [ErrNotFound] and [ErrNetwork].
type Client struct {
	http    *httputil.Client
	headers map[string]string
}

// NewClient creates a Client sending requests through h with the given
// default headers. Pass nil for headers if none are needed.
func NewClient(h *httputil.Client, headers map[string]string) *Client {
	return &Client{http: h, headers: headers}
}

// HTTP returns the underlying request primitive.
func (c *Client) HTTP() *httputil.Client { return c.http }

// GetXML performs a GET and XML-decodes the response body into v.
func (c *Client) GetXML(ctx context.Context, url string, v any) error {
	return c.do(ctx, http.MethodGet, url, func(resp *http.Response) error {
		if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDecode, url, err)
		}
		return nil
	})
}

// Head performs a HEAD request and returns the response headers.
func (c *Client) Head(ctx context.Context, url string) (http.Header, error) {
	var header http.Header
	err := c.do(ctx, http.MethodHead, url, func(resp *http.Response) error {
		header = resp.Header.Clone()
		return nil
	})
	return header, err
}

// Download performs a GET and copies the body into w. Bodies larger than
// 256 MiB are rejected with [ErrTooLarge].
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	var n int64
	err := c.do(ctx, http.MethodGet, url, func(resp *http.Response) error {
		var err error
		n, err = io.Copy(w, io.LimitReader(resp.Body, maxDownloadSize+1))
		if err != nil {
			return fmt.Errorf("%w: download %s: %w", ErrNetwork, url, err)
		}
		if n > maxDownloadSize {
			return fmt.Errorf("%w: %s", ErrTooLarge, url)
		}
		return nil
	})
	return n, err
}

func (c *Client) do(ctx context.Context, method, url string, handle func(*http.Response) error) error {
	req := httputil.Request{Method: method, URL: url, Header: make(http.Header, len(c.headers))}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return checkStatus(c.http.Do(ctx, req, handle))
}

func checkStatus(err error) error {
	if err == nil {
		return nil
	}
	var se *httputil.StatusError
	switch {
	case stderrors.As(err, &se) && se.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, se.URL)
	case stderrors.Is(err, ErrNetwork), stderrors.Is(err, ErrTooLarge), stderrors.Is(err, ErrDecode):
		return err
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
}

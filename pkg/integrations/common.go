package integrations

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a resource doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned when a response body cannot be decoded.
	ErrDecode = errors.New("decode error")

	// ErrTooLarge is returned when a download exceeds the size limit.
	ErrTooLarge = errors.New("response too large")
)

// JoinURL appends path segments to base with single slashes. Trailing
// slashes on base are dropped, so "https://repo/" and "https://repo" give
// the same result.
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

package maven

import (
	"archive/zip"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/matzehuels/portalsync/pkg/integrations"
	"github.com/matzehuels/portalsync/pkg/record"
	"github.com/matzehuels/portalsync/pkg/version"
)

// ArtifactURLs returns the download locations tried for one version, in
// priority order: the primary jar, the "-plain" jar, then the legacy zip.
func ArtifactURLs(base string, c record.Coordinates, v string) []string {
	stem := integrations.JoinURL(base, c.GroupPath(), c.ArtifactID, v, c.ArtifactID+"-"+v)
	return []string{
		stem + ".jar",
		stem + "-plain.jar",
		stem + ".zip",
	}
}

// FirstSuccess calls try on each candidate from left to right and stops at
// the first one that reports success. It returns that value and candidate,
// or ok=false when every candidate failed.
func FirstSuccess[T any](candidates []string, try func(string) (T, bool)) (T, string, bool) {
	for _, c := range candidates {
		if v, ok := try(c); ok {
			return v, c, true
		}
	}
	var zero T
	return zero, "", false
}

// ReleaseDate returns the Last-Modified time of the first artifact
// candidate that has one. Missing candidates are skipped silently.
func (c *Client) ReleaseDate(ctx context.Context, base string, coords record.Coordinates, v string) (time.Time, bool) {
	logger := c.logger.With("coords", coords.String(), "version", v)

	t, _, ok := FirstSuccess(ArtifactURLs(base, coords, v), func(url string) (time.Time, bool) {
		if ctx.Err() != nil {
			return time.Time{}, false
		}
		h, err := c.Head(ctx, url)
		if err != nil {
			if !errors.Is(err, integrations.ErrNotFound) {
				logger.Debug("HEAD failed", "url", url, "err", err)
			}
			return time.Time{}, false
		}
		lm := h.Get("Last-Modified")
		if lm == "" {
			return time.Time{}, false
		}
		parsed, err := http.ParseTime(lm)
		if err != nil {
			logger.Debug("bad Last-Modified", "url", url, "value", lm)
			return time.Time{}, false
		}
		return parsed.UTC(), true
	})
	return t, ok
}

// Compatibility downloads artifact candidates in order and returns the
// compatibility range declared by the first one whose descriptor has one.
// Unreachable candidates, corrupt archives and descriptors without a value
// all move on to the next candidate. A single warning is logged when none
// succeeds.
func (c *Client) Compatibility(ctx context.Context, base string, coords record.Coordinates, v string) (string, bool) {
	logger := c.logger.With("coords", coords.String(), "version", v)

	value, url, ok := FirstSuccess(ArtifactURLs(base, coords, v), func(url string) (string, bool) {
		if ctx.Err() != nil {
			return "", false
		}
		value, err := c.compatibilityFrom(ctx, url)
		if err != nil {
			if !errors.Is(err, integrations.ErrNotFound) {
				logger.Debug("no compatibility from candidate", "url", url, "err", err)
			}
			return "", false
		}
		return value, true
	})
	if !ok {
		if ctx.Err() == nil {
			logger.Warn("no compatibility declaration found in any artifact")
		}
		return "", false
	}
	logger.Debug("found compatibility declaration", "url", url, "grailsVersion", value)
	return value, true
}

// compatibilityFrom downloads url into a temporary file, removed before
// returning, and reads its plugin descriptor.
func (c *Client) compatibilityFrom(ctx context.Context, url string) (string, error) {
	f, err := os.CreateTemp("", "portalsync-artifact-*")
	if err != nil {
		return "", err
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	size, err := c.Download(ctx, url, f)
	if err != nil {
		return "", err
	}
	zr, err := zip.NewReader(f, size)
	if err != nil {
		return "", errors.Join(errCorruptArchive, err)
	}
	return readCompatibility(zr)
}

// Inspect gathers the release date and compatibility range for v. Both
// lookups run over the same candidate list independently.
func (c *Client) Inspect(ctx context.Context, base string, coords record.Coordinates, v version.Version) Info {
	var info Info
	if t, ok := c.ReleaseDate(ctx, base, coords, v.Raw); ok {
		info.Date = t
	}
	if gv, ok := c.Compatibility(ctx, base, coords, v.Raw); ok {
		info.GrailsVersion = gv
	}
	return info
}

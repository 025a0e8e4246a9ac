package reconcile

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portalsync/pkg/errors"
	"github.com/matzehuels/portalsync/pkg/integrations/maven"
	"github.com/matzehuels/portalsync/pkg/observability"
	"github.com/matzehuels/portalsync/pkg/record"
	"github.com/matzehuels/portalsync/pkg/version"
)

// Source is where published versions are discovered. [*maven.Client]
// implements it.
type Source interface {
	FetchVersions(ctx context.Context, base string, coords record.Coordinates) ([]version.Version, error)
	Inspect(ctx context.Context, base string, coords record.Coordinates, v version.Version) maven.Info
}

// Result summarizes what one reconcile did to a record.
type Result struct {
	Added    []string // newly appended version texts, in discovery order
	Bare     []string // subset of Added stored without date or range
	Repaired int      // dates converted from text to typed values
	Synced   bool     // false when the record has no maven-repo
	Changed  bool     // version list content or order differs from the input
}

// Reconciler merges remote releases into plugin records.
type Reconciler struct {
	Source Source
	Store  *record.Store
	Logger *log.Logger
}

// New returns a Reconciler. A nil logger falls back to log.Default().
func New(src Source, store *record.Store, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{Source: src, Store: store, Logger: logger}
}

// Reconcile syncs rec, repairs textual dates and saves it to path in
// canonical form. The record is saved even when nothing changed.
//
// rec is modified in place. On error (only context cancellation or a failed
// save) the file at path is left as it was.
func (r *Reconciler) Reconcile(ctx context.Context, path string, rec *record.Plugin) (Result, error) {
	hooks := observability.Sync()
	hooks.OnPluginStart(ctx, rec.Coords)
	start := time.Now()

	res, err := r.Sync(ctx, rec)
	if err == nil {
		res.Repaired = rec.RepairDates()
		if res.Repaired > 0 {
			res.Changed = true
			r.Logger.Warn("repaired textual dates", "plugin", rec.Coords, "count", res.Repaired)
		}
		err = r.Store.Save(path, rec)
	}

	hooks.OnPluginComplete(ctx, rec.Coords, len(res.Added), time.Since(start), err)
	return res, err
}

// Sync appends versions published in the record's repository that are not
// yet listed, then re-sorts the whole list newest first. Existing entries
// are never modified; only their position can change.
//
// A record without maven-repo is not tracked and is returned untouched.
func (r *Reconciler) Sync(ctx context.Context, rec *record.Plugin) (Result, error) {
	var res Result
	if rec.MavenRepo == "" {
		r.Logger.Debug("no maven-repo, skipping remote sync", "plugin", rec.Coords)
		return res, nil
	}

	coords, err := rec.Coordinates()
	if err != nil {
		return res, err
	}
	before := versionTexts(rec.Versions)
	if err := r.merge(ctx, rec, coords, &res); err != nil {
		return res, err
	}
	res.Synced = true

	Sort(rec.Versions)
	res.Changed = len(res.Added) > 0 || !slices.Equal(before, versionTexts(rec.Versions))
	return res, nil
}

func (r *Reconciler) merge(ctx context.Context, rec *record.Plugin, coords record.Coordinates, res *Result) error {
	logger := r.Logger.With("plugin", coords.String(), "purl", coords.PURL(""))
	hooks := observability.Sync()

	candidates, err := r.Source.FetchVersions(ctx, rec.MavenRepo, coords)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch versions for %s", coords)
	}

	for _, v := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rec.HasVersion(v.Raw) {
			continue
		}

		info := r.Source.Inspect(ctx, rec.MavenRepo, coords, v)
		if err := ctx.Err(); err != nil {
			return err
		}
		entry := record.VersionEntry{Version: v.Raw, GrailsVersion: info.GrailsVersion}
		if !info.Date.IsZero() {
			entry.Date = record.NewDate(info.Date)
		}
		bare := info.Empty()
		if bare {
			logger.Warn("no metadata for version, adding bare entry", "version", v.Raw)
			res.Bare = append(res.Bare, v.Raw)
		} else {
			logger.Info("added version", "version", v.Raw, "grailsVersion", info.GrailsVersion)
		}

		rec.Versions = append(rec.Versions, entry)
		res.Added = append(res.Added, v.Raw)
		hooks.OnVersionAdded(ctx, coords.String(), v.Raw, bare)
	}
	return nil
}

// Sort orders entries newest first. Texts that do not parse as versions go
// last; equal texts keep their relative order.
func Sort(entries []record.VersionEntry) {
	slices.SortStableFunc(entries, func(a, b record.VersionEntry) int {
		return version.CompareText(b.Version, a.Version)
	})
}

func versionTexts(entries []record.VersionEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Version
	}
	return out
}

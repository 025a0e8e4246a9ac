package index

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portalsync/pkg/errors"
	"github.com/matzehuels/portalsync/pkg/observability"
	"github.com/matzehuels/portalsync/pkg/reconcile"
	"github.com/matzehuels/portalsync/pkg/record"
)

// DefaultExtension is the file extension of plugin records.
const DefaultExtension = ".yml"

// Builder reconciles every record under a root directory and collects the
// results for the aggregate index.
type Builder struct {
	Store      *record.Store
	Reconciler *reconcile.Reconciler
	Logger     *log.Logger
	Extension  string // defaults to DefaultExtension
}

// New returns a Builder sharing the reconciler's store and logger.
func New(r *reconcile.Reconciler, ext string) *Builder {
	if ext == "" {
		ext = DefaultExtension
	}
	return &Builder{Store: r.Store, Reconciler: r, Logger: r.Logger, Extension: ext}
}

// Build walks root, reconciles each valid record and returns the updated
// snapshots in walk order.
//
// Files without the record extension are ignored. Records that fail to load
// or reconcile are logged and excluded; only a missing root or a canceled
// context aborts the build.
func (b *Builder) Build(ctx context.Context, root string) ([]record.Plugin, error) {
	entries := []record.Plugin{}
	err := b.Store.Walk(root, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if filepath.Ext(path) != b.extension() {
			b.Logger.Info("ignoring file", "path", path)
			return nil
		}

		rec, err := b.reconcile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			b.skip(ctx, path, err)
			return nil
		}
		if rec != nil {
			entries = append(entries, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReconcileFile reconciles the single record at path without touching the
// index. A path that does not name a regular file fails with
// [errors.ErrCodeFileNotFound]; an invalid record is logged and skipped.
func (b *Builder) ReconcileFile(ctx context.Context, path string) (*record.Plugin, error) {
	if !b.Store.Exists(path) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "record file %q not found", path)
	}
	rec, err := b.reconcile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		b.skip(ctx, path, err)
		return nil, nil
	}
	return rec, nil
}

// Write stores entries as a JSON array at path.
func (b *Builder) Write(entries []record.Plugin, path string) error {
	if entries == nil {
		entries = []record.Plugin{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode index")
	}
	data = append(data, '\n')
	return b.Store.WriteAtomic(path, data)
}

func (b *Builder) reconcile(ctx context.Context, path string) (*record.Plugin, error) {
	rec, err := b.Store.Load(path)
	if err != nil {
		return nil, err
	}
	if unknown := rec.UnknownLicenses(); len(unknown) > 0 {
		b.Logger.Warn("unknown license identifiers", "path", path, "licenses", unknown)
	}
	if _, err := b.Reconciler.Reconcile(ctx, path, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *Builder) skip(ctx context.Context, path string, err error) {
	b.Logger.Warn("skipping record", "path", path, "code", errors.GetCode(err), "reason", errors.UserMessage(err))
	observability.Sync().OnRecordSkipped(ctx, path, err)
}

func (b *Builder) extension() string {
	if b.Extension == "" {
		return DefaultExtension
	}
	return b.Extension
}

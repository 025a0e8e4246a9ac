package record

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/matzehuels/portalsync/pkg/errors"
)

// Store reads and writes plugin records on a [billy.Filesystem].
//
// Saves go through a temporary file in the destination directory followed by
// a rename, so an interrupted run never leaves a truncated record behind.
type Store struct {
	fs billy.Filesystem
}

// NewStore returns a Store backed by fs.
func NewStore(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// Load reads, decodes and validates the record at path.
func (s *Store) Load(path string) (*Plugin, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "record %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read record %s", path)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes p to path in canonical form.
func (s *Store) Save(path string, p *Plugin) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return s.WriteAtomic(path, data)
}

// WriteAtomic writes data to path via a sibling temp file and rename.
// Parent directories are created as needed.
func (s *Store) WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
	}

	tmp, err := util.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmpName)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, err, "rename %s", path)
	}
	return nil
}

// Exists reports whether path names a regular file.
func (s *Store) Exists(path string) bool {
	fi, err := s.fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Walk calls fn for every regular file under root in lexical order.
// It fails with [errors.ErrCodeFileNotFound] when root is missing or is
// not a directory. An error returned by fn aborts the walk.
func (s *Store) Walk(root string, fn func(path string) error) error {
	fi, err := s.fs.Stat(root)
	if err != nil || !fi.IsDir() {
		return errors.New(errors.ErrCodeFileNotFound, "root directory %q not found", root)
	}
	return util.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return fn(path)
	})
}

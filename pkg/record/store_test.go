package record

import (
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/matzehuels/portalsync/pkg/errors"
)

func TestStoreLoad(t *testing.T) {
	fs := memfs.New()
	util.WriteFile(fs, "plugins/org/grails/plugins/cache.yml", []byte("name: Cache\ncoords: org.grails.plugins:cache\n"), 0o644)
	util.WriteFile(fs, "plugins/bad.yml", []byte("name: Bad\ncoords: nope\n"), 0o644)
	util.WriteFile(fs, "plugins/garbage.yml", []byte("coords: [\n"), 0o644)

	s := NewStore(fs)

	p, err := s.Load("plugins/org/grails/plugins/cache.yml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Name != "Cache" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Versions == nil {
		t.Error("Versions should be normalized to an empty slice")
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{"plugins/bad.yml", errors.ErrCodeInvalidCoordinates},
		{"plugins/garbage.yml", errors.ErrCodeInvalidRecord},
		{"plugins/missing.yml", errors.ErrCodeFileNotFound},
		{"", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := s.Load(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Load(%q) = %v, want code %v", tt.path, err, tt.code)
			}
		})
	}
}

func TestStoreSaveAtomic(t *testing.T) {
	fs := memfs.New()
	s := NewStore(fs)

	p := &Plugin{Name: "Cache", Coords: "org.grails.plugins:cache", Versions: []VersionEntry{{Version: "1.0.0"}}}
	path := "plugins/org/grails/plugins/cache.yml"

	if err := s.Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Overwrite an existing file.
	p.Versions = append(p.Versions, VersionEntry{Version: "0.9.0"})
	if err := s.Save(path, p); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	entries, err := fs.ReadDir("plugins/org/grails/plugins")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "cache.yml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only cache.yml", names)
	}

	loaded, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if len(loaded.Versions) != 2 || loaded.Versions[1].Version != "0.9.0" {
		t.Errorf("round trip lost versions: %+v", loaded.Versions)
	}
}

func TestStoreWalk(t *testing.T) {
	fs := memfs.New()
	for _, name := range []string{"plugins/b/x.yml", "plugins/a.yml", "plugins/a/README.md"} {
		util.WriteFile(fs, name, []byte("x"), 0o644)
	}
	s := NewStore(fs)

	var got []string
	err := s.Walk("plugins", func(path string) error {
		got = append(got, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	want := []string{"plugins/a.yml", "plugins/a/README.md", "plugins/b/x.yml"}
	sort.Strings(got)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Walk visited %v, want %v", got, want)
	}

	if err := s.Walk("nope", func(string) error { return nil }); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Walk(missing) = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
	if err := s.Walk("plugins/a.yml", func(string) error { return nil }); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Walk(file) = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestStoreExists(t *testing.T) {
	fs := memfs.New()
	util.WriteFile(fs, "plugins/a.yml", []byte("x"), 0o644)
	s := NewStore(fs)

	if !s.Exists("plugins/a.yml") {
		t.Error("Exists(file) = false")
	}
	if s.Exists("plugins") {
		t.Error("Exists(dir) = true")
	}
	if s.Exists("plugins/missing.yml") {
		t.Error("Exists(missing) = true")
	}
}

func TestStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(osfs.New(dir))

	p := &Plugin{Coords: "org.grails.plugins:cache", Versions: []VersionEntry{}}
	if err := s.Save("org/grails/plugins/cache.yml", p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(dir + "/org/grails/plugins/cache.yml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "coords: org.grails.plugins:cache") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

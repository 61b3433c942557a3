package catz

import (
	"os"
	"path/filepath"
	"sort"
)

type Flat struct {
	// path is the directory for flat file storage.
	path string
}

func NewFlatWithRoot(root string) *Flat {
	root = filepath.Clean(root)
	// If root is not absolute, make it absolute.
	if !filepath.IsAbs(root) {
		root, _ = filepath.Abs(root)
	}
	return &Flat{path: root}
}

// Joins returns a new Flat for a subdirectory of f.
func (f *Flat) Joins(paths ...string) *Flat {
	return &Flat{path: filepath.Join(append([]string{f.path}, paths...)...)}
}

// Exists returns true if the directory exists.
func (f *Flat) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *Flat) MkdirAll() error {
	return os.MkdirAll(f.path, 0770)
}

func (f *Flat) Path() string {
	return f.path
}

func (f *Flat) Named(name string) string {
	return filepath.Join(f.path, name)
}

// List returns the names of the non-directory entries
// accepted by match, sorted by name.
func (f *Flat) List(match func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if match == nil || match(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *Flat) ReadFile(name string) ([]byte, error) {
	return ReadFile(f.Named(name))
}

func (f *Flat) WriteFile(name string, data []byte) error {
	return WriteFile(f.Named(name), data, nil)
}

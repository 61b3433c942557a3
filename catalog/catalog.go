// Package catalog discovers source trajectory files and counts their vehicles.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rotblauer/trajmix/catz"
	"github.com/rotblauer/trajmix/params"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// Entry is one catalogued source file.
type Entry struct {
	Name string
	// Count is the number of vehicles in the file.
	Count int
}

// Loader loads a source file by name.
type Loader interface {
	Load(name string) (*trajectory.File, error)
}

// DirLoader reads source files from a directory.
type DirLoader struct {
	flat *catz.Flat
}

func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{flat: catz.NewFlatWithRoot(dir)}
}

func (d *DirLoader) Dir() *catz.Flat {
	return d.flat
}

func (d *DirLoader) Load(name string) (*trajectory.File, error) {
	path := d.flat.Named(name)
	data, err := catz.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := trajectory.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build lists the eligible files of dir, loading each to count its vehicles.
// Entries are sorted by ascending count; equal counts keep name order.
// Any unreadable or malformed file fails the whole catalogue.
func Build(ctx context.Context, dir *catz.Flat, rule params.Eligibility, loader Loader) ([]Entry, error) {
	names, err := dir.List(rule.Match)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir.Path(), err)
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := loader.Load(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: name, Count: f.Len()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count < entries[j].Count
	})
	for _, e := range entries {
		slog.Info("Catalogued", "name", e.Name, "count", e.Count)
	}
	return entries, nil
}

// Names returns the entry names in order.
func Names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

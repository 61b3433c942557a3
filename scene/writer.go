package scene

import (
	"fmt"

	"github.com/rotblauer/trajmix/catz"
	"github.com/rotblauer/trajmix/conceptual"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// Indent matches the layout of the recorded source files.
const Indent = "  "

// Filter returns the vehicles of m not in removed, keyed "0", "1", ...
// in their original relative order.
func Filter(m *Merged, removed RemovalSet) *trajectory.File {
	out := trajectory.NewFile()
	for _, v := range m.Vehicles {
		if removed.Has(v.ID) {
			continue
		}
		out.Set(conceptual.VehicleID(out.Len()).String(), v.Trajectory)
	}
	return out
}

// Writer writes one artifact per scene into a directory.
type Writer struct {
	dir *catz.Flat
	ext string
}

func NewWriter(dir, ext string) *Writer {
	return &Writer{dir: catz.NewFlatWithRoot(dir), ext: ext}
}

// Write writes f as <dir>/<name><ext>, replacing any earlier artifact.
func (w *Writer) Write(name conceptual.ComboName, f *trajectory.File) (string, error) {
	data, err := trajectory.Encode(f, Indent)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path := w.dir.Named(name.String() + w.ext)
	if err := catz.WriteFile(path, data, nil); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

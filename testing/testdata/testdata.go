package testdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// Straight returns n frames starting at (x, y) at t0, moving along (dx, dy)
// by one unit of heading per step timestamps.
func Straight(x, y, dx, dy float64, t0, step int64, n int) *trajectory.Trajectory {
	frames := make([]trajectory.Frame, n)
	for i := range frames {
		frames[i] = trajectory.Frame{
			Position:  orb.Point{x + dx*float64(i), y + dy*float64(i)},
			Heading:   orb.Point{dx, dy},
			Timestamp: t0 + step*int64(i),
		}
	}
	return trajectory.New(frames...)
}

// Parked returns n frames standing still at (x, y), facing +x.
func Parked(x, y float64, t0, step int64, n int) *trajectory.Trajectory {
	t := Straight(x, y, 0, 0, t0, step, n)
	for i := range t.Frames {
		t.Frames[i].Heading = orb.Point{1, 0}
	}
	return t
}

// File keys the trajectories "v0", "v1", ... in order.
func File(tracks ...*trajectory.Trajectory) *trajectory.File {
	f := trajectory.NewFile()
	for i, t := range tracks {
		f.Set(fmt.Sprintf("v%d", i), t)
	}
	return f
}

// WriteFile writes f as JSON to dir/name and returns the path.
func WriteFile(dir, name string, f *trajectory.File) (string, error) {
	data, err := trajectory.Encode(f, "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0660)
}

// WriteSource writes a source file holding the given trajectories.
func WriteSource(dir, name string, tracks ...*trajectory.Trajectory) (string, error) {
	return WriteFile(dir, name, File(tracks...))
}

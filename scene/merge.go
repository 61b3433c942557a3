// Package scene merges source files into one scene and removes vehicles
// whose rectangles overlap at a shared timestamp.
package scene

import (
	"github.com/rotblauer/trajmix/catalog"
	"github.com/rotblauer/trajmix/conceptual"
	"github.com/rotblauer/trajmix/names"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// Vehicle is one trajectory of a merged scene.
type Vehicle struct {
	ID conceptual.VehicleID

	// Source and Key locate the trajectory in its source file.
	Source string
	Key    string

	Trajectory *trajectory.Trajectory

	// Length is the frame count, fixed at merge time.
	Length int
}

// Merged is the concatenation of a combination's trajectories.
// Vehicles[i].ID == i.
type Merged struct {
	Name     conceptual.ComboName
	Vehicles []Vehicle
}

func (m *Merged) Len() int {
	return len(m.Vehicles)
}

// Length returns the merge-time frame count of vehicle id.
func (m *Merged) Length(id conceptual.VehicleID) int {
	return m.Vehicles[id].Length
}

// Merge loads the files in order and numbers their vehicles from 0,
// file by file, in each file's stored key order.
func Merge(loader catalog.Loader, files []string) (*Merged, error) {
	m := &Merged{Name: conceptual.ComboName(names.ComboName(files))}
	for _, name := range files {
		f, err := loader.Load(name)
		if err != nil {
			return nil, err
		}
		f.Each(func(key string, t *trajectory.Trajectory) {
			m.Vehicles = append(m.Vehicles, Vehicle{
				ID:         conceptual.VehicleID(len(m.Vehicles)),
				Source:     name,
				Key:        key,
				Trajectory: t,
				Length:     t.Len(),
			})
		})
	}
	return m, nil
}

package scene

import (
	"github.com/paulmach/orb"
	"github.com/rotblauer/trajmix/conceptual"
)

// Pose is a vehicle's position and heading at one timestamp.
type Pose struct {
	ID       conceptual.VehicleID
	Position orb.Point
	Heading  orb.Point
}

// Index groups every frame of a scene by timestamp.
// Timestamps are kept in the order they are first seen, walking vehicles
// by id and each vehicle's frames in order. Poses within a timestamp keep
// that same order. A vehicle with two frames at one timestamp has two poses.
type Index struct {
	order []int64
	snaps map[int64][]Pose
}

func NewIndex(m *Merged) *Index {
	ix := &Index{snaps: make(map[int64][]Pose)}
	for _, v := range m.Vehicles {
		for _, f := range v.Trajectory.Frames {
			poses, ok := ix.snaps[f.Timestamp]
			if !ok {
				ix.order = append(ix.order, f.Timestamp)
			}
			ix.snaps[f.Timestamp] = append(poses, Pose{
				ID:       v.ID,
				Position: f.Position,
				Heading:  f.Heading,
			})
		}
	}
	return ix
}

// Timestamps returns the indexed timestamps in first-seen order.
func (ix *Index) Timestamps() []int64 {
	return ix.order
}

// At returns the poses at ts, or nil.
func (ix *Index) At(ts int64) []Pose {
	return ix.snaps[ts]
}

func (ix *Index) Len() int {
	return len(ix.order)
}

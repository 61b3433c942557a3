package scene

import (
	"log/slog"
	"sort"

	"github.com/rotblauer/trajmix/conceptual"
	"github.com/rotblauer/trajmix/geo/obb"
	"github.com/rotblauer/trajmix/params"
)

// RemovalSet holds the vehicles dropped from one scene. It only grows.
type RemovalSet map[conceptual.VehicleID]struct{}

func NewRemovalSet() RemovalSet {
	return make(RemovalSet)
}

func (r RemovalSet) Add(id conceptual.VehicleID) {
	r[id] = struct{}{}
}

func (r RemovalSet) Has(id conceptual.VehicleID) bool {
	_, ok := r[id]
	return ok
}

func (r RemovalSet) Len() int {
	return len(r)
}

// Sorted returns the removed ids in ascending order.
func (r RemovalSet) Sorted() []conceptual.VehicleID {
	out := make([]conceptual.VehicleID, 0, len(r))
	for id := range r {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lengths gives the fixed trajectory length of a vehicle.
type Lengths interface {
	Length(id conceptual.VehicleID) int
}

type Resolver struct {
	Dims params.VehicleDims
}

func NewResolver(dims params.VehicleDims) *Resolver {
	return &Resolver{Dims: dims}
}

// ResolveStats counts the work of one Resolve call.
type ResolveStats struct {
	Compared  int
	Conflicts int
}

// Resolve walks the index timestamp by timestamp and, for every pair of poses
// (i < j) whose rectangles intersect, removes the vehicle with the shorter
// trajectory. Ties remove j.
//
// A pose is skipped as i only if its vehicle was removed before its turn as i
// came up; a vehicle removed while it is i keeps being compared against the
// rest of that timestamp. Poses j already removed are skipped one by one.
// Results depend on this order and are not a maximum independent set.
func (r *Resolver) Resolve(ix *Index, lengths Lengths, removed RemovalSet) ResolveStats {
	stats := ResolveStats{}
	for _, ts := range ix.Timestamps() {
		poses := ix.At(ts)
		for i := range poses {
			a := poses[i]
			if removed.Has(a.ID) {
				continue
			}
			ca := obb.Corners(a.Position, a.Heading, r.Dims.Length, r.Dims.Width)
			for j := i + 1; j < len(poses); j++ {
				b := poses[j]
				if removed.Has(b.ID) {
					continue
				}
				cb := obb.Corners(b.Position, b.Heading, r.Dims.Length, r.Dims.Width)
				stats.Compared++
				if !obb.Intersects(ca, cb) {
					continue
				}
				stats.Conflicts++
				loser := b.ID
				if lengths.Length(a.ID) < lengths.Length(b.ID) {
					loser = a.ID
				}
				removed.Add(loser)
				slog.Debug("Conflict", "ts", ts, "a", a.ID, "b", b.ID, "removed", loser)
			}
		}
	}
	return stats
}

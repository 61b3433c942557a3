package trajectory

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// Frame is one recorded pose of a vehicle.
// On the wire it is [[x, y], [dx, dy], timestamp].
type Frame struct {
	Position  orb.Point
	Heading   orb.Point
	Timestamp int64
}

func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		[2]float64{f.Position[0], f.Position[1]},
		[2]float64{f.Heading[0], f.Heading[1]},
		f.Timestamp,
	})
}

// Trajectory is the ordered frames of a single vehicle.
type Trajectory struct {
	Frames []Frame

	// Raw is the JSON array the frames were decoded from, if any.
	// It is written back verbatim so that source numbers survive unchanged.
	Raw json.RawMessage
}

func New(frames ...Frame) *Trajectory {
	return &Trajectory{Frames: frames}
}

func (t *Trajectory) Len() int {
	return len(t.Frames)
}

// Span returns the smallest and largest timestamps.
// It is not ok for a trajectory without frames.
func (t *Trajectory) Span() (t0, t1 int64, ok bool) {
	if len(t.Frames) == 0 {
		return 0, 0, false
	}
	t0, t1 = t.Frames[0].Timestamp, t.Frames[0].Timestamp
	for _, f := range t.Frames[1:] {
		t0 = min(t0, f.Timestamp)
		t1 = max(t1, f.Timestamp)
	}
	return t0, t1, true
}

func (t *Trajectory) MarshalJSON() ([]byte, error) {
	if t.Raw != nil {
		return t.Raw, nil
	}
	if t.Frames == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.Frames)
}

func (t *Trajectory) UnmarshalJSON(data []byte) error {
	tr, err := decodeTrajectory(data)
	if err != nil {
		return err
	}
	*t = *tr
	return nil
}

package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/gjson"
)

var ErrParse = errors.New("malformed trajectory data")

// Decode parses a trajectory file: a JSON object of vehicle key to frame array.
// Keys are kept in document order.
func Decode(data []byte) (*File, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrParse)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrParse, root.Type)
	}
	f := NewFile()
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		var t *Trajectory
		t, err = decodeResult(value)
		if err != nil {
			err = fmt.Errorf("vehicle %q: %w", key.String(), err)
			return false
		}
		f.Set(key.String(), t)
		return true
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func decodeTrajectory(data []byte) (*Trajectory, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrParse)
	}
	return decodeResult(gjson.ParseBytes(data))
}

func decodeResult(value gjson.Result) (*Trajectory, error) {
	if !value.IsArray() {
		return nil, fmt.Errorf("%w: trajectory is %s, want array", ErrParse, value.Type)
	}
	t := &Trajectory{
		Frames: []Frame{},
		Raw:    []byte(value.Raw),
	}
	var err error
	i := 0
	value.ForEach(func(_, fr gjson.Result) bool {
		var frame Frame
		frame, err = decodeFrame(fr)
		if err != nil {
			err = fmt.Errorf("frame %d: %w", i, err)
			return false
		}
		t.Frames = append(t.Frames, frame)
		i++
		return true
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func decodeFrame(fr gjson.Result) (Frame, error) {
	if !fr.IsArray() {
		return Frame{}, fmt.Errorf("%w: frame is %s, want array", ErrParse, fr.Type)
	}
	parts := fr.Array()
	if len(parts) < 3 {
		return Frame{}, fmt.Errorf("%w: frame has %d elements, want 3", ErrParse, len(parts))
	}
	pos, err := decodePoint(parts[0])
	if err != nil {
		return Frame{}, fmt.Errorf("position: %w", err)
	}
	heading, err := decodePoint(parts[1])
	if err != nil {
		return Frame{}, fmt.Errorf("heading: %w", err)
	}
	ts := parts[2]
	if ts.Type != gjson.Number || ts.Num != math.Trunc(ts.Num) {
		return Frame{}, fmt.Errorf("%w: timestamp %s is not an integer", ErrParse, ts.Raw)
	}
	return Frame{Position: pos, Heading: heading, Timestamp: ts.Int()}, nil
}

func decodePoint(r gjson.Result) (orb.Point, error) {
	if !r.IsArray() {
		return orb.Point{}, fmt.Errorf("%w: %s, want [x, y]", ErrParse, r.Type)
	}
	xy := r.Array()
	if len(xy) < 2 {
		return orb.Point{}, fmt.Errorf("%w: %d coordinates, want 2", ErrParse, len(xy))
	}
	if xy[0].Type != gjson.Number || xy[1].Type != gjson.Number {
		return orb.Point{}, fmt.Errorf("%w: non-numeric coordinate in %s", ErrParse, r.Raw)
	}
	return orb.Point{xy[0].Num, xy[1].Num}, nil
}

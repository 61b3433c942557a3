package trajectory

import (
	"bytes"
	"encoding/json"
)

// File maps vehicle keys to trajectories in their stored order.
// Key order drives id assignment and conflict resolution downstream,
// so it is never taken from a Go map.
type File struct {
	keys  []string
	trajs map[string]*Trajectory
}

func NewFile() *File {
	return &File{trajs: make(map[string]*Trajectory)}
}

// Set stores t under key. A key that is already present keeps its position.
func (f *File) Set(key string, t *Trajectory) {
	if _, ok := f.trajs[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.trajs[key] = t
}

func (f *File) Get(key string) (*Trajectory, bool) {
	t, ok := f.trajs[key]
	return t, ok
}

func (f *File) Len() int {
	return len(f.keys)
}

func (f *File) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Each calls fn for every vehicle in stored order.
func (f *File) Each(fn func(key string, t *Trajectory)) {
	for _, k := range f.keys {
		fn(k, f.trajs[k])
	}
}

func (f *File) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		tb, err := f.trajs[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(tb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *File) UnmarshalJSON(data []byte) error {
	out, err := Decode(data)
	if err != nil {
		return err
	}
	*f = *out
	return nil
}

// Encode renders f as a JSON object, indented when indent is not empty.
func Encode(f *File, indent string) ([]byte, error) {
	data, err := f.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return data, nil
	}
	out := new(bytes.Buffer)
	if err := json.Indent(out, data, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

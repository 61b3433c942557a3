package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rotblauer/trajmix/catz"
	"github.com/rotblauer/trajmix/conceptual"
	"github.com/rotblauer/trajmix/names"
	"github.com/rotblauer/trajmix/params"
	"github.com/rotblauer/trajmix/scene"
	"github.com/rotblauer/trajmix/types/trajectory"
)

// ErrEmptyTrajectory is returned for a vehicle without frames, which has no time span.
var ErrEmptyTrajectory = errors.New("trajectory has no frames")

type CropResult struct {
	Scenes  int
	Written []string
}

// Crop cuts every merged scene of the input directory into sub-scenes, one per
// subject vehicle, keeping only the vehicles present for the subject's whole
// time span. Sub-scenes go to <out>/<scene>/<duration>_<count><ext>.
func Crop(ctx context.Context, config *params.CropConfig) (*CropResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	in := catz.NewFlatWithRoot(config.InputDir)
	out := catz.NewFlatWithRoot(config.OutputDir)
	if err := out.MkdirAll(); err != nil {
		return nil, err
	}
	files, err := in.List(config.Eligibility.Match)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", in.Path(), err)
	}

	res := &CropResult{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stem := names.TrimExt(name, config.Eligibility.Extension)
		sub := out.Joins(stem)
		if err := sub.MkdirAll(); err != nil {
			return res, err
		}
		data, err := in.ReadFile(name)
		if err != nil {
			return res, fmt.Errorf("read %s: %w", in.Named(name), err)
		}
		f, err := trajectory.Decode(data)
		if err != nil {
			return res, fmt.Errorf("%s: %w", in.Named(name), err)
		}
		written, err := cropScene(f, stem, sub, config)
		if err != nil {
			return res, fmt.Errorf("%s: %w", in.Named(name), err)
		}
		res.Scenes++
		res.Written = append(res.Written, written...)
	}
	slog.Info("Crop done", "scenes", res.Scenes, "written", len(res.Written))
	return res, nil
}

type span struct {
	t0, t1 int64
}

func (s span) covers(o span) bool {
	return s.t0 <= o.t0 && s.t1 >= o.t1
}

func cropScene(f *trajectory.File, stem string, sub *catz.Flat, config *params.CropConfig) ([]string, error) {
	keys := f.Keys()
	spans := make(map[string]span, len(keys))
	for _, k := range keys {
		t, _ := f.Get(k)
		t0, t1, ok := t.Span()
		if !ok {
			return nil, fmt.Errorf("%w: vehicle %q", ErrEmptyTrajectory, k)
		}
		spans[k] = span{t0, t1}
	}

	written := []string{}
	for _, subject := range keys {
		s := spans[subject]
		kept := []string{}
		for _, k := range keys {
			if spans[k].covers(s) {
				kept = append(kept, k)
			}
		}
		if len(kept) <= config.MinVehicles {
			continue
		}
		duration := s.t1 - s.t0
		if duration <= config.MinDuration {
			continue
		}

		// The subject is always "0".
		out := trajectory.NewFile()
		st, _ := f.Get(subject)
		out.Set("0", st)
		for _, k := range kept {
			if k == subject {
				continue
			}
			t, _ := f.Get(k)
			out.Set(conceptual.VehicleID(out.Len()).String(), t)
		}

		data, err := trajectory.Encode(out, scene.Indent)
		if err != nil {
			return written, err
		}
		path := sub.Named(names.SceneFileName(duration, out.Len(), config.Eligibility.Extension))
		if err := catz.WriteFile(path, data, nil); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		slog.Info("Cropped", "scene", stem, "subject", subject, "duration", duration, "kept", out.Len())
	}
	return written, nil
}

package api

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/rotblauer/trajmix/catz"
	"github.com/rotblauer/trajmix/names"
	"github.com/rotblauer/trajmix/params"
)

type CollectResult struct {
	Matched int
	Copied  []string
}

// Collect walks the input tree for sub-scenes named <duration>_<count><ext>
// and copies those meeting both minimums into one flat directory,
// prefixing each copy with its parent directory's name.
// Unreadable directories are skipped.
func Collect(ctx context.Context, config *params.CollectConfig) (*CollectResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	out := catz.NewFlatWithRoot(config.OutputDir)
	if err := out.MkdirAll(); err != nil {
		return nil, err
	}

	res := &CollectResult{}
	err := filepath.WalkDir(config.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), config.Extension) {
			return nil
		}
		duration, count, ok := names.ParseSceneStem(names.TrimExt(d.Name(), config.Extension))
		if !ok {
			return nil
		}
		if duration < config.MinDuration || count < config.MinCount {
			return nil
		}
		parent := filepath.Base(filepath.Dir(path))
		dst := out.Named(parent + "_" + d.Name())
		if err := catz.CopyFile(path, dst); err != nil {
			return err
		}
		res.Matched++
		res.Copied = append(res.Copied, dst)
		return nil
	})
	slog.Info("Collect done",
		"min.duration", config.MinDuration,
		"min.count", config.MinCount,
		"matched", res.Matched)
	if err != nil {
		return res, err
	}
	return res, nil
}

package api

import (
	"context"

	"github.com/rotblauer/trajmix/params"
)

type RunResult struct {
	Combine *CombineResult
	Crop    *CropResult
	Collect *CollectResult
}

// Run runs combine, crop and collect in order, each stage reading the
// previous stage's output directory.
func Run(ctx context.Context, config *params.RunConfig) (*RunResult, error) {
	config.Chain()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	res := &RunResult{}
	var err error
	if res.Combine, err = Combine(ctx, config.Combine); err != nil {
		return res, err
	}
	if config.Combine.DryRun {
		return res, nil
	}
	if res.Crop, err = Crop(ctx, config.Crop); err != nil {
		return res, err
	}
	if res.Collect, err = Collect(ctx, config.Collect); err != nil {
		return res, err
	}
	return res, nil
}

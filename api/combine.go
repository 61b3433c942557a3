package api

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/trajmix/catalog"
	"github.com/rotblauer/trajmix/params"
	"github.com/rotblauer/trajmix/partition"
	"github.com/rotblauer/trajmix/scene"
)

// CombineResult summarizes a Combine run.
type CombineResult struct {
	Catalogue []catalog.Entry
	Groups    []partition.Group
	// Total is the size of the combination space.
	Total *big.Int

	Combinations int
	Original     int
	Removed      int
	Kept         int

	// Written lists artifact paths in processing order.
	Written []string
}

// Combine catalogues the data directory, partitions it into groups,
// and writes one conflict-free merged scene per combination.
//
// Configuration errors, including a group smaller than the pick size,
// fail before any combination is processed. The first read, parse or
// write error aborts the run; artifacts already written stay on disk.
func Combine(ctx context.Context, config *params.CombineConfig) (*CombineResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	fingerprint, err := hashstructure.Hash(config, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, err
	}
	slog.Info("Combine",
		"data", config.DataDir, "out", config.OutputDir,
		"groups", config.GroupNum, "pick", config.PickPerGroup,
		"car.length", config.Vehicle.Length, "car.width", config.Vehicle.Width,
		"config", fmt.Sprintf("%016x", fingerprint))

	source := catalog.NewDirLoader(config.DataDir)
	loader, err := catalog.NewCachedLoader(source, config.Cache.Files)
	if err != nil {
		return nil, err
	}

	res := &CombineResult{}
	res.Catalogue, err = catalog.Build(ctx, source.Dir(), config.Eligibility, loader)
	if err != nil {
		return nil, err
	}
	res.Groups, err = partition.Partition(res.Catalogue, config.GroupNum)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", params.ErrInvalidConfig, err)
	}
	product, err := partition.NewProduct(res.Groups, config.PickPerGroup)
	if err != nil {
		return nil, err
	}
	res.Total = partition.Count(res.Groups, config.PickPerGroup)
	slog.Info("Combinations", "total", humanize.BigComma(res.Total))
	if config.DryRun {
		return res, nil
	}

	writer := scene.NewWriter(config.OutputDir, config.Eligibility.Extension)
	resolver := scene.NewResolver(config.Vehicle)
	meter := newRunMeter()
	defer meter.stop()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for combo := range product.Stream(streamCtx) {
		merged, err := scene.Merge(loader, combo.Files())
		if err != nil {
			return res, err
		}
		removed := scene.NewRemovalSet()
		stats := resolver.Resolve(scene.NewIndex(merged), merged, removed)
		filtered := scene.Filter(merged, removed)
		path, err := writer.Write(merged.Name, filtered)
		if err != nil {
			return res, err
		}

		res.Combinations++
		res.Original += merged.Len()
		res.Removed += removed.Len()
		res.Kept += filtered.Len()
		res.Written = append(res.Written, path)
		meter.mark(merged.Len(), removed.Len(), stats)

		slog.Info("Combined", "combo", merged.Name,
			"original", merged.Len(),
			"removed", removed.Len(),
			"kept", filtered.Len())
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if c, ok := loader.(*catalog.CachedLoader); ok {
		hits, misses := c.Stats()
		slog.Debug("Source cache", "hits", hits, "misses", misses)
	}
	meter.log()
	return res, nil
}

package api

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/montanaflynn/stats"
	"github.com/rotblauer/trajmix/common"
	"github.com/rotblauer/trajmix/scene"
)

// runMeter tallies a Combine run.
type runMeter struct {
	started time.Time
	reg     metrics.Registry

	vehicles  metrics.Counter
	removed   metrics.Counter
	compared  metrics.Counter
	conflicts metrics.Counter
	combos    metrics.Meter

	// ratios holds removed/original per combination.
	ratios []float64
}

func newRunMeter() *runMeter {
	metrics.Enabled = true
	m := &runMeter{
		started:   time.Now(),
		reg:       metrics.NewRegistry(),
		vehicles:  metrics.NewCounter(),
		removed:   metrics.NewCounter(),
		compared:  metrics.NewCounter(),
		conflicts: metrics.NewCounter(),
		combos:    metrics.NewMeter(),
	}
	for name, metric := range map[string]any{
		"vehicles.count":  m.vehicles,
		"removed.count":   m.removed,
		"compared.count":  m.compared,
		"conflicts.count": m.conflicts,
		"combo.meter":     m.combos,
	} {
		if err := m.reg.Register(name, metric); err != nil {
			panic(err)
		}
	}
	return m
}

func (m *runMeter) mark(original, removed int, resolved scene.ResolveStats) {
	m.vehicles.Inc(int64(original))
	m.removed.Inc(int64(removed))
	m.compared.Inc(int64(resolved.Compared))
	m.conflicts.Inc(int64(resolved.Conflicts))
	m.combos.Mark(1)
	m.ratios = append(m.ratios, common.Ratio(removed, original))
}

func (m *runMeter) log() {
	statsMustFloat := func(fn func() (float64, error)) float64 {
		out, err := fn()
		if err != nil {
			return 0
		}
		return common.DecimalToFixed(out, 3)
	}
	data := stats.Float64Data(m.ratios)
	combos := m.combos.Snapshot()
	slog.Info("Combine done",
		"combinations", humanize.Comma(combos.Count()),
		"vehicles", humanize.Comma(m.vehicles.Snapshot().Count()),
		"removed", humanize.Comma(m.removed.Snapshot().Count()),
		"compared", humanize.Comma(m.compared.Snapshot().Count()),
		"conflicts", humanize.Comma(m.conflicts.Snapshot().Count()),
		"removed.mean", statsMustFloat(data.Mean),
		"removed.median", statsMustFloat(data.Median),
		"removed.max", statsMustFloat(data.Max),
		"cps", common.DecimalToFixed(combos.RateMean(), 1),
		"running", time.Since(m.started).Round(time.Millisecond))
}

func (m *runMeter) stop() {
	m.combos.Stop()
}

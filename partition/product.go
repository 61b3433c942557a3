package partition

import (
	"context"

	"github.com/rotblauer/trajmix/catalog"
	"github.com/rotblauer/trajmix/stream"
)

// Product walks the cartesian product of every group's subsets without
// materializing it. The last group varies fastest.
type Product struct {
	groups  []Group
	iters   []*Subsets
	started bool
	done    bool
}

// NewProduct fails with ErrGroupTooSmall if any group has fewer than pick files.
func NewProduct(groups []Group, pick int) (*Product, error) {
	if err := Check(groups, pick); err != nil {
		return nil, err
	}
	p := &Product{groups: groups, iters: make([]*Subsets, len(groups))}
	for i, g := range groups {
		p.iters[i] = NewSubsets(len(g), pick)
	}
	return p, nil
}

// Reset rewinds to before the first combination.
func (p *Product) Reset() {
	p.started = false
	p.done = false
	for _, it := range p.iters {
		it.Reset()
	}
}

// Next advances to the next combination.
func (p *Product) Next() bool {
	if p.done {
		return false
	}
	if !p.started {
		p.started = true
		for _, it := range p.iters {
			if !it.Next() {
				p.done = true
				return false
			}
		}
		return true
	}
	for i := len(p.iters) - 1; i >= 0; i-- {
		if p.iters[i].Next() {
			return true
		}
		p.iters[i].Reset()
		p.iters[i].Next()
	}
	p.done = true
	return false
}

// Combination returns the current combination as a fresh value.
func (p *Product) Combination() Combination {
	c := Combination{Picks: make([][]catalog.Entry, len(p.groups))}
	for i, it := range p.iters {
		pick := make([]catalog.Entry, 0, len(it.Indices()))
		for _, j := range it.Indices() {
			pick = append(pick, p.groups[i][j])
		}
		c.Picks[i] = pick
	}
	return c
}

// Stream sends the remaining combinations until exhausted or ctx is done.
func (p *Product) Stream(ctx context.Context) <-chan Combination {
	return stream.Iterate(ctx, func() (Combination, bool) {
		if !p.Next() {
			return Combination{}, false
		}
		return p.Combination(), true
	})
}

// Package partition splits catalogued files into groups of similar size
// and enumerates combinations of picks from every group.
package partition

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/rotblauer/trajmix/catalog"
	"github.com/rotblauer/trajmix/conceptual"
	"github.com/rotblauer/trajmix/names"
)

var ErrGroupTooSmall = errors.New("group has fewer files than pick per group")

// Group is a contiguous run of the count-sorted catalogue.
type Group []catalog.Entry

// Partition assigns the entry at index i to group i*groupNum/len(entries).
// Groups are contiguous, disjoint, and cover every entry.
// With more groups than entries some groups are empty.
func Partition(entries []catalog.Entry, groupNum int) ([]Group, error) {
	if groupNum < 1 {
		return nil, fmt.Errorf("group number %d, want >= 1", groupNum)
	}
	groups := make([]Group, groupNum)
	for i, e := range entries {
		gid := i * groupNum / len(entries)
		groups[gid] = append(groups[gid], e)
	}
	for i, g := range groups {
		slog.Info("Grouped", "group", i+1, "size", len(g), "files", catalog.Names(g))
	}
	return groups, nil
}

// Check fails with ErrGroupTooSmall unless every group can supply pick files.
func Check(groups []Group, pick int) error {
	for i, g := range groups {
		if len(g) < pick {
			return fmt.Errorf("%w: group %d has %d, pick is %d", ErrGroupTooSmall, i+1, len(g), pick)
		}
	}
	return nil
}

// Count returns the number of combinations Product will yield.
func Count(groups []Group, pick int) *big.Int {
	total := big.NewInt(1)
	for _, g := range groups {
		total.Mul(total, new(big.Int).Binomial(int64(len(g)), int64(pick)))
	}
	return total
}

// Combination is one pick of files from every group, in group order.
type Combination struct {
	Picks [][]catalog.Entry
}

// Files flattens the picks into the order their vehicles are merged.
func (c Combination) Files() []string {
	out := []string{}
	for _, pick := range c.Picks {
		for _, e := range pick {
			out = append(out, e.Name)
		}
	}
	return out
}

func (c Combination) Name() conceptual.ComboName {
	return conceptual.ComboName(names.ComboName(c.Files()))
}

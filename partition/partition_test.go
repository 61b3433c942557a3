package partition

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rotblauer/trajmix/catalog"
	"github.com/rotblauer/trajmix/stream"
)

func entries(n int) []catalog.Entry {
	out := make([]catalog.Entry, n)
	for i := range out {
		out[i] = catalog.Entry{Name: fmt.Sprintf("%06d.json", i), Count: i}
	}
	return out
}

func sizes(groups []Group) []int {
	out := make([]int, len(groups))
	for i, g := range groups {
		out[i] = len(g)
	}
	return out
}

func TestPartitionSizes(t *testing.T) {
	cases := []struct {
		n, groups int
		want      []int
	}{
		{9, 3, []int{3, 3, 3}},
		{10, 3, []int{4, 3, 3}},
		{11, 3, []int{4, 4, 3}},
		{7, 5, []int{2, 1, 2, 1, 1}},
		{2, 3, []int{1, 1, 0}},
		{5, 1, []int{5}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_into_%d", c.n, c.groups), func(t *testing.T) {
			groups, err := Partition(entries(c.n), c.groups)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, sizes(groups)); diff != "" {
				t.Errorf("sizes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartitionDisjointExhaustive(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for g := 1; g <= 7; g++ {
			groups, err := Partition(entries(n), g)
			if err != nil {
				t.Fatal(err)
			}
			seen := map[string]bool{}
			total := 0
			var last string
			for _, grp := range groups {
				for _, e := range grp {
					if seen[e.Name] {
						t.Fatalf("n=%d g=%d: %s in two groups", n, g, e.Name)
					}
					if e.Name < last {
						t.Fatalf("n=%d g=%d: groups not contiguous", n, g)
					}
					seen[e.Name] = true
					last = e.Name
					total++
				}
			}
			if total != n {
				t.Fatalf("n=%d g=%d: got %d entries", n, g, total)
			}
		}
	}
}

func TestPartitionInvalidGroupNum(t *testing.T) {
	if _, err := Partition(entries(3), 0); err == nil {
		t.Error("expected error for zero groups")
	}
}

func TestSubsetsOrder(t *testing.T) {
	s := NewSubsets(4, 2)
	got := [][]int{}
	for s.Next() {
		got = append(got, append([]int(nil), s.Indices()...))
	}
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subsets (-want +got):\n%s", diff)
	}
	if s.Next() {
		t.Error("exhausted iterator advanced")
	}
	s.Reset()
	if !s.Next() || !cmp.Equal([]int{0, 1}, s.Indices()) {
		t.Errorf("reset did not rewind, got %v", s.Indices())
	}
}

func TestSubsetsTooFew(t *testing.T) {
	if NewSubsets(1, 2).Next() {
		t.Error("expected no subsets of size 2 from 1")
	}
}

func TestProductCount(t *testing.T) {
	groups, err := Partition(entries(9), 3)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewProduct(groups, 1)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for p.Next() {
		n++
	}
	if n != 27 {
		t.Errorf("got %d combinations, want 27", n)
	}
	if c := Count(groups, 1); c.Int64() != 27 {
		t.Errorf("Count got %v, want 27", c)
	}

	p.Reset()
	n = 0
	for p.Next() {
		n++
	}
	if n != 27 {
		t.Errorf("after reset got %d combinations, want 27", n)
	}
}

func TestProductOrder(t *testing.T) {
	groups, err := Partition(entries(6), 2)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewProduct(groups, 2)
	if err != nil {
		t.Fatal(err)
	}
	got := []string{}
	for p.Next() {
		got = append(got, string(p.Combination().Name()))
	}
	want := []string{
		"000000-000001-000003-000004",
		"000000-000001-000003-000005",
		"000000-000001-000004-000005",
		"000000-000002-000003-000004",
		"000000-000002-000003-000005",
		"000000-000002-000004-000005",
		"000001-000002-000003-000004",
		"000001-000002-000003-000005",
		"000001-000002-000004-000005",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if c := Count(groups, 2); c.Int64() != int64(len(want)) {
		t.Errorf("Count got %v", c)
	}
}

func TestProductGroupTooSmall(t *testing.T) {
	groups, err := Partition(entries(5), 3)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewProduct(groups, 2)
	if !errors.Is(err, ErrGroupTooSmall) {
		t.Errorf("got %v, want ErrGroupTooSmall", err)
	}
}

func TestProductStream(t *testing.T) {
	groups, err := Partition(entries(4), 2)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewProduct(groups, 1)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	got := stream.Collect(ctx, p.Stream(ctx))
	if len(got) != 4 {
		t.Fatalf("got %d combinations, want 4", len(got))
	}
	if diff := cmp.Diff([]string{"000001.json", "000003.json"}, got[3].Files()); diff != "" {
		t.Errorf("last combination (-want +got):\n%s", diff)
	}
}

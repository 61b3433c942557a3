package partition

// Subsets enumerates the k-element subsets of n indices in lexicographic
// order, each subset ascending. It holds only the current subset.
type Subsets struct {
	n, k    int
	idx     []int
	started bool
	done    bool
}

func NewSubsets(n, k int) *Subsets {
	return &Subsets{n: n, k: k, idx: make([]int, k)}
}

// Reset rewinds to before the first subset.
func (s *Subsets) Reset() {
	s.started = false
	s.done = false
}

// Next advances to the next subset, returning false when there are no more.
func (s *Subsets) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		if s.k > s.n || s.k < 0 {
			s.done = true
			return false
		}
		for i := range s.idx {
			s.idx[i] = i
		}
		return true
	}
	i := s.k - 1
	for i >= 0 && s.idx[i] == i+s.n-s.k {
		i--
	}
	if i < 0 {
		s.done = true
		return false
	}
	s.idx[i]++
	for j := i + 1; j < s.k; j++ {
		s.idx[j] = s.idx[j-1] + 1
	}
	return true
}

// Indices returns the current subset. The slice is reused by Next.
func (s *Subsets) Indices() []int {
	return s.idx
}

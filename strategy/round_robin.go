package strategy

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// RoundRobinPartition deals elements into k subsets in turn, element i
// going to subset i mod k. Dealing happens in index order, not permutation
// order, so the assignment is fully deterministic. When the domain holds
// fewer than k elements the result has one singleton subset per element.
type RoundRobinPartition struct {
	k int
}

var _ skipta.Indexer = (*RoundRobinPartition)(nil)

// NewRoundRobinPartition creates a round-robin partition into k subsets.
// k must be at least one.
func NewRoundRobinPartition(k int) (*RoundRobinPartition, error) {
	if k < 1 {
		return nil, errors.New("round robin subset count must be at least one").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("k", k)
	}
	return &RoundRobinPartition{k: k}, nil
}

func (s *RoundRobinPartition) Name() string {
	return "round_robin"
}

func (s *RoundRobinPartition) PartitionIndices(_ skipta.Permuter, d skipta.Domain) ([][]int, error) {
	n := d.Len()

	k := s.k
	if k > n {
		k = n
	}

	subsets := make([][]int, k)
	for b := range subsets {
		subsets[b] = make([]int, 0, (n+k-1-b)/k)
	}
	for i := 0; i < n; i++ {
		subsets[i%k] = append(subsets[i%k], i)
	}
	return subsets, nil
}

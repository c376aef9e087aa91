package strategy

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// UniformPartition splits elements into k subsets of near-equal size. With
// shuffling enabled the engine's permutation order is chunked, so subset
// membership is random; without it elements are chunked in index order.
// When the domain holds fewer than k elements the result has one singleton
// subset per element.
type UniformPartition struct {
	k       int
	shuffle bool
}

var _ skipta.Indexer = (*UniformPartition)(nil)

// NewUniformPartition creates a uniform partition into k subsets. k must be
// at least one.
func NewUniformPartition(k int, shuffle bool) (*UniformPartition, error) {
	if k < 1 {
		return nil, errors.New("uniform subset count must be at least one").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("k", k)
	}
	return &UniformPartition{k: k, shuffle: shuffle}, nil
}

func (s *UniformPartition) Name() string {
	return "uniform"
}

func (s *UniformPartition) PartitionIndices(p skipta.Permuter, d skipta.Domain) ([][]int, error) {
	n := d.Len()

	var order []int
	if s.shuffle {
		order = p.Perm(n)
	} else {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}

	k := s.k
	if k > n {
		k = n
	}

	// The first n%k subsets take one extra element.
	base, rem := n/k, n%k
	subsets := make([][]int, 0, k)
	at := 0
	for b := 0; b < k; b++ {
		size := base
		if b < rem {
			size++
		}
		subsets = append(subsets, order[at:at+size])
		at += size
	}
	return subsets, nil
}

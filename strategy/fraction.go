package strategy

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// FractionPartition splits elements into two subsets at a fraction of the
// element count. With shuffling enabled the split happens over the engine's
// permutation order, so membership is random; without it the first subset
// is the leading fraction of the index order. The fraction of a small
// domain can truncate to zero elements, in which case the result collapses
// to a single subset.
type FractionPartition struct {
	fraction float64
	shuffle  bool
}

var _ skipta.Indexer = (*FractionPartition)(nil)

// NewFractionPartition creates a fraction partition. The fraction must lie
// in (0, 1).
func NewFractionPartition(fraction float64, shuffle bool) (*FractionPartition, error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, errors.New("fraction must lie strictly between zero and one").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("fraction", fraction)
	}
	return &FractionPartition{fraction: fraction, shuffle: shuffle}, nil
}

func (s *FractionPartition) Name() string {
	return "fraction"
}

func (s *FractionPartition) PartitionIndices(p skipta.Permuter, d skipta.Domain) ([][]int, error) {
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

	cut := int(s.fraction * float64(n))
	if cut < 1 || cut >= n {
		return [][]int{order}, nil
	}
	return [][]int{order[:cut], order[cut:]}, nil
}

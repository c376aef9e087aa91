package strategy

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// ProductPartition groups elements that share a subset in both of two
// strategies' partitions. The two partitions are computed independently
// with the engine's permuter, then intersected; intersection subsets appear
// in the order their first element is visited.
type ProductPartition struct {
	first  skipta.Strategy
	second skipta.Strategy
}

var _ skipta.Indexer = (*ProductPartition)(nil)

// NewProductPartition creates the product of two strategies.
func NewProductPartition(first, second skipta.Strategy) (*ProductPartition, error) {
	if first == nil || second == nil {
		return nil, errors.New("product partition requires two strategies").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	return &ProductPartition{first: first, second: second}, nil
}

func (s *ProductPartition) Name() string {
	return "product"
}

func (s *ProductPartition) PartitionIndices(p skipta.Permuter, d skipta.Domain) ([][]int, error) {
	first, err := subsetOf(s.first, p, d)
	if err != nil {
		return nil, err
	}
	second, err := subsetOf(s.second, p, d)
	if err != nil {
		return nil, err
	}

	type pair struct{ a, b int }

	bucket := make(map[pair]int)
	var subsets [][]int

	for _, i := range p.Perm(d.Len()) {
		k := pair{first[i], second[i]}
		b, ok := bucket[k]
		if !ok {
			b = len(subsets)
			bucket[k] = b
			subsets = append(subsets, nil)
		}
		subsets[b] = append(subsets[b], i)
	}
	return subsets, nil
}

// subsetOf maps every element index to the index of its subset under the
// given strategy.
func subsetOf(s skipta.Strategy, p skipta.Permuter, d skipta.Domain) ([]int, error) {
	pr, err := skipta.NewPartitioner(s, skipta.WithPermuter(p))
	if err != nil {
		return nil, err
	}
	part, err := pr.Partition(d)
	if err != nil {
		return nil, err
	}

	owner := make([]int, d.Len())
	for b, subset := range part.Subsets() {
		for _, i := range subset {
			owner[i] = b
		}
	}
	return owner, nil
}

// HierarchicalPartition applies an outer strategy to the whole domain, then
// an inner strategy to each resulting subset. Subsets appear grouped by
// outer subset, each group in the inner strategy's creation order.
type HierarchicalPartition struct {
	outer skipta.Strategy
	inner skipta.Strategy
}

var _ skipta.Indexer = (*HierarchicalPartition)(nil)

// NewHierarchicalPartition creates a two-level partition with an outer and
// an inner strategy.
func NewHierarchicalPartition(outer, inner skipta.Strategy) (*HierarchicalPartition, error) {
	if outer == nil || inner == nil {
		return nil, errors.New("hierarchical partition requires an outer and an inner strategy").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	return &HierarchicalPartition{outer: outer, inner: inner}, nil
}

func (s *HierarchicalPartition) Name() string {
	return "hierarchical"
}

func (s *HierarchicalPartition) PartitionIndices(p skipta.Permuter, d skipta.Domain) ([][]int, error) {
	outer, err := skipta.NewPartitioner(s.outer, skipta.WithPermuter(p))
	if err != nil {
		return nil, err
	}
	inner, err := skipta.NewPartitioner(s.inner, skipta.WithPermuter(p))
	if err != nil {
		return nil, err
	}

	op, err := outer.Partition(d)
	if err != nil {
		return nil, err
	}

	// Each view is itself a domain, so the inner strategy partitions it
	// directly; its local indices translate back through the view.
	var subsets [][]int
	for _, view := range op.Views() {
		ip, err := inner.Partition(view)
		if err != nil {
			return nil, err
		}

		global := view.Indices()
		for _, local := range ip.Subsets() {
			subset := make([]int, len(local))
			for k, li := range local {
				subset[k] = global[li]
			}
			subsets = append(subsets, subset)
		}
	}
	return subsets, nil
}

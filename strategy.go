package skipta

// Strategy is the base capability of every partitioning strategy. On its own
// it only names the strategy; partitionable strategies additionally implement
// one of the three shapes below. A Strategy implementing none of them is an
// extension point only: handing it to a Partitioner fails with a
// not-implemented error.
type Strategy interface {
	// Returns the strategy name, used in logs and metric labels.
	Name() string
}

// IndexPredicate is a strategy expressed as a pairwise test on raw element
// indices. Compatible reports whether elements i and j belong in the same
// subset. It must be pure; it is not required to be symmetric or transitive,
// but strategies approximating equivalence classes should be effectively
// symmetric.
type IndexPredicate interface {
	Strategy
	Compatible(i, j int) bool
}

// PointPredicate is a strategy expressed as a pairwise test on pre-extracted
// coordinate vectors. CompatiblePoints reports whether two elements with
// coordinates x and y belong in the same subset. The buffers are owned by
// the caller and reused across evaluations; implementations must not retain
// them.
type PointPredicate interface {
	Strategy
	CompatiblePoints(x, y Point) bool
}

// Indexer is a strategy that computes the whole subset list directly instead
// of answering pairwise tests. PartitionIndices must return a partition of
// [0, d.Len()): every index exactly once, no empty subset. The permuter is
// the engine's injected randomness source.
type Indexer interface {
	Strategy
	PartitionIndices(p Permuter, d Domain) ([][]int, error)
}

// Dimensioned is implemented by strategies that fix a coordinate
// dimensionality. The engine checks it against the domain before
// partitioning starts rather than at the first coordinate comparison.
type Dimensioned interface {
	Dimension() int
}

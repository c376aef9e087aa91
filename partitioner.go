package skipta

import (
	"math/rand"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Permuter generates uniformly random permutations. It decides the order in
// which the engine processes elements, and with it which bucket an element
// lands in when several would accept it. *rand.Rand satisfies Permuter.
type Permuter interface {
	// Returns a permutation of the integers [0, n).
	Perm(n int) []int
}

type globalPermuter struct{}

func (globalPermuter) Perm(n int) []int {
	return rand.Perm(n)
}

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithPermuter sets the permutation source. Handing in a fixed permuter
// makes partitioning fully deterministic.
func WithPermuter(p Permuter) Option {
	return func(pr *Partitioner) {
		pr.permuter = p
	}
}

// WithSeed sets a seeded permutation source. Equal seeds yield equal
// processing orders and therefore equal partitions.
func WithSeed(seed int64) Option {
	return func(pr *Partitioner) {
		pr.permuter = rand.New(rand.NewSource(seed))
	}
}

// Partitioner runs the greedy single-pass partitioning algorithm for one
// strategy. Each Partition call allocates its own working buffers, so a
// Partitioner with a concurrency-safe permuter may be shared; the default
// permuter is safe.
type Partitioner struct {
	strategy Strategy
	permuter Permuter
}

// NewPartitioner creates a partitioner for the given strategy. The strategy
// must implement one of the Indexer, IndexPredicate or PointPredicate
// shapes; this is checked when Partition is invoked, so that strategy types
// used purely as extension points fail with a descriptive error rather than
// at construction.
func NewPartitioner(s Strategy, opts ...Option) (*Partitioner, error) {
	if s == nil {
		return nil, errors.New("strategy is required").
			WithType(ErrTypeInvalidStrategy)
	}

	pr := &Partitioner{
		strategy: s,
		permuter: globalPermuter{},
	}
	for _, opt := range opts {
		opt(pr)
	}
	return pr, nil
}

// Partition partitions the domain into disjoint, exhaustive index subsets.
//
// Elements are visited in a random permutation order. Each element is
// compared against the first-inserted representative of every existing
// bucket, in bucket creation order, and joins the first bucket whose
// representative it is compatible with; if none accepts it, a new bucket is
// appended. Comparing only against representatives keeps the pass at
// O(n*buckets), at the price of a weaker guarantee: members are only known
// to be compatible with their bucket's representative, not pairwise.
// Strategies must be designed so this check yields the intended grouping.
//
// An empty domain yields a valid partition with zero subsets.
func (pr *Partitioner) Partition(d Domain) (*Partition, error) {
	if d == nil {
		return nil, errors.New("domain is required").
			WithType(ErrTypeInvalidDomain)
	}

	start := time.Now()

	n := d.Len()
	if n == 0 {
		p := newPartition(d, nil)
		instrumentPartition(pr.strategy.Name(), 0, time.Since(start))
		return p, nil
	}

	if ds, ok := pr.strategy.(Dimensioned); ok && ds.Dimension() != d.Dimension() {
		return nil, errors.New("strategy dimension does not match domain dimension").
			WithType(ErrTypeDimensionMismatch).
			WithTag("strategy", pr.strategy.Name()).
			WithTag("strategy_dimension", ds.Dimension()).
			WithTag("domain_dimension", d.Dimension())
	}

	var subsets [][]int
	var err error

	switch s := pr.strategy.(type) {
	case Indexer:
		subsets, err = s.PartitionIndices(pr.permuter, d)
		if err == nil {
			err = checkPartitionIndices(pr.strategy.Name(), subsets, n)
		}

	case IndexPredicate:
		subsets = pr.partitionByIndex(s, n)

	case PointPredicate:
		subsets, err = pr.partitionByPoint(s, d)

	default:
		err = errors.New("strategy does not implement a partitioning shape").
			WithType(ErrTypeNotImplemented).
			WithTag("strategy", pr.strategy.Name())
	}

	if err != nil {
		return nil, err
	}

	p := newPartition(d, subsets)
	instrumentPartition(pr.strategy.Name(), len(subsets), time.Since(start))
	return p, nil
}

func (pr *Partitioner) partitionByIndex(pred IndexPredicate, n int) [][]int {
	var subsets [][]int

	for _, i := range pr.permuter.Perm(n) {
		assigned := false
		for b := range subsets {
			if pred.Compatible(i, subsets[b][0]) {
				subsets[b] = append(subsets[b], i)
				assigned = true
				break
			}
		}
		if !assigned {
			subsets = append(subsets, []int{i})
		}
	}

	return subsets
}

func (pr *Partitioner) partitionByPoint(pred PointPredicate, d Domain) ([][]int, error) {
	var subsets [][]int

	// x and y are reused across the whole pass; y is refilled with the
	// bucket representative's coordinates before every comparison.
	x := make(Point, d.Dimension())
	y := make(Point, d.Dimension())

	for _, i := range pr.permuter.Perm(d.Len()) {
		if err := d.CoordinatesAt(x, i); err != nil {
			return nil, err
		}

		assigned := false
		for b := range subsets {
			if err := d.CoordinatesAt(y, subsets[b][0]); err != nil {
				return nil, err
			}
			if pred.CompatiblePoints(x, y) {
				subsets[b] = append(subsets[b], i)
				assigned = true
				break
			}
		}
		if !assigned {
			subsets = append(subsets, []int{i})
		}
	}

	return subsets, nil
}

// checkPartitionIndices verifies that an Indexer result is a partition of
// [0, n): every index exactly once, no empty subset.
func checkPartitionIndices(strategy string, subsets [][]int, n int) error {
	seen := make([]bool, n)
	total := 0

	for b, subset := range subsets {
		if len(subset) == 0 {
			return errors.New("strategy produced an empty subset").
				WithType(ErrTypeInvalidStrategy).
				WithTag("strategy", strategy).
				WithTag("subset", b)
		}
		for _, i := range subset {
			if i < 0 || i >= n {
				return errors.New("strategy produced an out of range index").
					WithType(ErrTypeInvalidStrategy).
					WithTag("strategy", strategy).
					WithTag("index", i).
					WithTag("len", n)
			}
			if seen[i] {
				return errors.New("strategy assigned an index to multiple subsets").
					WithType(ErrTypeInvalidStrategy).
					WithTag("strategy", strategy).
					WithTag("index", i)
			}
			seen[i] = true
			total++
		}
	}

	if total != n {
		return errors.New("strategy did not assign every index").
			WithType(ErrTypeInvalidStrategy).
			WithTag("strategy", strategy).
			WithTag("assigned", total).
			WithTag("len", n)
	}
	return nil
}

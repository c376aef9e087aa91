package strategy

import (
	"math"
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// BisectPointPartition splits elements into the two sides of the hyperplane
// through a fixed point with a fixed normal. Elements exactly on the plane
// count as the side the normal points to, so the result has at most two
// subsets.
type BisectPointPartition struct {
	normal skipta.Point
	point  skipta.Point
}

var _ skipta.PointPredicate = (*BisectPointPartition)(nil)

// NewBisectPointPartition creates a bisection at the hyperplane through
// point with the given normal. The normal must have nonzero magnitude and
// the point must share its dimension.
func NewBisectPointPartition(normal, point skipta.Point) (*BisectPointPartition, error) {
	if len(normal) == 0 {
		return nil, errors.New("bisect normal is required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if normal.Norm() == 0 {
		return nil, errors.New("bisect normal must have nonzero magnitude").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if len(point) != len(normal) {
		return nil, errors.New("bisect point and normal must share a dimension").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("normal_dimension", len(normal)).
			WithTag("point_dimension", len(point))
	}

	return &BisectPointPartition{
		normal: normal.Normalized(),
		point:  point.Clone(),
	}, nil
}

func (s *BisectPointPartition) Name() string {
	return "bisect_point"
}

// Dimension returns the dimensionality fixed by the normal.
func (s *BisectPointPartition) Dimension() int {
	return len(s.normal)
}

func (s *BisectPointPartition) side(x skipta.Point) bool {
	var dot float64
	for c := range s.normal {
		dot += (x[c] - s.point[c]) * s.normal[c]
	}
	return dot >= 0
}

func (s *BisectPointPartition) CompatiblePoints(x, y skipta.Point) bool {
	return s.side(x) == s.side(y)
}

// BisectFractionPartition splits elements into two subsets along a normal.
// Ordered by their projection onto the normal, the lowest fraction of
// elements forms the first subset and the rest the second. Splitting the
// projection order instead of bisecting space makes the split exact for any
// element distribution. Splits that would leave a subset empty collapse to
// a single subset.
type BisectFractionPartition struct {
	normal   skipta.Point
	fraction float64
}

var _ skipta.Indexer = (*BisectFractionPartition)(nil)

// NewBisectFractionPartition creates a bisection at the given fraction of
// the element order along the normal. The normal must have nonzero
// magnitude and the fraction must lie in (0, 1).
func NewBisectFractionPartition(normal skipta.Point, fraction float64) (*BisectFractionPartition, error) {
	if len(normal) == 0 {
		return nil, errors.New("bisect normal is required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if normal.Norm() == 0 {
		return nil, errors.New("bisect normal must have nonzero magnitude").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, errors.New("bisect fraction must lie strictly between zero and one").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("fraction", fraction)
	}

	return &BisectFractionPartition{
		normal:   normal.Normalized(),
		fraction: fraction,
	}, nil
}

func (s *BisectFractionPartition) Name() string {
	return "bisect_fraction"
}

// Dimension returns the dimensionality fixed by the normal.
func (s *BisectFractionPartition) Dimension() int {
	return len(s.normal)
}

func (s *BisectFractionPartition) PartitionIndices(_ skipta.Permuter, d skipta.Domain) ([][]int, error) {
	n := d.Len()

	proj := make([]float64, n)
	buf := make(skipta.Point, d.Dimension())
	for i := 0; i < n; i++ {
		if err := d.CoordinatesAt(buf, i); err != nil {
			return nil, err
		}
		proj[i] = buf.Dot(s.normal)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return proj[order[a]] < proj[order[b]]
	})

	cut := int(math.Round(s.fraction * float64(n)))
	if cut <= 0 || cut >= n {
		return [][]int{order}, nil
	}
	return [][]int{order[:cut], order[cut:]}, nil
}

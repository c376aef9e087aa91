package strategy

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// DefaultTolerance is the tolerance used by constructors that do not take an
// explicit one.
const DefaultTolerance = 1e-6

// PlanePartition groups elements lying in the same tolerance band orthogonal
// to a fixed normal. Two elements pair when the projection of their
// difference onto the normal is strictly smaller than the tolerance:
//
//	|dot(x-y, n)| < tol
//
// The normal is normalized once at construction, so the projection is the
// geometric distance between the parallel hyperplanes through x and y.
// Band membership is transitive along the normal, which makes the engine's
// representative-only comparison exact for this strategy.
type PlanePartition struct {
	normal    skipta.Point
	tolerance float64
}

var _ skipta.PointPredicate = (*PlanePartition)(nil)

// NewPlanePartition creates a plane partition with DefaultTolerance.
func NewPlanePartition(normal skipta.Point) (*PlanePartition, error) {
	return NewPlanePartitionWithTolerance(normal, DefaultTolerance)
}

// NewPlanePartitionWithTolerance creates a plane partition with an explicit
// tolerance. The normal must have nonzero magnitude and the tolerance must
// not be negative. A zero tolerance is accepted but degenerate: the strict
// comparison then pairs no two elements.
func NewPlanePartitionWithTolerance(normal skipta.Point, tolerance float64) (*PlanePartition, error) {
	if len(normal) == 0 {
		return nil, errors.New("plane normal is required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if normal.Norm() == 0 {
		return nil, errors.New("plane normal must have nonzero magnitude").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if tolerance < 0 {
		return nil, errors.New("plane tolerance must not be negative").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("tolerance", tolerance)
	}

	return &PlanePartition{
		normal:    normal.Normalized(),
		tolerance: tolerance,
	}, nil
}

func (s *PlanePartition) Name() string {
	return "plane"
}

// Dimension returns the dimensionality fixed by the normal.
func (s *PlanePartition) Dimension() int {
	return len(s.normal)
}

// Normal returns a copy of the unit normal.
func (s *PlanePartition) Normal() skipta.Point {
	return s.normal.Clone()
}

func (s *PlanePartition) Tolerance() float64 {
	return s.tolerance
}

func (s *PlanePartition) CompatiblePoints(x, y skipta.Point) bool {
	var dot float64
	for c := range s.normal {
		dot += (x[c] - y[c]) * s.normal[c]
	}
	return math.Abs(dot) < s.tolerance
}

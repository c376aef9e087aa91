package strategy

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// DirectionPartition groups elements aligned along a fixed direction. Two
// elements pair when the component of their difference orthogonal to the
// direction has magnitude strictly smaller than the tolerance, i.e. when
// both lie in a tube of that radius around a common axis.
type DirectionPartition struct {
	direction skipta.Point
	tolerance float64
}

var _ skipta.PointPredicate = (*DirectionPartition)(nil)

// NewDirectionPartition creates a direction partition with DefaultTolerance.
func NewDirectionPartition(direction skipta.Point) (*DirectionPartition, error) {
	return NewDirectionPartitionWithTolerance(direction, DefaultTolerance)
}

// NewDirectionPartitionWithTolerance creates a direction partition with an
// explicit tolerance. The direction must have nonzero magnitude and the
// tolerance must not be negative.
func NewDirectionPartitionWithTolerance(direction skipta.Point, tolerance float64) (*DirectionPartition, error) {
	if len(direction) == 0 {
		return nil, errors.New("direction is required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if direction.Norm() == 0 {
		return nil, errors.New("direction must have nonzero magnitude").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	if tolerance < 0 {
		return nil, errors.New("direction tolerance must not be negative").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("tolerance", tolerance)
	}

	return &DirectionPartition{
		direction: direction.Normalized(),
		tolerance: tolerance,
	}, nil
}

func (s *DirectionPartition) Name() string {
	return "direction"
}

// Dimension returns the dimensionality fixed by the direction.
func (s *DirectionPartition) Dimension() int {
	return len(s.direction)
}

// Direction returns a copy of the unit direction.
func (s *DirectionPartition) Direction() skipta.Point {
	return s.direction.Clone()
}

func (s *DirectionPartition) Tolerance() float64 {
	return s.tolerance
}

func (s *DirectionPartition) CompatiblePoints(x, y skipta.Point) bool {
	var dot, sq float64
	for c := range s.direction {
		d := x[c] - y[c]
		dot += d * s.direction[c]
		sq += d * d
	}

	// |perp|^2 = |x-y|^2 - dot^2 for a unit direction; rounding can push
	// it slightly below zero.
	perp := sq - dot*dot
	if perp < 0 {
		perp = 0
	}
	return math.Sqrt(perp) < s.tolerance
}

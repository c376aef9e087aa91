package strategy

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// BlockPartition groups elements falling into the same block of a lattice
// with fixed per-axis side lengths, anchored at the origin. Two elements
// pair when every coordinate lands in the same lattice interval. Block
// membership is an equivalence, so the engine's representative-only
// comparison is exact for this strategy.
type BlockPartition struct {
	sides skipta.Point
}

var _ skipta.PointPredicate = (*BlockPartition)(nil)

// NewBlockPartition creates a block partition with the given per-axis side
// lengths. Every side must be positive.
func NewBlockPartition(sides skipta.Point) (*BlockPartition, error) {
	if len(sides) == 0 {
		return nil, errors.New("block sides are required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}
	for a, side := range sides {
		if side <= 0 {
			return nil, errors.New("block sides must be positive").
				WithType(skipta.ErrTypeInvalidStrategy).
				WithTag("axis", a).
				WithTag("side", side)
		}
	}

	return &BlockPartition{sides: sides.Clone()}, nil
}

func (s *BlockPartition) Name() string {
	return "block"
}

// Dimension returns the dimensionality fixed by the side lengths.
func (s *BlockPartition) Dimension() int {
	return len(s.sides)
}

// Sides returns a copy of the per-axis side lengths.
func (s *BlockPartition) Sides() skipta.Point {
	return s.sides.Clone()
}

func (s *BlockPartition) CompatiblePoints(x, y skipta.Point) bool {
	for c := range s.sides {
		if math.Floor(x[c]/s.sides[c]) != math.Floor(y[c]/s.sides[c]) {
			return false
		}
	}
	return true
}

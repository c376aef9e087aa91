package skipta

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// RegularGrid is a uniformly subdivided lattice domain. Elements are cell
// centers; their coordinates are computed from the cell index, so the grid
// stores no point data. The first axis varies fastest: element i lives in
// cell (i % counts[0], (i / counts[0]) % counts[1], ...).
type RegularGrid struct {
	origin  Point
	spacing Point
	counts  []int
	len     int
}

// NewRegularGrid creates a grid with the given origin corner, per-axis cell
// size and per-axis cell count. All three must have the same length; spacing
// must be positive and counts at least one on every axis.
func NewRegularGrid(origin Point, spacing Point, counts ...int) (*RegularGrid, error) {
	if len(counts) == 0 {
		return nil, errors.New("grid must have at least one axis").
			WithType(ErrTypeInvalidDomain)
	}
	if len(origin) != len(counts) || len(spacing) != len(counts) {
		return nil, errors.New("grid origin, spacing and counts must share a dimension").
			WithType(ErrTypeInvalidDomain).
			WithTag("origin_dimension", len(origin)).
			WithTag("spacing_dimension", len(spacing)).
			WithTag("axes", len(counts))
	}

	total := 1
	for a := range counts {
		if counts[a] < 1 {
			return nil, errors.New("grid cell count must be at least one").
				WithType(ErrTypeInvalidDomain).
				WithTag("axis", a).
				WithTag("count", counts[a])
		}
		if spacing[a] <= 0 {
			return nil, errors.New("grid spacing must be positive").
				WithType(ErrTypeInvalidDomain).
				WithTag("axis", a).
				WithTag("spacing", spacing[a])
		}
		total *= counts[a]
	}

	return &RegularGrid{
		origin:  origin.Clone(),
		spacing: spacing.Clone(),
		counts:  append([]int{}, counts...),
		len:     total,
	}, nil
}

func (g *RegularGrid) Len() int {
	return g.len
}

func (g *RegularGrid) Dimension() int {
	return len(g.counts)
}

func (g *RegularGrid) CoordinatesAt(dst Point, i int) error {
	if err := checkCoordinateArgs(g, dst, i); err != nil {
		return err
	}
	for a := range g.counts {
		cell := i % g.counts[a]
		i /= g.counts[a]
		dst[a] = g.origin[a] + (float64(cell)+0.5)*g.spacing[a]
	}
	return nil
}

// Counts returns the per-axis cell counts.
func (g *RegularGrid) Counts() []int {
	return append([]int{}, g.counts...)
}

// Bounds returns the min and max corners covered by the grid.
func (g *RegularGrid) Bounds() (Point, Point) {
	min := g.origin.Clone()
	max := make(Point, len(g.counts))
	for a := range g.counts {
		max[a] = g.origin[a] + float64(g.counts[a])*g.spacing[a]
	}
	return min, max
}

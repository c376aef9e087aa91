package skipta

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// PointSet is an ordered, immutable sequence of fixed-dimension coordinate
// vectors. It is the minimal concrete Domain.
type PointSet struct {
	dim    int
	coords []float64
}

// NewPointSet creates a point set from the given points. All points must
// share the same nonzero dimension. Coordinates are copied; later changes to
// the input do not affect the set.
func NewPointSet(points ...Point) (*PointSet, error) {
	if len(points) == 0 {
		return &PointSet{}, nil
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, errors.New("points must have at least one coordinate").
			WithType(ErrTypeInvalidDomain)
	}

	coords := make([]float64, 0, len(points)*dim)
	for i, p := range points {
		if len(p) != dim {
			return nil, errors.New("points do not share a common dimension").
				WithType(ErrTypeInvalidDomain).
				WithTag("index", i).
				WithTag("dimension", dim).
				WithTag("point_dimension", len(p))
		}
		coords = append(coords, p...)
	}

	return &PointSet{dim: dim, coords: coords}, nil
}

// NewPointSetFromMatrix creates a point set from a dim x n matrix stored
// column-major, each column being one point.
func NewPointSetFromMatrix(dim int, data []float64) (*PointSet, error) {
	if dim <= 0 {
		return nil, errors.New("matrix dimension must be positive").
			WithType(ErrTypeInvalidDomain).
			WithTag("dimension", dim)
	}
	if len(data)%dim != 0 {
		return nil, errors.New("matrix data length is not a multiple of the dimension").
			WithType(ErrTypeInvalidDomain).
			WithTag("data_len", len(data)).
			WithTag("dimension", dim)
	}

	coords := make([]float64, len(data))
	copy(coords, data)

	return &PointSet{dim: dim, coords: coords}, nil
}

func (s *PointSet) Len() int {
	if s.dim == 0 {
		return 0
	}
	return len(s.coords) / s.dim
}

func (s *PointSet) Dimension() int {
	return s.dim
}

func (s *PointSet) CoordinatesAt(dst Point, i int) error {
	if err := checkCoordinateArgs(s, dst, i); err != nil {
		return err
	}
	copy(dst, s.coords[i*s.dim:(i+1)*s.dim])
	return nil
}

// At returns a copy of the coordinates of the element at index i.
func (s *PointSet) At(i int) (Point, error) {
	p := make(Point, s.dim)
	if err := s.CoordinatesAt(p, i); err != nil {
		return nil, err
	}
	return p, nil
}

package strategy

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/stretchr/testify/require"
)

// quadrants is a point set with two x bands and two y bands.
func quadrants(t *testing.T) *skipta.PointSet {
	t.Helper()

	return testPointSet(t,
		skipta.NewPoint(0, 0),
		skipta.NewPoint(0, 5),
		skipta.NewPoint(5, 0),
		skipta.NewPoint(5, 5),
		skipta.NewPoint(0.1, 0.1),
	)
}

func TestNewProductPartition(t *testing.T) {
	plane, err := NewPlanePartition(skipta.NewPoint(1, 0))
	require.NoError(t, err)

	t.Run("two strategies are required", func(t *testing.T) {
		_, err := NewProductPartition(nil, plane)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))

		_, err = NewProductPartition(plane, nil)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("accessors", func(t *testing.T) {
		s, err := NewProductPartition(plane, plane)
		require.NoError(t, err)
		require.Equal(t, "product", s.Name())
	})
}

func TestProductPartitionQuadrants(t *testing.T) {
	xBands, err := NewPlanePartitionWithTolerance(skipta.NewPoint(1, 0), 0.5)
	require.NoError(t, err)
	yBands, err := NewPlanePartitionWithTolerance(skipta.NewPoint(0, 1), 0.5)
	require.NoError(t, err)

	product, err := NewProductPartition(xBands, yBands)
	require.NoError(t, err)

	s := quadrants(t)
	p := partitionWith(t, product, s, skipta.WithSeed(4))
	require.Equal(t, 4, p.Len())
	requireIsPartition(t, p, s.Len())

	// the two near-origin points share a quadrant:
	for _, subset := range p.Subsets() {
		contains0, contains4 := false, false
		for _, i := range subset {
			if i == 0 {
				contains0 = true
			}
			if i == 4 {
				contains4 = true
			}
		}
		require.True(t, contains0 == contains4)
	}
}

func TestProductPartitionPropagatesErrors(t *testing.T) {
	plane3d, err := NewPlanePartition(skipta.NewPoint(1, 0, 0))
	require.NoError(t, err)
	plane2d, err := NewPlanePartition(skipta.NewPoint(1, 0))
	require.NoError(t, err)

	product, err := NewProductPartition(plane2d, plane3d)
	require.NoError(t, err)

	pr, err := skipta.NewPartitioner(product)
	require.NoError(t, err)

	_, err = pr.Partition(quadrants(t))
	require.Error(t, err)
	require.True(t, errors.IsType(err, skipta.ErrTypeDimensionMismatch))
}

func TestNewHierarchicalPartition(t *testing.T) {
	plane, err := NewPlanePartition(skipta.NewPoint(1, 0))
	require.NoError(t, err)

	t.Run("both levels are required", func(t *testing.T) {
		_, err := NewHierarchicalPartition(nil, plane)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))

		_, err = NewHierarchicalPartition(plane, nil)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("accessors", func(t *testing.T) {
		s, err := NewHierarchicalPartition(plane, plane)
		require.NoError(t, err)
		require.Equal(t, "hierarchical", s.Name())
	})
}

func TestHierarchicalPartitionQuadrants(t *testing.T) {
	xBands, err := NewPlanePartitionWithTolerance(skipta.NewPoint(1, 0), 0.5)
	require.NoError(t, err)
	yBands, err := NewPlanePartitionWithTolerance(skipta.NewPoint(0, 1), 0.5)
	require.NoError(t, err)

	hier, err := NewHierarchicalPartition(xBands, yBands)
	require.NoError(t, err)

	s := quadrants(t)
	p := partitionWith(t, hier, s, skipta.WithSeed(6))
	require.Equal(t, 4, p.Len())
	requireIsPartition(t, p, s.Len())
}

func TestHierarchicalPartitionInnerSplit(t *testing.T) {
	// one x band, split in two by the inner uniform strategy:
	xBands, err := NewPlanePartitionWithTolerance(skipta.NewPoint(1, 0), 0.5)
	require.NoError(t, err)
	halves, err := NewUniformPartition(2, false)
	require.NoError(t, err)

	hier, err := NewHierarchicalPartition(xBands, halves)
	require.NoError(t, err)

	s := testPointSet(t,
		skipta.NewPoint(0, 0),
		skipta.NewPoint(0, 1),
		skipta.NewPoint(0, 2),
		skipta.NewPoint(0, 3),
	)

	p := partitionWith(t, hier, s, skipta.WithSeed(8))
	require.Equal(t, 2, p.Len())
	requireIsPartition(t, p, s.Len())

	for _, subset := range p.Subsets() {
		require.Len(t, subset, 2)
	}
}

package strategy

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	x := skipta.NewPoint(0, 0)
	y := skipta.NewPoint(3, -4)

	require.True(t, Euclidean(x, y) == 5)
	require.True(t, Manhattan(x, y) == 7)
	require.True(t, Chebyshev(x, y) == 4)
	require.True(t, Euclidean(x, x) == 0)
}

func TestNewBallPartition(t *testing.T) {
	t.Run("a non positive radius is rejected", func(t *testing.T) {
		_, err := NewBallPartition(0)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))

		_, err = NewBallPartition(-1)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("a metric is required", func(t *testing.T) {
		_, err := NewBallPartitionWithMetric(1, nil)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("accessors", func(t *testing.T) {
		s, err := NewBallPartition(2.5)
		require.NoError(t, err)
		require.Equal(t, 2.5, s.Radius())
		require.Equal(t, "ball", s.Name())
	})
}

func TestBallPartitionClusters(t *testing.T) {
	// two tight clusters far apart:
	s := testPointSet(t,
		skipta.NewPoint(0, 0),
		skipta.NewPoint(0.1, 0),
		skipta.NewPoint(0, 0.1),
		skipta.NewPoint(10, 10),
		skipta.NewPoint(10.1, 10),
	)

	ball, err := NewBallPartition(1)
	require.NoError(t, err)

	p := partitionWith(t, ball, s, skipta.WithSeed(7))
	require.Equal(t, 2, p.Len())
	requireIsPartition(t, p, s.Len())
}

func TestBallPartitionAnchorsOnRepresentatives(t *testing.T) {
	// 1.8 is within the radius of 0.9 but not of the representative 0, so
	// it opens its own subset:
	s := testPointSet(t,
		skipta.NewPoint(0),
		skipta.NewPoint(0.9),
		skipta.NewPoint(1.8),
	)

	ball, err := NewBallPartition(1)
	require.NoError(t, err)

	p := partitionWith(t, ball, s, skipta.WithPermuter(fixedPermuter{0, 1, 2}))
	require.Equal(t, [][]int{{0, 1}, {2}}, p.Subsets())
}

func TestBallPartitionCustomMetric(t *testing.T) {
	// under Chebyshev these points are within 1 of each other, under
	// Euclidean they are not:
	s := testPointSet(t,
		skipta.NewPoint(0, 0),
		skipta.NewPoint(0.9, 0.9),
	)

	cheb, err := NewBallPartitionWithMetric(1, Chebyshev)
	require.NoError(t, err)
	p := partitionWith(t, cheb, s)
	require.Equal(t, 1, p.Len())

	eucl, err := NewBallPartition(1)
	require.NoError(t, err)
	p = partitionWith(t, eucl, s)
	require.Equal(t, 2, p.Len())
}

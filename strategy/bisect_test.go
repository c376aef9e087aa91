package strategy

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/stretchr/testify/require"
)

func TestNewBisectPointPartition(t *testing.T) {
	t.Run("a zero normal is rejected", func(t *testing.T) {
		_, err := NewBisectPointPartition(skipta.NewPoint(0, 0), skipta.NewPoint(0, 0))
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("point and normal dimensions must agree", func(t *testing.T) {
		_, err := NewBisectPointPartition(skipta.NewPoint(1, 0), skipta.NewPoint(0, 0, 0))
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("accessors", func(t *testing.T) {
		s, err := NewBisectPointPartition(skipta.NewPoint(1, 0), skipta.NewPoint(2, 2))
		require.NoError(t, err)
		require.Equal(t, 2, s.Dimension())
		require.Equal(t, "bisect_point", s.Name())
	})
}

func TestBisectPointPartitionSides(t *testing.T) {
	// split at x = 2:
	bisect, err := NewBisectPointPartition(skipta.NewPoint(1, 0), skipta.NewPoint(2, 0))
	require.NoError(t, err)

	t.Run("same side pairs", func(t *testing.T) {
		require.True(t, bisect.CompatiblePoints(skipta.NewPoint(0, 0), skipta.NewPoint(1, 5)))
		require.True(t, bisect.CompatiblePoints(skipta.NewPoint(3, 0), skipta.NewPoint(9, -2)))
	})

	t.Run("opposite sides do not pair", func(t *testing.T) {
		require.False(t, bisect.CompatiblePoints(skipta.NewPoint(0, 0), skipta.NewPoint(3, 0)))
	})

	t.Run("the plane itself counts as the positive side", func(t *testing.T) {
		require.True(t, bisect.CompatiblePoints(skipta.NewPoint(2, 0), skipta.NewPoint(5, 0)))
		require.False(t, bisect.CompatiblePoints(skipta.NewPoint(2, 0), skipta.NewPoint(0, 0)))
	})

	t.Run("at most two subsets", func(t *testing.T) {
		s := testPointSet(t,
			skipta.NewPoint(0, 0),
			skipta.NewPoint(1, 1),
			skipta.NewPoint(2, 0),
			skipta.NewPoint(3, 1),
			skipta.NewPoint(4, 0),
		)

		p := partitionWith(t, bisect, s, skipta.WithSeed(1))
		require.Equal(t, 2, p.Len())
		requireIsPartition(t, p, s.Len())
	})
}

func TestNewBisectFractionPartition(t *testing.T) {
	t.Run("a zero normal is rejected", func(t *testing.T) {
		_, err := NewBisectFractionPartition(skipta.NewPoint(0, 0), 0.5)
		require.Error(t, err)
		require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
	})

	t.Run("the fraction must lie in the open unit interval", func(t *testing.T) {
		for _, fraction := range []float64{-0.5, 0, 1, 1.5} {
			_, err := NewBisectFractionPartition(skipta.NewPoint(1, 0), fraction)
			require.Error(t, err)
			require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
		}
	})

	t.Run("accessors", func(t *testing.T) {
		s, err := NewBisectFractionPartition(skipta.NewPoint(0, 1), 0.25)
		require.NoError(t, err)
		require.Equal(t, 2, s.Dimension())
		require.Equal(t, "bisect_fraction", s.Name())
	})
}

func TestBisectFractionPartitionSplit(t *testing.T) {
	t.Run("splits the projection order at the fraction", func(t *testing.T) {
		// projections on x: 4, 1, 3, 2
		s := testPointSet(t,
			skipta.NewPoint(4, 0),
			skipta.NewPoint(1, 9),
			skipta.NewPoint(3, -1),
			skipta.NewPoint(2, 5),
		)

		bisect, err := NewBisectFractionPartition(skipta.NewPoint(1, 0), 0.5)
		require.NoError(t, err)

		p := partitionWith(t, bisect, s, skipta.WithSeed(2))
		require.Equal(t, 2, p.Len())
		require.Equal(t, [][]int{{1, 3}, {2, 0}}, p.Subsets())
	})

	t.Run("a split that would empty a subset collapses to one", func(t *testing.T) {
		s := testPointSet(t, skipta.NewPoint(1, 0))

		bisect, err := NewBisectFractionPartition(skipta.NewPoint(1, 0), 0.4)
		require.NoError(t, err)

		p := partitionWith(t, bisect, s)
		require.Equal(t, 1, p.Len())
		requireIsPartition(t, p, s.Len())
	})
}

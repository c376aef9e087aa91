package skipta

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testPartition(t *testing.T) (*Partition, *PointSet) {
	t.Helper()

	s := testPointSet(t,
		NewPoint(0, 0),
		NewPoint(0, 1),
		NewPoint(5, 0),
		NewPoint(5, 1),
	)

	sameX := pointPredicateFunc(func(x, y Point) bool {
		return x[0] == y[0]
	})

	pr, err := NewPartitioner(sameX, WithPermuter(fixedPermuter{0, 1, 2, 3}))
	require.NoError(t, err)

	p, err := pr.Partition(s)
	require.NoError(t, err)
	return p, s
}

func TestPartitionAccessors(t *testing.T) {
	p, s := testPartition(t)

	require.Equal(t, 2, p.Len())
	require.True(t, p.Domain() == Domain(s))
	require.Equal(t, [][]int{{0, 1}, {2, 3}}, p.Subsets())
}

func TestPartitionSubset(t *testing.T) {
	p, _ := testPartition(t)

	t.Run("returns the subset", func(t *testing.T) {
		subset, err := p.Subset(1)
		require.NoError(t, err)
		require.Equal(t, []int{2, 3}, subset)
	})

	t.Run("negative index is rejected", func(t *testing.T) {
		_, err := p.Subset(-1)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeIndexOutOfRange))
	})

	t.Run("index past the end is rejected", func(t *testing.T) {
		_, err := p.Subset(2)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeIndexOutOfRange))
	})
}

func TestPartitionView(t *testing.T) {
	p, s := testPartition(t)

	t.Run("views translate local to domain indices", func(t *testing.T) {
		v, err := p.View(1)
		require.NoError(t, err)
		require.Equal(t, 2, v.Len())
		require.Equal(t, s.Dimension(), v.Dimension())
		require.True(t, v.Domain() == Domain(s))
		require.Equal(t, []int{2, 3}, v.Indices())

		subset, err := p.Subset(1)
		require.NoError(t, err)

		got := make(Point, v.Dimension())
		want := make(Point, s.Dimension())
		for k := 0; k < v.Len(); k++ {
			require.NoError(t, v.CoordinatesAt(got, k))
			require.NoError(t, s.CoordinatesAt(want, subset[k]))
			require.True(t, got.Equal(want))
		}
	})

	t.Run("view index out of range is rejected", func(t *testing.T) {
		v, err := p.View(0)
		require.NoError(t, err)

		err = v.CoordinatesAt(make(Point, 2), 2)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeIndexOutOfRange))
	})

	t.Run("buffer checks pass through to the domain", func(t *testing.T) {
		v, err := p.View(0)
		require.NoError(t, err)

		err = v.CoordinatesAt(make(Point, 3), 0)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeDimensionMismatch))
	})

	t.Run("out of range view is rejected", func(t *testing.T) {
		_, err := p.View(5)
		require.Error(t, err)
		require.True(t, errors.IsType(err, ErrTypeIndexOutOfRange))
	})
}

func TestPartitionViews(t *testing.T) {
	p, _ := testPartition(t)

	views := p.Views()
	require.Len(t, views, 2)
	require.Equal(t, []int{0, 1}, views[0].Indices())
	require.Equal(t, []int{2, 3}, views[1].Indices())

	// iteration restarts from the first subset on every call:
	views[0] = nil
	again := p.Views()
	require.NotNil(t, again[0])
	require.Equal(t, []int{0, 1}, again[0].Indices())
}

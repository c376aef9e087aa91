package websocket

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/stretchr/testify/require"
)

func TestBuildStrategy(t *testing.T) {
	tolerance := 0.25

	utests := []struct {
		scenario string
		spec     StrategySpec
		name     string
	}{
		{
			scenario: "plane strategy",
			spec:     StrategySpec{Name: "plane", Normal: []float64{1, 0}},
			name:     "plane",
		},
		{
			scenario: "plane strategy with tolerance",
			spec:     StrategySpec{Name: "plane", Normal: []float64{0, 2}, Tolerance: &tolerance},
			name:     "plane",
		},
		{
			scenario: "direction strategy",
			spec:     StrategySpec{Name: "direction", Direction: []float64{1, 1}},
			name:     "direction",
		},
		{
			scenario: "ball strategy",
			spec:     StrategySpec{Name: "ball", Radius: 2},
			name:     "ball",
		},
		{
			scenario: "ball strategy with metric",
			spec:     StrategySpec{Name: "ball", Radius: 2, Metric: "chebyshev"},
			name:     "ball",
		},
		{
			scenario: "block strategy",
			spec:     StrategySpec{Name: "block", Sides: []float64{1, 2}},
			name:     "block",
		},
		{
			scenario: "bisect point strategy",
			spec:     StrategySpec{Name: "bisect_point", Normal: []float64{1, 0}, Point: []float64{2, 0}},
			name:     "bisect_point",
		},
		{
			scenario: "bisect fraction strategy",
			spec:     StrategySpec{Name: "bisect_fraction", Normal: []float64{1, 0}, Fraction: 0.5},
			name:     "bisect_fraction",
		},
		{
			scenario: "uniform strategy",
			spec:     StrategySpec{Name: "uniform", Subsets: 3},
			name:     "uniform",
		},
		{
			scenario: "fraction strategy",
			spec:     StrategySpec{Name: "fraction", Fraction: 0.5, Shuffle: true},
			name:     "fraction",
		},
		{
			scenario: "round robin strategy",
			spec:     StrategySpec{Name: "round_robin", Subsets: 2},
			name:     "round_robin",
		},
		{
			scenario: "product strategy",
			spec: StrategySpec{
				Name:   "product",
				First:  &StrategySpec{Name: "plane", Normal: []float64{1, 0}},
				Second: &StrategySpec{Name: "plane", Normal: []float64{0, 1}},
			},
			name: "product",
		},
		{
			scenario: "hierarchical strategy",
			spec: StrategySpec{
				Name:  "hierarchical",
				Outer: &StrategySpec{Name: "plane", Normal: []float64{1, 0}},
				Inner: &StrategySpec{Name: "uniform", Subsets: 2},
			},
			name: "hierarchical",
		},
	}

	for _, u := range utests {
		t.Run(u.scenario, func(t *testing.T) {
			s, err := BuildStrategy(u.spec)
			require.NoError(t, err)
			require.Equal(t, u.name, s.Name())
		})
	}
}

func TestBuildStrategyErrors(t *testing.T) {
	negativeTolerance := -0.5

	utests := []struct {
		scenario string
		spec     StrategySpec
	}{
		{
			scenario: "unknown strategy",
			spec:     StrategySpec{Name: "voronoi"},
		},
		{
			scenario: "plane strategy without normal",
			spec:     StrategySpec{Name: "plane"},
		},
		{
			scenario: "plane strategy with negative tolerance",
			spec:     StrategySpec{Name: "plane", Normal: []float64{1, 0}, Tolerance: &negativeTolerance},
		},
		{
			scenario: "ball strategy without radius",
			spec:     StrategySpec{Name: "ball"},
		},
		{
			scenario: "ball strategy with unknown metric",
			spec:     StrategySpec{Name: "ball", Radius: 1, Metric: "cosine"},
		},
		{
			scenario: "uniform strategy without subset count",
			spec:     StrategySpec{Name: "uniform"},
		},
		{
			scenario: "product strategy without sub-strategies",
			spec:     StrategySpec{Name: "product"},
		},
		{
			scenario: "hierarchical strategy without inner strategy",
			spec:     StrategySpec{Name: "hierarchical", Outer: &StrategySpec{Name: "plane", Normal: []float64{1}}},
		},
	}

	for _, u := range utests {
		t.Run(u.scenario, func(t *testing.T) {
			_, err := BuildStrategy(u.spec)
			require.Error(t, err)
			require.True(t, errors.IsType(err, skipta.ErrTypeInvalidStrategy))
		})
	}
}

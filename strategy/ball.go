package strategy

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
)

// Metric measures the distance between two points of equal dimension.
type Metric func(x, y skipta.Point) float64

// Euclidean is the straight-line distance.
func Euclidean(x, y skipta.Point) float64 {
	var sq float64
	for c := range x {
		d := x[c] - y[c]
		sq += d * d
	}
	return math.Sqrt(sq)
}

// Manhattan is the sum of the per-axis distances.
func Manhattan(x, y skipta.Point) float64 {
	var sum float64
	for c := range x {
		sum += math.Abs(x[c] - y[c])
	}
	return sum
}

// Chebyshev is the largest per-axis distance.
func Chebyshev(x, y skipta.Point) float64 {
	var max float64
	for c := range x {
		if d := math.Abs(x[c] - y[c]); d > max {
			max = d
		}
	}
	return max
}

// BallPartition groups elements closer than a fixed radius under a metric.
// Because the engine compares newcomers against bucket representatives only,
// every member of a subset lies within the radius of the subset's first
// element, not necessarily of every other member.
type BallPartition struct {
	radius float64
	metric Metric
}

var _ skipta.PointPredicate = (*BallPartition)(nil)

// NewBallPartition creates a ball partition under the Euclidean metric.
func NewBallPartition(radius float64) (*BallPartition, error) {
	return NewBallPartitionWithMetric(radius, Euclidean)
}

// NewBallPartitionWithMetric creates a ball partition under an explicit
// metric. The radius must be positive.
func NewBallPartitionWithMetric(radius float64, metric Metric) (*BallPartition, error) {
	if radius <= 0 {
		return nil, errors.New("ball radius must be positive").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("radius", radius)
	}
	if metric == nil {
		return nil, errors.New("ball metric is required").
			WithType(skipta.ErrTypeInvalidStrategy)
	}

	return &BallPartition{radius: radius, metric: metric}, nil
}

func (s *BallPartition) Name() string {
	return "ball"
}

func (s *BallPartition) Radius() float64 {
	return s.radius
}

func (s *BallPartition) CompatiblePoints(x, y skipta.Point) bool {
	return s.metric(x, y) < s.radius
}

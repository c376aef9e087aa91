package websocket

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/aukilabs/skipta/strategy"
)

// MsgType represents a message type.
type MsgType string

const (
	MsgTypePointSample       MsgType = "point_sample"
	MsgTypePartitionRequest  MsgType = "partition_request"
	MsgTypePartitionResponse MsgType = "partition_response"
	MsgTypeReset             MsgType = "reset"
	MsgTypeDebugInfoRequest  MsgType = "debug_info_request"
	MsgTypeDebugInfoResponse MsgType = "debug_info_response"
	MsgTypeErrorResponse     MsgType = "error_response"
)

// Error codes reported in error responses, in addition to the codes defined
// in the skipta package.
const (
	ErrTypeBadMessage        = "bad_message"
	ErrTypePointLimit        = "point_limit_exceeded"
	ErrTypeDebugInfoDisabled = "debug_info_disabled"
	ErrTypeInternal          = "internal_error"
)

// Msg represents a message exchanged between a client and a skipta server.
// Fields that do not belong to the message type are left empty.
type Msg struct {
	Type      MsgType `json:"type"`
	RequestID uint32  `json:"request_id,omitempty"`

	// Points carried by a point sample, one coordinate vector per point.
	Points [][]float64 `json:"points,omitempty"`

	// The strategy and seed of a partition request.
	Strategy *StrategySpec `json:"strategy,omitempty"`
	Seed     *int64        `json:"seed,omitempty"`

	// The result of a partition request.
	StrategyName string  `json:"strategy_name,omitempty"`
	SubsetCount  int     `json:"subset_count,omitempty"`
	Subsets      [][]int `json:"subsets,omitempty"`

	// The payload of a debug info response.
	DebugInfo *DebugInfo `json:"debug_info,omitempty"`

	// The code and description of an error response.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// TypeString returns the message type as a string.
func (m Msg) TypeString() string {
	return string(m.Type)
}

// StrategySpec describes the partition strategy of a partition request.
type StrategySpec struct {
	Name      string    `json:"name"`
	Normal    []float64 `json:"normal,omitempty"`
	Point     []float64 `json:"point,omitempty"`
	Direction []float64 `json:"direction,omitempty"`
	Sides     []float64 `json:"sides,omitempty"`
	Tolerance *float64  `json:"tolerance,omitempty"`
	Radius    float64   `json:"radius,omitempty"`
	Metric    string    `json:"metric,omitempty"`
	Fraction  float64   `json:"fraction,omitempty"`
	Subsets   int       `json:"subsets,omitempty"`
	Shuffle   bool      `json:"shuffle,omitempty"`

	// The sub-strategies of a product strategy.
	First  *StrategySpec `json:"first,omitempty"`
	Second *StrategySpec `json:"second,omitempty"`

	// The sub-strategies of a hierarchical strategy.
	Outer *StrategySpec `json:"outer,omitempty"`
	Inner *StrategySpec `json:"inner,omitempty"`
}

// DebugInfo describes the state of a session.
type DebugInfo struct {
	PointCount      int     `json:"point_count"`
	Dimension       int     `json:"dimension"`
	PartitionCount  int     `json:"partition_count"`
	LastStrategy    string  `json:"last_strategy,omitempty"`
	LastSubsetCount int     `json:"last_subset_count,omitempty"`
	LastDurationMS  float64 `json:"last_duration_ms,omitempty"`
}

// BuildStrategy instantiates the partition strategy described by the given
// spec.
func BuildStrategy(spec StrategySpec) (skipta.Strategy, error) {
	switch spec.Name {
	case "plane":
		if spec.Tolerance != nil {
			return strategy.NewPlanePartitionWithTolerance(skipta.NewPoint(spec.Normal...), *spec.Tolerance)
		}
		return strategy.NewPlanePartition(skipta.NewPoint(spec.Normal...))

	case "direction":
		if spec.Tolerance != nil {
			return strategy.NewDirectionPartitionWithTolerance(skipta.NewPoint(spec.Direction...), *spec.Tolerance)
		}
		return strategy.NewDirectionPartition(skipta.NewPoint(spec.Direction...))

	case "ball":
		metric, err := metricByName(spec.Metric)
		if err != nil {
			return nil, err
		}
		return strategy.NewBallPartitionWithMetric(spec.Radius, metric)

	case "block":
		return strategy.NewBlockPartition(skipta.NewPoint(spec.Sides...))

	case "bisect_point":
		return strategy.NewBisectPointPartition(
			skipta.NewPoint(spec.Normal...),
			skipta.NewPoint(spec.Point...),
		)

	case "bisect_fraction":
		return strategy.NewBisectFractionPartition(skipta.NewPoint(spec.Normal...), spec.Fraction)

	case "uniform":
		return strategy.NewUniformPartition(spec.Subsets, spec.Shuffle)

	case "fraction":
		return strategy.NewFractionPartition(spec.Fraction, spec.Shuffle)

	case "round_robin":
		return strategy.NewRoundRobinPartition(spec.Subsets)

	case "product":
		first, err := buildSubStrategy(spec.First, "first")
		if err != nil {
			return nil, err
		}
		second, err := buildSubStrategy(spec.Second, "second")
		if err != nil {
			return nil, err
		}
		return strategy.NewProductPartition(first, second)

	case "hierarchical":
		outer, err := buildSubStrategy(spec.Outer, "outer")
		if err != nil {
			return nil, err
		}
		inner, err := buildSubStrategy(spec.Inner, "inner")
		if err != nil {
			return nil, err
		}
		return strategy.NewHierarchicalPartition(outer, inner)

	default:
		return nil, errors.New("unknown strategy").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("name", spec.Name)
	}
}

func buildSubStrategy(spec *StrategySpec, role string) (skipta.Strategy, error) {
	if spec == nil {
		return nil, errors.New("missing sub-strategy spec").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("role", role)
	}
	return BuildStrategy(*spec)
}

func metricByName(name string) (strategy.Metric, error) {
	switch name {
	case "", "euclidean":
		return strategy.Euclidean, nil
	case "manhattan":
		return strategy.Manhattan, nil
	case "chebyshev":
		return strategy.Chebyshev, nil
	default:
		return nil, errors.New("unknown metric").
			WithType(skipta.ErrTypeInvalidStrategy).
			WithTag("name", name)
	}
}

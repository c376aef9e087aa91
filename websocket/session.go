package websocket

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/skipta"
	"github.com/aukilabs/skipta/featureflag"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

const (
	// HeaderClientID is the header that advertises a client id at connection
	// time. A fresh id is generated when the header is absent.
	HeaderClientID = "X-Skipta-Client-Id"

	// DefaultMaxPoints is the number of points a session accepts when no
	// explicit limit is configured.
	DefaultMaxPoints = 100000

	defaultIdleTimeout = time.Minute * 5
)

// SessionHandler is the handler that manages a client sampling session.
// Points accumulate across point sample messages and are partitioned on
// demand, each request with its own strategy and seed.
type SessionHandler struct {
	// The time a client can stay idle before being disconnected.
	ClientIdleTimeout time.Duration

	// The maximum number of points a session accepts. Defaults to
	// DefaultMaxPoints when zero.
	MaxPoints int

	// The enabled feature flags.
	FeatureFlags featureflag.FeatureFlag

	conn     *websocket.Conn
	clientID string

	dim    int
	points []skipta.Point

	partitionCount int
	lastPartition  *partitionInfo
}

type partitionInfo struct {
	strategy string
	subsets  int
	duration time.Duration
}

func (h *SessionHandler) HandleConnect(conn *websocket.Conn) {
	h.conn = conn

	h.clientID = conn.Request().Header.Get(HeaderClientID)
	if h.clientID == "" {
		h.clientID = uuid.NewString()
	}
}

// HandlePointSample appends the sampled points to the session. The batch is
// rejected as a whole when a point does not match the session dimension or
// when it would overflow the point limit.
func (h *SessionHandler) HandlePointSample(ctx context.Context, respond ResponseSender, msg Msg) error {
	if len(msg.Points) == 0 {
		return nil
	}

	dim := h.dim
	if dim == 0 {
		dim = len(msg.Points[0])
	}
	if dim == 0 {
		respondError(respond, msg, skipta.ErrTypeInvalidDomain, "points must have at least one coordinate")
		return nil
	}

	for _, coords := range msg.Points {
		if len(coords) != dim {
			respondError(respond, msg, skipta.ErrTypeDimensionMismatch, "points do not share the session dimension")
			return nil
		}
	}

	exceeded := false
	h.FeatureFlags.IfNotSet(featureflag.FlagDisablePointLimit, func() {
		exceeded = len(h.points)+len(msg.Points) > h.maxPoints()
	})
	if exceeded {
		respondError(respond, msg, ErrTypePointLimit, "point limit exceeded")
		return nil
	}

	h.dim = dim
	for _, coords := range msg.Points {
		h.points = append(h.points, skipta.Point(coords))
	}
	return nil
}

// HandlePartition partitions the sampled points with the requested strategy
// and sends the resulting subsets back. The points are left untouched so a
// session can be partitioned multiple times.
func (h *SessionHandler) HandlePartition(ctx context.Context, respond ResponseSender, msg Msg) error {
	if msg.Strategy == nil {
		respondError(respond, msg, skipta.ErrTypeInvalidStrategy, "a strategy is required")
		return nil
	}

	strat, err := BuildStrategy(*msg.Strategy)
	if err != nil {
		respondError(respond, msg, errorType(err), err.Error())
		return nil
	}

	var opts []skipta.Option
	if msg.Seed != nil {
		opts = append(opts, skipta.WithSeed(*msg.Seed))
	}

	partitioner, err := skipta.NewPartitioner(strat, opts...)
	if err != nil {
		respondError(respond, msg, errorType(err), err.Error())
		return nil
	}

	domain, err := skipta.NewPointSet(h.points...)
	if err != nil {
		respondError(respond, msg, errorType(err), err.Error())
		return nil
	}

	start := time.Now()

	partition, err := partitioner.Partition(domain)
	if err != nil {
		respondError(respond, msg, errorType(err), err.Error())
		return nil
	}

	h.partitionCount++
	h.lastPartition = &partitionInfo{
		strategy: strat.Name(),
		subsets:  partition.Len(),
		duration: time.Since(start),
	}

	respond.Send(Msg{
		Type:         MsgTypePartitionResponse,
		RequestID:    msg.RequestID,
		StrategyName: strat.Name(),
		SubsetCount:  partition.Len(),
		Subsets:      partition.Subsets(),
	})
	return nil
}

func (h *SessionHandler) HandleReset(ctx context.Context, respond ResponseSender, msg Msg) error {
	h.dim = 0
	h.points = nil
	h.partitionCount = 0
	h.lastPartition = nil
	return nil
}

func (h *SessionHandler) HandleDebugInfo(ctx context.Context, respond ResponseSender, msg Msg) error {
	disabled := false
	h.FeatureFlags.IfSet(featureflag.FlagDisableDebugInfo, func() {
		disabled = true
	})
	if disabled {
		respondError(respond, msg, ErrTypeDebugInfoDisabled, "debug info is disabled")
		return nil
	}

	info := DebugInfo{
		PointCount:     len(h.points),
		Dimension:      h.dim,
		PartitionCount: h.partitionCount,
	}
	if h.lastPartition != nil {
		info.LastStrategy = h.lastPartition.strategy
		info.LastSubsetCount = h.lastPartition.subsets
		info.LastDurationMS = float64(h.lastPartition.duration) / float64(time.Millisecond)
	}

	respond.Send(Msg{
		Type:      MsgTypeDebugInfoResponse,
		RequestID: msg.RequestID,
		DebugInfo: &info,
	})
	return nil
}

func (h *SessionHandler) HandleDisconnect(err error) {
	h.points = nil
	h.lastPartition = nil
}

func (h *SessionHandler) Receiver() Receiver {
	return func() (Msg, int, error) {
		var data []byte
		if err := websocket.Message.Receive(h.conn, &data); err != nil {
			return Msg{}, 0, err
		}

		var msg Msg
		if err := json.Unmarshal(data, &msg); err != nil {
			return Msg{}, len(data), errors.New("decoding message failed").
				WithType(ErrTypeBadMessage).
				Wrap(err)
		}
		return msg, len(data), nil
	}
}

func (h *SessionHandler) Sender() Sender {
	return func(msg Msg) (int, error) {
		data, err := json.Marshal(msg)
		if err != nil {
			return 0, errors.New("encoding message failed").
				WithType(ErrTypeBadMessage).
				Wrap(err)
		}

		if err := websocket.Message.Send(h.conn, string(data)); err != nil {
			return 0, err
		}
		return len(data), nil
	}
}

func (h *SessionHandler) Close() {}

func (h *SessionHandler) IdleTimeout() time.Duration {
	if h.ClientIdleTimeout <= 0 {
		return defaultIdleTimeout
	}
	return h.ClientIdleTimeout
}

func (h *SessionHandler) GetClientID() string {
	return h.clientID
}

func (h *SessionHandler) maxPoints() int {
	if h.MaxPoints <= 0 {
		return DefaultMaxPoints
	}
	return h.MaxPoints
}

func respondError(respond ResponseSender, req Msg, code, description string) {
	respond.Send(Msg{
		Type:      MsgTypeErrorResponse,
		RequestID: req.RequestID,
		Code:      code,
		Error:     description,
	})
}

func errorType(err error) string {
	if t := errors.Type(err); t != "" {
		return t
	}
	return ErrTypeInternal
}

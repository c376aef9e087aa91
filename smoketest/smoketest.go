package smoketest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	skiptaws "github.com/aukilabs/skipta/websocket"
	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

const defaultTimeout = time.Second * 15

// Status represents the outcome of a smoke test.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// SmokeTestRequest asks a server to smoke test the server at the given
// endpoint.
type SmokeTestRequest struct {
	Endpoint string        `json:"endpoint"`
	Timeout  time.Duration `json:"timeout"`
}

// SmokeTestResults describes the outcome of a smoke test.
type SmokeTestResults struct {
	FromEndpoint    string  `json:"from_endpoint"`
	ToEndpoint      string  `json:"to_endpoint"`
	LatencyMilliSec float64 `json:"latency_ms"`
	Status          Status  `json:"status"`
	Error           string  `json:"error,omitempty"`
}

type Options struct {
	Endpoint   string
	UserAgent  string
	SendResult func(context.Context, SmokeTestResults) error
}

type testCtxKey string

var testCtxKeyValue testCtxKey = "test-context"

type testContext struct {
	context.Context
	Cancel func()
}

func HandleSmokeTest(ctx context.Context, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var req SmokeTestRequest
		if err := json.Unmarshal(b, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		go func() {
			defer func() {
				// if context is of testContext
				// cancel context on exit to signal function exited
				// this is used for testing
				if tctx := ctx.Value(testCtxKeyValue); tctx != nil {
					testCtx := tctx.(testContext)
					if testCtx.Cancel != nil {
						testCtx.Cancel()
					}
				}
			}()

			res, err := RunSmokeTest(ctx, RunSmokeTestOptions{
				FromEndpoint: opts.Endpoint,
				ToEndpoint:   req.Endpoint,
				UserAgent:    opts.UserAgent,
				Timeout:      req.Timeout,
			})
			if err != nil {
				logs.Warn(err)
			}

			if err := opts.SendResult(ctx, res); err != nil {
				logs.WithTag("from_endpoint", opts.Endpoint).
					WithTag("to_endpoint", req.Endpoint).
					Warn(errors.New("sending smoke test result failed").Wrap(err))
			}
		}()

		w.WriteHeader(http.StatusOK)
	}
}

type RunSmokeTestOptions struct {
	FromEndpoint string
	ToEndpoint   string
	UserAgent    string
	Timeout      time.Duration
}

// RunSmokeTest connects to the server at the given endpoint, samples a known
// set of points, requests a plane partition and checks that the server
// grouped the points as expected.
func RunSmokeTest(ctx context.Context, opts RunSmokeTestOptions) (SmokeTestResults, error) {
	res := SmokeTestResults{
		FromEndpoint: opts.FromEndpoint,
		ToEndpoint:   opts.ToEndpoint,
		Status:       StatusFailed,
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	start := time.Now()

	if err := runPartitionScenario(opts.ToEndpoint, opts.UserAgent, timeout); err != nil {
		res.Error = err.Error()
		return res, errors.New("smoke test failed").
			WithTag("to_endpoint", opts.ToEndpoint).
			Wrap(err)
	}

	res.LatencyMilliSec = float64(time.Since(start)) / float64(time.Millisecond)
	res.Status = StatusSuccess
	return res, nil
}

func runPartitionScenario(endpoint, userAgent string, timeout time.Duration) error {
	config, err := websocket.NewConfig(toWebSocketEndpoint(endpoint), "http://localhost")
	if err != nil {
		return errors.New("initializing web socket failed").Wrap(err)
	}

	config.Header.Set(skiptaws.HeaderClientID, uuid.NewString())
	if userAgent != "" {
		config.Header.Set("User-Agent", userAgent)
	}

	conn, err := websocket.DialConfig(config)
	if err != nil {
		return errors.New("dialing web socket failed").Wrap(err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return errors.New("setting deadline failed").Wrap(err)
	}

	// indices 0 and 1 share x=0, indices 2 and 3 share x=5:
	if err := sendMsg(conn, skiptaws.Msg{
		Type: skiptaws.MsgTypePointSample,
		Points: [][]float64{
			{0, 0},
			{0, 1},
			{5, 0},
			{5, 1},
		},
	}); err != nil {
		return err
	}

	tolerance := 0.5
	if err := sendMsg(conn, skiptaws.Msg{
		Type:      skiptaws.MsgTypePartitionRequest,
		RequestID: 1,
		Strategy: &skiptaws.StrategySpec{
			Name:      "plane",
			Normal:    []float64{1, 0},
			Tolerance: &tolerance,
		},
	}); err != nil {
		return err
	}

	for {
		msg, err := receiveMsg(conn)
		if err != nil {
			return err
		}

		switch msg.Type {
		case skiptaws.MsgTypePartitionResponse:
			if msg.RequestID != 1 {
				continue
			}
			return checkPartitionResponse(msg)

		case skiptaws.MsgTypeErrorResponse:
			return errors.New("server returned an error").
				WithTag("code", msg.Code).
				WithTag("description", msg.Error)
		}
	}
}

func checkPartitionResponse(msg skiptaws.Msg) error {
	if msg.SubsetCount != 2 || len(msg.Subsets) != 2 {
		return errors.New("unexpected subset count").
			WithTag("subset_count", msg.SubsetCount)
	}

	seen := make(map[int]bool)
	for _, subset := range msg.Subsets {
		if len(subset) != 2 {
			return errors.New("unexpected subset size").
				WithTag("size", len(subset))
		}
		if subset[0]/2 != subset[1]/2 {
			return errors.New("points were not grouped by plane")
		}

		for _, i := range subset {
			if i < 0 || i > 3 || seen[i] {
				return errors.New("subsets are not a partition").
					WithTag("index", i)
			}
			seen[i] = true
		}
	}

	if len(seen) != 4 {
		return errors.New("subsets do not cover all points")
	}
	return nil
}

func sendMsg(conn *websocket.Conn, msg skiptaws.Msg) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.New("encoding message failed").Wrap(err)
	}

	if err := websocket.Message.Send(conn, string(data)); err != nil {
		return errors.New("sending message failed").Wrap(err)
	}
	return nil
}

func receiveMsg(conn *websocket.Conn) (skiptaws.Msg, error) {
	var data []byte
	if err := websocket.Message.Receive(conn, &data); err != nil {
		return skiptaws.Msg{}, errors.New("receiving message failed").Wrap(err)
	}

	var msg skiptaws.Msg
	if err := json.Unmarshal(data, &msg); err != nil {
		return skiptaws.Msg{}, errors.New("decoding message failed").Wrap(err)
	}
	return msg, nil
}

func toWebSocketEndpoint(endpoint string) string {
	e := strings.ReplaceAll(endpoint, "https://", "wss://")
	return strings.ReplaceAll(e, "http://", "ws://")
}

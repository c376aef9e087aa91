package websocket

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"golang.org/x/net/websocket"
)

// HandlerWithLogs decorates the given handler to log connection events,
// message traffic and periodic inbound message summaries.
func HandlerWithLogs(h Handler, summaryInterval time.Duration) Handler {
	ctx, cancel := context.WithCancel(context.Background())

	handler := &handlerWithLogs{
		Handler:            h,
		summaryInterval:    summaryInterval,
		closeSummaryWorker: cancel,
		counter:            make(map[string]int),
	}

	go handler.startSummaryWorker(ctx)
	return handler
}

type handlerWithLogs struct {
	Handler

	originalRequest *http.Request

	summaryInterval    time.Duration
	closeSummaryWorker func()
	counterMutex       sync.Mutex
	counter            map[string]int
}

func (h *handlerWithLogs) HandleConnect(conn *websocket.Conn) {
	h.Handler.HandleConnect(conn)

	h.originalRequest = conn.Request()

	logs.WithTag(logs.ClientIDTag, h.GetClientID()).
		WithTag("user_agent", h.originalRequest.UserAgent()).
		Info("new client is connected")
}

func (h *handlerWithLogs) HandlePartition(ctx context.Context, respond ResponseSender, msg Msg) error {
	if err := h.Handler.HandlePartition(ctx, respond, msg); err != nil {
		return err
	}

	entry := logs.WithTag(logs.ClientIDTag, h.GetClientID()).
		WithTag("request_id", msg.RequestID)
	if msg.Strategy != nil {
		entry = entry.WithTag("strategy", msg.Strategy.Name)
	}
	entry.Info("partition requested")
	return nil
}

func (h *handlerWithLogs) HandleDisconnect(err error) {
	h.Handler.HandleDisconnect(err)

	logs.WithTag(logs.ClientIDTag, h.GetClientID()).
		Info("client disconnected")
}

func (h *handlerWithLogs) Receiver() Receiver {
	receive := h.Handler.Receiver()

	return func() (Msg, int, error) {
		msg, n, err := receive()
		if err != nil && !stderrors.Is(err, io.EOF) && !stderrors.Is(err, net.ErrClosed) {
			logs.WithTag(logs.ClientIDTag, h.GetClientID()).
				Error(errors.New("receiving message failed").Wrap(err))
		} else if err == nil {
			logs.WithTag(logs.ClientIDTag, h.GetClientID()).
				WithTag("msg_type", msg.TypeString()).
				Debug("message received")
			h.incCounter(msg.TypeString())
		}
		return msg, n, err
	}
}

func (h *handlerWithLogs) Sender() Sender {
	sender := h.Handler.Sender()

	return func(msg Msg) (int, error) {
		msgType := msg.TypeString()

		n, err := sender(msg)
		if err != nil && !stderrors.Is(err, net.ErrClosed) {
			logs.WithTag(logs.ClientIDTag, h.GetClientID()).
				WithTag("msg_type", msgType).
				Error(errors.New("sending message failed").Wrap(err))
		} else if err == nil {
			logs.WithTag(logs.ClientIDTag, h.GetClientID()).
				WithTag("msg_type", msgType).
				Debug("message sent")
		}
		return n, err
	}
}

func (h *handlerWithLogs) Close() {
	h.Handler.Close()
	h.closeSummaryWorker()
	h.logSummary()
}

func (h *handlerWithLogs) startSummaryWorker(ctx context.Context) {
	ticker := time.NewTicker(h.summaryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			h.logSummary()
		}
	}
}

func (h *handlerWithLogs) incCounter(msgType string) {
	h.counterMutex.Lock()
	defer h.counterMutex.Unlock()

	h.counter[msgType]++
}

func (h *handlerWithLogs) logSummary() {
	h.counterMutex.Lock()
	defer h.counterMutex.Unlock()

	if len(h.counter) == 0 {
		return
	}

	entry := logs.WithTag(logs.ClientIDTag, h.GetClientID()).
		WithTag("time_interval", h.summaryInterval)

	for k, v := range h.counter {
		entry = entry.WithTag(k, v)
		delete(h.counter, k)
	}

	entry.Info("inbound message summary")
}

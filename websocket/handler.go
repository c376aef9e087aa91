package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/net/websocket"
)

const (
	sendChanSize = 512
)

// Handler represents a skipta session handler.
type Handler interface {
	// Handles a client connection.
	HandleConnect(conn *websocket.Conn)

	// Handles a batch of sampled points.
	HandlePointSample(ctx context.Context, respond ResponseSender, msg Msg) error

	// Handles a request to partition the sampled points.
	HandlePartition(ctx context.Context, respond ResponseSender, msg Msg) error

	// Handles a request to drop the sampled points and restore the session
	// to its initial state.
	HandleReset(ctx context.Context, respond ResponseSender, msg Msg) error

	// Handles a request for session debug info.
	HandleDebugInfo(ctx context.Context, respond ResponseSender, msg Msg) error

	// Handles a client's disconnection.
	HandleDisconnect(error)

	// Creates a message receiver used to receive incoming messages.
	Receiver() Receiver

	// Creates a message sender passed in service methods in order to send
	// messages.
	Sender() Sender

	// Closes the handler and releases its allocated resources.
	Close()

	// The time a client is idle before being disconnected.
	IdleTimeout() time.Duration

	// Get ClientID
	GetClientID() string
}

// Receiver receives a message and reports how many bytes were read.
type Receiver func() (Msg, int, error)

// Sender sends a message and reports how many bytes were written.
type Sender func(Msg) (int, error)

// ResponseSender queues messages to be sent to the connected client.
type ResponseSender interface {
	Send(Msg)
}

// Handle handles the given handler until its client disconnects or the
// given context is canceled.
func Handle(ctx context.Context, conn *websocket.Conn, h Handler) {
	handler := handler{
		Conn:    conn,
		Handler: h,
	}

	handler.Handle(ctx)
}

type handler struct {
	// The WebSocket connection.
	Conn *websocket.Conn

	// The skipta handler.
	Handler Handler

	sendChan       chan Msg
	sender         Sender
	recvChan       chan Msg
	receiver       Receiver
	disconnectChan chan error
}

func (h *handler) Handle(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.Handler.HandleConnect(h.Conn)

	h.disconnectChan = make(chan error, 8)
	defer func() {
		for len(h.disconnectChan) != 0 {
			<-h.disconnectChan
		}
	}()

	var wg sync.WaitGroup

	h.sendChan = make(chan Msg, sendChanSize)
	h.sender = h.Handler.Sender()

	wg.Add(1)
	go func() {
		defer wg.Done()
		h.startSending(ctx)
	}()

	h.recvChan = make(chan Msg, sendChanSize)
	h.receiver = h.Handler.Receiver()

	wg.Add(1)
	go func() {
		defer wg.Done()
		h.startReceiving(ctx)
	}()

	idleTimeout := h.Handler.IdleTimeout()
	idleTimer := time.NewTimer(idleTimeout)
	defer idleTimer.Stop()

	var responder = responseSender{
		send: h.send,
	}

	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
			h.disconnect(ctx.Err())

		case <-idleTimer.C:
			h.disconnect(errors.New("idle connection").WithTag("duration", idleTimeout))

		case msg := <-h.recvChan:
			idleTimer.Stop()
			idleTimer.Reset(idleTimeout)

			if err := h.handleMessage(ctx, msg, responder); err != nil {
				h.disconnect(errors.New("handling message failed").Wrap(err))
			}

		case err := <-h.disconnectChan:
			h.handleDisconnect(err)
			if ctx.Err() == nil {
				// cancel context so go routines can cleanly exit
				cancel()
			}
		}
	}

	wg.Wait()
}

func (h *handler) send(msg Msg) {
	h.sendChan <- msg
}

func (h *handler) startSending(ctx context.Context) {
	defer func() {
		for len(h.sendChan) != 0 {
			<-h.sendChan
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-h.sendChan:
			if _, err := h.sender(msg); err != nil {
				h.disconnect(errors.New("sending message failed").Wrap(err))
				return
			}
		}
	}
}

func (h *handler) startReceiving(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		default:
			msg, _, err := h.receiver()
			if err != nil {
				h.disconnect(errors.New("receiving message failed").Wrap(err))
				return
			}

			select {
			case h.recvChan <- msg:

			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *handler) handleMessage(ctx context.Context, msg Msg, responder ResponseSender) error {
	switch msg.Type {
	case MsgTypePointSample:
		return h.Handler.HandlePointSample(ctx, responder, msg)

	case MsgTypePartitionRequest:
		return h.Handler.HandlePartition(ctx, responder, msg)

	case MsgTypeReset:
		return h.Handler.HandleReset(ctx, responder, msg)

	case MsgTypeDebugInfoRequest:
		return h.Handler.HandleDebugInfo(ctx, responder, msg)

	default:
		responder.Send(Msg{
			Type:      MsgTypeErrorResponse,
			RequestID: msg.RequestID,
			Code:      ErrTypeBadMessage,
			Error:     "unknown message type",
		})
		return nil
	}
}

func (h *handler) disconnect(err error) {
	h.disconnectChan <- err
}

func (h *handler) handleDisconnect(err error) {
	h.Conn.Close()
	h.Handler.HandleDisconnect(err)
}

type responseSender struct {
	send func(Msg)
}

func (r responseSender) Send(msg Msg) {
	r.send(msg)
}

package websocket

import (
	"board-lab/domain"
	"board-lab/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	forbiddenReply = "Forbidden"
	faultReply     = "An error occurred"
)

// EventRouter dispatches a message to the handler registered for its event.
type EventRouter interface {
	Route(ctx context.Context, msg domain.Message, conn *domain.Connection) error
}

type SessionOptions struct {
	BufferSize     int
	MaxMessageSize int64
}

// Session serves one websocket endpoint: every upgraded request is
// authorized, announced with the connect event, read frame by frame
// and announced with the disconnect event when the transport goes away.
type Session struct {
	log        *slog.Logger
	upgrader   websocket.Upgrader
	authorizer Authorizer
	router     EventRouter
	options    SessionOptions
}

func NewSession(log *slog.Logger, authorizer Authorizer, router EventRouter, options SessionOptions) *Session {
	return &Session{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		authorizer: authorizer,
		router:     router,
		options:    options,
	}
}

func (s *Session) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	channel := NewChannel(ws, s.log, s.options.BufferSize, s.options.MaxMessageSize)

	conn, err := s.authorizer.Authorize(r, channel)
	if err != nil {
		s.log.Info("Connection closed with message", "remote", r.RemoteAddr, "reason", err.Error())
		_ = channel.Close(err.Error())
		return
	}
	s.serve(r.Context(), conn, channel)
}

func (s *Session) serve(ctx context.Context, conn *domain.Connection, channel *Channel) {
	var disconnect sync.Once
	defer func() {
		_ = channel.Close("")
		disconnect.Do(func() {
			msg := domain.NewMessage(domain.EventUserDisconnected, nil)
			if err := s.router.Route(context.WithoutCancel(ctx), msg, conn); err != nil {
				s.log.Error("Disconnect handler failed", "connection", conn.String(), "error", err)
			}
		})
	}()

	if err := s.router.Route(ctx, domain.NewMessage(domain.EventUserConnected, nil), conn); err != nil {
		s.log.Error("Connect handler failed", "connection", conn.String(), "error", err)
		return
	}
	s.log.Debug("Connection active", "connection", conn.String())

	for {
		data, err := channel.Read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.log.Warn("Read failed", "connection", conn.String(), "error", err)
			}
			return
		}
		s.handleFrame(ctx, conn, channel, data)
	}
}

// handleFrame never ends the session, faults are answered to the sender.
func (s *Session) handleFrame(ctx context.Context, conn *domain.Connection, channel *Channel, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("An error occurred", "connection", conn.String(), "error", fmt.Errorf("%w: %v", errors.ErrHandlerPanic, r))
			s.reply(channel, []byte(faultReply))
		}
	}()

	msg, err := domain.ParseFrame(data)
	var verrs errors.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		payload, _ := json.Marshal(verrs)
		s.reply(channel, payload)
		return
	case err != nil:
		s.log.Error("An error occurred", "connection", conn.String(), "error", err)
		s.reply(channel, []byte(faultReply))
		return
	}

	if domain.IsReservedEvent(msg.Event) {
		s.log.Warn("Reserved event refused", "connection", conn.String(), "event", msg.Event)
		s.reply(channel, []byte(forbiddenReply))
		return
	}

	if err := s.router.Route(ctx, msg, conn); err != nil {
		s.log.Error("An error occurred", "connection", conn.String(), "event", msg.Event, "error", err)
		s.reply(channel, []byte(faultReply))
	}
}

func (s *Session) reply(channel *Channel, data []byte) {
	if err := channel.Send(data); err != nil {
		s.log.Warn("Reply not delivered", "error", err)
	}
}

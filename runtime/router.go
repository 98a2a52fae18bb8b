package runtime

import (
	"board-lab/domain"
	"context"
	"log/slog"
)

// Handler is the business logic for one inbound event.
// A handler is built for a single message and dropped afterwards.
type Handler interface {
	Handle(ctx context.Context) error
}

// HandlerFactory builds a fresh Handler for one message on one connection.
type HandlerFactory func(msg domain.Message, conn *domain.Connection) Handler

// Router maps event names to handler factories.
// Lookup order: exact event name, then domain.EventDefault, else the event is dropped.
type Router struct {
	log      *slog.Logger
	handlers map[string]HandlerFactory
}

func NewRouter(log *slog.Logger, handlers map[string]HandlerFactory) *Router {
	return &Router{log: log, handlers: handlers}
}

func (r *Router) Route(ctx context.Context, msg domain.Message, conn *domain.Connection) error {
	factory, ok := r.handlers[msg.Event]
	if !ok {
		factory, ok = r.handlers[domain.EventDefault]
	}
	if !ok {
		r.log.Debug("Event dropped, no handler", "event", msg.Event, "connection", conn.String())
		return nil
	}
	return factory(msg, conn).Handle(ctx)
}

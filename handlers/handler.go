package handlers

import (
	"board-lab/contract"
	"board-lab/domain"
	"board-lab/runtime"
	"log/slog"
	"time"
)

// Deps are the collaborators every handler is built with.
type Deps struct {
	Log              *slog.Logger
	AdminRegistry    *runtime.AdminRegistry
	PlayerRegistry   *runtime.PlayerRegistry
	AdminDispatcher  *runtime.AdminDispatcher
	PlayerDispatcher *runtime.PlayerDispatcher
	Elements         contract.IElementService
	// Now defaults to time.Now
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

type base struct {
	Deps
	msg  domain.Message
	conn *domain.Connection
}

func (b base) createMessage(event string, data map[string]any) domain.Message {
	return domain.NewMessage(event, data)
}

// sendToAdmin replies as the server, to the calling connection unless target says otherwise.
func (b base) sendToAdmin(msg domain.Message, target domain.Target) error {
	return b.AdminDispatcher.Send(msg, runtime.Delivery{
		Sender:     domain.AdminSender,
		Target:     target,
		Connection: b.conn,
	})
}

// playerBase defaults outbound sends to the calling player's identity and room.
type playerBase struct {
	base
}

func (p playerBase) sendToPlayer(msg domain.Message, delivery runtime.Delivery) error {
	if delivery.Target == "" {
		delivery.Target = domain.TargetRoom
	}
	if delivery.Sender == "" {
		delivery.Sender = p.conn.Player()
	}
	if delivery.Room == "" {
		delivery.Room = p.conn.Room()
	}
	if delivery.Player == "" {
		delivery.Player = p.conn.Player()
	}
	if delivery.Connection == nil {
		delivery.Connection = p.conn
	}
	return p.PlayerDispatcher.Send(msg, delivery)
}

// sendError replies to the calling connection only.
func (p playerBase) sendError(reason any) error {
	msg := p.createMessage(domain.EventError, map[string]any{"error": reason})
	return p.sendToPlayer(msg, runtime.Delivery{Target: domain.TargetDirect})
}

func adminFactory(deps Deps, build func(base) runtime.Handler) runtime.HandlerFactory {
	return func(msg domain.Message, conn *domain.Connection) runtime.Handler {
		return build(base{Deps: deps, msg: msg, conn: conn})
	}
}

func playerFactory(deps Deps, build func(playerBase) runtime.Handler) runtime.HandlerFactory {
	return func(msg domain.Message, conn *domain.Connection) runtime.Handler {
		return build(playerBase{base{Deps: deps, msg: msg, conn: conn}})
	}
}

// AdminTable is the admin listener: lifecycle, statistics and an echo fallback.
func AdminTable(deps Deps) map[string]runtime.HandlerFactory {
	return map[string]runtime.HandlerFactory{
		domain.EventUserConnected: adminFactory(deps, func(b base) runtime.Handler {
			return AdminConnected{b}
		}),
		domain.EventUserDisconnected: adminFactory(deps, func(b base) runtime.Handler {
			return AdminDisconnected{b}
		}),
		domain.EventGetStatistics: adminFactory(deps, func(b base) runtime.Handler {
			return AdminStatistics{b}
		}),
		domain.EventDefault: adminFactory(deps, func(b base) runtime.Handler {
			return DefaultAdmin{b}
		}),
	}
}

// PlayerTable is the player listener.
func PlayerTable(deps Deps) map[string]runtime.HandlerFactory {
	return map[string]runtime.HandlerFactory{
		domain.EventUserConnected: playerFactory(deps, func(b playerBase) runtime.Handler {
			return PlayerConnected{b}
		}),
		domain.EventUserDisconnected: playerFactory(deps, func(b playerBase) runtime.Handler {
			return PlayerDisconnected{b}
		}),
		domain.EventGetStatistics: playerFactory(deps, func(b playerBase) runtime.Handler {
			return GetStatistics{b}
		}),
		domain.EventUpsertElement: playerFactory(deps, func(b playerBase) runtime.Handler {
			return UpsertElement{b}
		}),
		domain.EventDeleteElement: playerFactory(deps, func(b playerBase) runtime.Handler {
			return DeleteElement{b}
		}),
		domain.EventDefault: playerFactory(deps, func(b playerBase) runtime.Handler {
			return DefaultPlayer{b}
		}),
	}
}

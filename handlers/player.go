package handlers

import (
	"board-lab/domain"
	"board-lab/runtime"
	"context"
)

// DefaultPlayer relays the message to the sender's room.
type DefaultPlayer struct{ playerBase }

func (h DefaultPlayer) Handle(context.Context) error {
	return h.sendToPlayer(h.msg, runtime.Delivery{})
}

// PlayerConnected registers the connection, announces the player's first
// connection to the rest of the room and sends the room snapshot to it.
type PlayerConnected struct{ playerBase }

func (h PlayerConnected) Handle(ctx context.Context) error {
	if h.PlayerRegistry.Add(h.conn) {
		msg := h.createMessage(domain.EventPlayerConnected, nil)
		if err := h.sendToPlayer(msg, runtime.Delivery{Except: h.conn}); err != nil {
			h.Log.Warn("Player connection not announced", "connection", h.conn.String(), "error", err)
		}
	}
	return h.sendInitial(ctx)
}

func (h PlayerConnected) sendInitial(ctx context.Context) error {
	room := h.conn.Room()
	elements, err := h.Elements.RoomElements(ctx, room)
	if err != nil {
		h.Log.Error("Room elements unavailable, sending empty snapshot", "room", room, "error", err)
	}

	snapshot := domain.NewRoomSnapshot()
	for _, element := range elements {
		if _, ok := element.Player(); !ok {
			h.Log.Warn("Element without player, removing it", "element_id", element.ID(), "room", room)
			h.Elements.Delete(ctx, element.ID(), room)
			continue
		}
		snapshot.AddElement(element)
	}
	for player := range snapshot.Players {
		if h.PlayerRegistry.IsPlayerOnline(room, player) {
			snapshot.MarkOnline(player)
		}
	}

	msg := h.createMessage(domain.EventInitial, snapshot.Data())
	return h.sendToPlayer(msg, runtime.Delivery{Target: domain.TargetDirect})
}

// PlayerDisconnected unregisters the connection and announces the player
// left once their last connection is gone.
type PlayerDisconnected struct{ playerBase }

func (h PlayerDisconnected) Handle(context.Context) error {
	last, err := h.PlayerRegistry.Remove(h.conn)
	if err != nil {
		return err
	}
	if !last {
		return nil
	}
	return h.sendToPlayer(h.createMessage(domain.EventPlayerDisconnected, nil), runtime.Delivery{})
}

type GetStatistics struct{ playerBase }

func (h GetStatistics) Handle(context.Context) error {
	msg := h.createMessage(h.msg.Event, map[string]any{
		"online_time": h.conn.OnlineTime(h.now()),
	})
	return h.sendToPlayer(msg, runtime.Delivery{Target: domain.TargetDirect})
}

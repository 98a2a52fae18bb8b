package handlers

import (
	"board-lab/domain"
	"context"
)

type AdminConnected struct{ base }

func (h AdminConnected) Handle(context.Context) error {
	h.AdminRegistry.Add(h.conn)
	h.Log.Info("Admin connected", "connection", h.conn.ID())
	return nil
}

type AdminDisconnected struct{ base }

func (h AdminDisconnected) Handle(context.Context) error {
	if err := h.AdminRegistry.Remove(h.conn); err != nil {
		return err
	}
	h.Log.Info("Admin disconnected", "connection", h.conn.ID())
	return nil
}

// AdminStatistics reports current occupancy to the requesting admin.
type AdminStatistics struct{ base }

func (h AdminStatistics) Handle(context.Context) error {
	rooms, connections := h.PlayerRegistry.Stats()
	msg := h.createMessage(h.msg.Event, map[string]any{
		"rooms":              rooms,
		"player_connections": connections,
		"admin_connections":  h.AdminRegistry.Count(),
	})
	return h.sendToAdmin(msg, domain.TargetDirect)
}

// DefaultAdmin echoes the message back to its sender.
type DefaultAdmin struct{ base }

func (h DefaultAdmin) Handle(context.Context) error {
	return h.sendToAdmin(h.msg, domain.TargetDirect)
}

package runtime

import (
	"board-lab/domain"
	"board-lab/errors"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Delivery describes who sends a message and which connections it targets.
// Connection is used by the direct target; Room and Player by the player-scoped targets.
// Except, when set, is left out of the recipients.
type Delivery struct {
	Sender     string
	Target     domain.Target
	Connection *domain.Connection
	Room       string
	Player     string
	Except     *domain.Connection
}

// AdminDispatcher supports the direct and broadcast targets.
type AdminDispatcher struct {
	registry *AdminRegistry
	log      *slog.Logger
}

func NewAdminDispatcher(log *slog.Logger, registry *AdminRegistry) *AdminDispatcher {
	return &AdminDispatcher{registry: registry, log: log}
}

func (d *AdminDispatcher) Send(msg domain.Message, delivery Delivery) error {
	var recipients []*domain.Connection
	switch delivery.Target {
	case domain.TargetDirect:
		recipients = []*domain.Connection{delivery.Connection}
	case domain.TargetBroadcast:
		recipients = d.registry.All()
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnsupportedTarget, delivery.Target)
	}
	return deliver(d.log, msg, delivery, recipients)
}

// PlayerDispatcher supports the direct, player, room and broadcast targets.
type PlayerDispatcher struct {
	registry *PlayerRegistry
	log      *slog.Logger
}

func NewPlayerDispatcher(log *slog.Logger, registry *PlayerRegistry) *PlayerDispatcher {
	return &PlayerDispatcher{registry: registry, log: log}
}

func (d *PlayerDispatcher) Send(msg domain.Message, delivery Delivery) error {
	var recipients []*domain.Connection
	switch delivery.Target {
	case domain.TargetDirect:
		recipients = []*domain.Connection{delivery.Connection}
	case domain.TargetPlayer:
		recipients = d.registry.Player(delivery.Room, delivery.Player)
	case domain.TargetRoom:
		recipients = d.registry.Room(delivery.Room)
	case domain.TargetBroadcast:
		recipients = d.registry.All()
	default:
		return fmt.Errorf("%w: %q", errors.ErrUnsupportedTarget, delivery.Target)
	}
	return deliver(d.log, msg, delivery, recipients)
}

// deliver enqueues one encoded envelope on every open recipient channel.
// A failing recipient is logged and skipped; nothing is retried.
func deliver(log *slog.Logger, msg domain.Message, delivery Delivery, recipients []*domain.Connection) error {
	payload, err := json.Marshal(msg.Envelope(delivery.Sender, delivery.Target))
	if err != nil {
		return fmt.Errorf("encoding %s envelope: %w", msg.Event, err)
	}
	for _, conn := range recipients {
		if conn == nil || conn == delivery.Except || conn.Channel() == nil || conn.Channel().Closed() {
			continue
		}
		if err := conn.Channel().Send(payload); err != nil {
			log.Warn("Message not delivered",
				"event", msg.Event,
				"target", delivery.Target,
				"connection", conn.ID(),
				"error", err)
		}
	}
	return nil
}

package domain

import "strings"

// ReservedPrefix marks system events. Clients may never send them.
const ReservedPrefix = "$"

const (
	EventUserConnected      = "$user-connected"
	EventUserDisconnected   = "$user-disconnected"
	EventDefault            = "$default"
	EventInitial            = "$initial"
	EventPlayerConnected    = "$player-connected"
	EventPlayerDisconnected = "$player-disconnected"
	EventError              = "$error"

	EventGetStatistics = "get-statistics"
	EventUpsertElement = "upsert-element"
	EventDeleteElement = "delete-element"
)

// AdminSender is the sender name stamped on messages produced for admins.
const AdminSender = "$ADMIN"

type Target string

const (
	TargetDirect    Target = "direct"
	TargetPlayer    Target = "player"
	TargetRoom      Target = "room"
	TargetBroadcast Target = "broadcast"
)

type Message struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func NewMessage(event string, data map[string]any) Message {
	return Message{Event: event, Data: data}
}

func IsReservedEvent(event string) bool {
	return strings.HasPrefix(event, ReservedPrefix)
}

// Envelope is the outbound wire shape.
type Envelope struct {
	Event  string         `json:"event"`
	Data   map[string]any `json:"data"`
	Sender string         `json:"sender"`
	Target Target         `json:"target"`
}

func (m Message) Envelope(sender string, target Target) Envelope {
	return Envelope{Event: m.Event, Data: m.Data, Sender: sender, Target: target}
}

//go:generate go run go.uber.org/mock/mockgen -source=connection.go -destination=../mocks/mock_channel.go -package=mocks
package domain

import (
	"board-lab/errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RolePlayer Role = "player"
)

// Channel is the outbound half of a live bidirectional transport.
// Send must not block: implementations enqueue and return.
type Channel interface {
	Send(data []byte) error
	Closed() bool
	Close(reason string) error
}

// Connection is one live channel plus the identity it was authorized with.
// Its identity never changes after construction; registries compare by pointer.
type Connection struct {
	id        string
	role      Role
	channel   Channel
	room      string
	player    string
	createdAt time.Time
}

type ConnectionOption func(*Connection)

func WithCreatedAt(at time.Time) ConnectionOption {
	return func(c *Connection) { c.createdAt = at }
}

func NewAdminConnection(channel Channel, opts ...ConnectionOption) *Connection {
	return newConnection(RoleAdmin, channel, "", "", opts)
}

// NewPlayerConnection fails unless both room and player are set.
func NewPlayerConnection(channel Channel, room, player string, opts ...ConnectionOption) (*Connection, error) {
	if room == "" {
		return nil, errors.ErrMissingRoom
	}
	if player == "" {
		return nil, errors.ErrMissingPlayer
	}
	return newConnection(RolePlayer, channel, room, player, opts), nil
}

func newConnection(role Role, channel Channel, room, player string, opts []ConnectionOption) *Connection {
	c := &Connection{
		id:        uuid.NewString(),
		role:      role,
		channel:   channel,
		room:      room,
		player:    player,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Connection) ID() string           { return c.id }
func (c *Connection) Role() Role           { return c.role }
func (c *Connection) Channel() Channel     { return c.channel }
func (c *Connection) Room() string         { return c.room }
func (c *Connection) Player() string       { return c.player }
func (c *Connection) CreatedAt() time.Time { return c.createdAt }

// OnlineTime returns whole seconds elapsed since the connection was created.
func (c *Connection) OnlineTime(now time.Time) int64 {
	return int64(now.Sub(c.createdAt) / time.Second)
}

// Params returns the role-specific parameters, mostly for logging.
func (c *Connection) Params() map[string]string {
	if c.role != RolePlayer {
		return map[string]string{}
	}
	return map[string]string{"room": c.room, "player": c.player}
}

func (c *Connection) String() string {
	return fmt.Sprintf("%sConnection(id=%s, params=%v)", c.role, c.id, c.Params())
}

package runtime

import (
	"board-lab/domain"
	"board-lab/errors"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// AdminRegistry holds live admin connections. Order is irrelevant.
type AdminRegistry struct {
	mu          sync.RWMutex
	connections map[*domain.Connection]struct{}
}

func NewAdminRegistry() *AdminRegistry {
	return &AdminRegistry{connections: make(map[*domain.Connection]struct{})}
}

func (r *AdminRegistry) Add(conn *domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[conn] = struct{}{}
}

// Remove fails with ErrConnectionNotFound when the handle was never added or already removed.
func (r *AdminRegistry) Remove(conn *domain.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connections[conn]; !ok {
		return errors.ErrConnectionNotFound
	}
	delete(r.connections, conn)
	return nil
}

// All returns a snapshot; later mutations do not affect it.
func (r *AdminRegistry) All() []*domain.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.connections)
}

func (r *AdminRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}

// PlayerRegistry indexes player connections as room -> player -> connections.
// A player may hold several connections at once (several tabs).
// Empty player and room buckets are pruned on removal.
type PlayerRegistry struct {
	mu    sync.RWMutex
	rooms map[string]map[string][]*domain.Connection
}

func NewPlayerRegistry() *PlayerRegistry {
	return &PlayerRegistry{rooms: make(map[string]map[string][]*domain.Connection)}
}

// Add registers conn and reports whether it is the player's first
// connection in the room.
func (r *PlayerRegistry) Add(conn *domain.Connection) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, ok := r.rooms[conn.Room()]
	if !ok {
		players = make(map[string][]*domain.Connection)
		r.rooms[conn.Room()] = players
	}
	first = len(players[conn.Player()]) == 0
	players[conn.Player()] = append(players[conn.Player()], conn)
	return first
}

// Remove deletes the exact handle and reports whether it was the player's
// last connection in the room. Removing twice is a caller defect and
// returns ErrConnectionNotFound.
func (r *PlayerRegistry) Remove(conn *domain.Connection) (last bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players, ok := r.rooms[conn.Room()]
	if !ok {
		return false, errors.ErrConnectionNotFound
	}
	connections := players[conn.Player()]
	idx := slices.Index(connections, conn)
	if idx < 0 {
		return false, errors.ErrConnectionNotFound
	}

	connections = slices.Delete(connections, idx, idx+1)
	if len(connections) == 0 {
		delete(players, conn.Player())
	} else {
		players[conn.Player()] = connections
	}
	if len(players) == 0 {
		delete(r.rooms, conn.Room())
	}
	return len(connections) == 0, nil
}

func (r *PlayerRegistry) IsPlayerOnline(room, player string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room][player]) > 0
}

func (r *PlayerRegistry) IsRoomOnline(room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room]) > 0
}

// All returns a snapshot of every player connection.
func (r *PlayerRegistry) All() []*domain.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*domain.Connection
	for _, players := range r.rooms {
		all = append(all, lo.Flatten(lo.Values(players))...)
	}
	return all
}

// Room returns a snapshot of every connection in room, across all players.
func (r *PlayerRegistry) Room(room string) []*domain.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Flatten(lo.Values(r.rooms[room]))
}

// Player returns a snapshot of the connections of one player in one room.
func (r *PlayerRegistry) Player(room, player string) []*domain.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rooms[room][player])
}

// Stats returns the number of occupied rooms and live player connections.
func (r *PlayerRegistry) Stats() (rooms, connections int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms = len(r.rooms)
	for _, players := range r.rooms {
		connections += lo.SumBy(lo.Values(players), func(c []*domain.Connection) int {
			return len(c)
		})
	}
	return rooms, connections
}

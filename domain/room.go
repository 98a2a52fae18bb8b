package domain

// PlayerPresence is the per-player flag carried in the initial snapshot.
type PlayerPresence struct {
	Online bool `json:"online"`
}

// RoomSnapshot is what a player receives right after connecting.
type RoomSnapshot struct {
	Players  map[string]PlayerPresence
	Elements map[string]Element
}

func NewRoomSnapshot() RoomSnapshot {
	return RoomSnapshot{
		Players:  make(map[string]PlayerPresence),
		Elements: make(map[string]Element),
	}
}

// AddElement records the element and marks its owner offline unless already known.
func (s RoomSnapshot) AddElement(element Element) {
	s.Elements[element.ID()] = element
	if player, ok := element.Player(); ok {
		if _, known := s.Players[player]; !known {
			s.Players[player] = PlayerPresence{Online: false}
		}
	}
}

func (s RoomSnapshot) MarkOnline(player string) {
	s.Players[player] = PlayerPresence{Online: true}
}

func (s RoomSnapshot) Data() map[string]any {
	players := make(map[string]any, len(s.Players))
	for player, presence := range s.Players {
		players[player] = map[string]any{"online": presence.Online}
	}
	elements := make(map[string]any, len(s.Elements))
	for id, element := range s.Elements {
		elements[id] = map[string]any(element)
	}
	return map[string]any{
		"players":  players,
		"elements": elements,
	}
}

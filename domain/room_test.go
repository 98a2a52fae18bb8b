package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomSnapshot_Presence(t *testing.T) {
	req := require.New(t)
	snapshot := NewRoomSnapshot()

	// Given elements owned by two players
	snapshot.AddElement(Element{"element_id": "e1", "player": "alice"})
	snapshot.AddElement(Element{"element_id": "e2", "player": "bob"})
	// And alice is connected
	snapshot.MarkOnline("alice")
	// And a later element of alice does not reset her presence
	snapshot.AddElement(Element{"element_id": "e3", "player": "alice"})

	data := snapshot.Data()
	req.Equal(map[string]any{
		"alice": map[string]any{"online": true},
		"bob":   map[string]any{"online": false},
	}, data["players"])
	req.Len(data["elements"], 3)
}

func TestRoomSnapshot_Empty(t *testing.T) {
	req := require.New(t)
	data := NewRoomSnapshot().Data()
	req.Empty(data["players"])
	req.Empty(data["elements"])
}

package e2e

import (
	"board-lab/domain"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type testBoardSuite struct {
	BaseWsSuite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, &testBoardSuite{})
}

func (s *testBoardSuite) TestTwoPlayersShareARoom() {
	room := "e2e-" + uuid.NewString()[:8]

	// Given alice alone in a fresh room
	alice := s.Player(room, "alice")
	initial := alice.Expect(domain.EventInitial)
	s.Equal(domain.TargetDirect, initial.Target)
	s.Empty(initial.Data["elements"])
	s.Empty(initial.Data["players"])

	// When bob joins
	bob := s.Player(room, "bob")
	bob.Expect(domain.EventInitial)

	// Then alice hears about it
	joined := alice.Expect(domain.EventPlayerConnected)
	s.Equal("bob", joined.Sender)
	s.Equal(domain.TargetRoom, joined.Target)

	// When alice creates an element
	alice.Send(domain.EventUpsertElement, map[string]any{
		"element_id":  nil,
		"type":        "rect",
		"coordinates": []int{1, 2, 3, 4},
		"label":       "kept as is",
	})

	// Then both players receive it with an id and an owner
	created := bob.Expect(domain.EventUpsertElement)
	alice.Expect(domain.EventUpsertElement)
	elementID, _ := created.Data["element_id"].(string)
	s.NotEmpty(elementID)
	s.Equal("alice", created.Data["player"])
	s.Equal(room, created.Data["room"])
	s.Equal("kept as is", created.Data["label"])

	// And a late comer finds it in the snapshot
	s.Eventually(func() bool {
		elements, err := s.snapshot(room)
		return err == nil && elements[elementID] != nil
	}, 5*time.Second, 200*time.Millisecond)

	// When bob deletes it
	bob.Send(domain.EventDeleteElement, map[string]any{"element_id": elementID})
	deleted := alice.Expect(domain.EventDeleteElement)
	s.Equal(map[string]any{"element_id": elementID}, deleted.Data)

	// Then it is gone for everyone
	s.Eventually(func() bool {
		elements, err := s.snapshot(room)
		return err == nil && elements[elementID] == nil
	}, 5*time.Second, 200*time.Millisecond)
}

func (s *testBoardSuite) TestReservedEventIsForbidden() {
	player := s.Player("e2e-"+uuid.NewString()[:8], "mallory")
	player.Expect(domain.EventInitial)

	player.Send(domain.EventInitial, nil)

	s.Require().NoError(player.ws.SetReadDeadline(time.Now().Add(readTimeout)))
	_, frame, err := player.ws.ReadMessage()
	s.Require().NoError(err)
	s.Equal("Forbidden", string(frame))
}

func (s *testBoardSuite) TestStatistics() {
	player := s.Player("e2e-"+uuid.NewString()[:8], "carol")
	player.Expect(domain.EventInitial)

	player.Send(domain.EventGetStatistics, nil)
	stats := player.Expect(domain.EventGetStatistics)
	s.Contains(stats.Data, "online_time")

	if s.Config.AdminAPIKey == "" {
		return
	}
	admin := s.Admin()
	admin.Send(domain.EventGetStatistics, nil)
	global := admin.Expect(domain.EventGetStatistics)
	s.Equal(domain.AdminSender, global.Sender)
	s.Contains(global.Data, "rooms")
}

// snapshot connects a throwaway observer and returns the elements of room.
// It never fails the test, Eventually runs it outside the test goroutine.
func (s *testBoardSuite) snapshot(room string) (map[string]any, error) {
	query := url.Values{"room": {room}, "player": {"observer-" + uuid.NewString()[:8]}}
	ws, resp, err := websocket.DefaultDialer.Dial(s.Config.BoardURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer ws.Close()

	for {
		if err := ws.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return nil, err
		}
		_, frame, err := ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		var envelope domain.Envelope
		if err := json.Unmarshal(frame, &envelope); err != nil {
			return nil, err
		}
		if envelope.Event == domain.EventInitial {
			elements, _ := envelope.Data["elements"].(map[string]any)
			return elements, nil
		}
	}
}

package e2e

import (
	"board-lab/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

const readTimeout = 5 * time.Second

type BaseWsSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment and skips when no board is running
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BoardURL == "" {
		s.T().Skip("E2E_BOARD_URL not set")
	}
}

// Client is one websocket connection logging what it exchanges.
type Client struct {
	s    *BaseWsSuite
	name string
	ws   *websocket.Conn
}

func (s *BaseWsSuite) header(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

func (s *BaseWsSuite) dial(name, rawURL string, header http.Header) *Client {
	s.header(name)
	ws, resp, err := websocket.DefaultDialer.Dial(rawURL, header)
	s.Require().NoError(err, "Failed to connect to board at "+rawURL)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	c := &Client{s: s, name: name, ws: ws}
	s.T().Cleanup(func() { _ = ws.Close() })
	return c
}

// Player connects to the player endpoint of room as player
func (s *BaseWsSuite) Player(room, player string) *Client {
	query := url.Values{"room": {room}, "player": {player}}
	return s.dial(player+"@"+room, s.Config.BoardURL+"/?"+query.Encode(), nil)
}

func (s *BaseWsSuite) Admin() *Client {
	header := http.Header{}
	header.Set("ADMIN_API_KEY", s.Config.AdminAPIKey)
	return s.dial("admin", s.Config.BoardURL+"/adm", header)
}

func (c *Client) Send(event string, data map[string]any) {
	frame, err := json.Marshal(domain.NewMessage(event, data))
	c.s.Require().NoError(err)
	c.debug("SENT", frame)
	c.s.Require().NoError(c.ws.WriteMessage(websocket.TextMessage, frame))
}

// Next reads the next envelope
func (c *Client) Next() domain.Envelope {
	c.s.Require().NoError(c.ws.SetReadDeadline(time.Now().Add(readTimeout)))
	_, frame, err := c.ws.ReadMessage()
	c.s.Require().NoError(err, "%s: no frame received", c.name)
	c.debug("RECEIVED", frame)

	var envelope domain.Envelope
	c.s.Require().NoError(json.Unmarshal(frame, &envelope))
	return envelope
}

// Expect reads envelopes until event shows up
func (c *Client) Expect(event string) domain.Envelope {
	for {
		envelope := c.Next()
		if envelope.Event == event {
			return envelope
		}
		c.s.T().Logf("%s: skipping %s", c.name, envelope.Event)
	}
}

func (c *Client) debug(direction string, frame []byte) {
	if !c.s.Config.DebugJSON {
		return
	}
	line := fmt.Sprintf("%s %s: %s", c.name, direction, frame)
	if c.s.Config.Colours {
		line = color.FgCyan.Render(line)
	}
	c.s.T().Log(line)
}

package websocket

import (
	"board-lab/errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	closeGrace = 100 * time.Millisecond
)

// Channel adapts a gorilla connection to domain.Channel.
// Sends are queued on a bounded buffer drained by a single writer goroutine.
type Channel struct {
	ws        *websocket.Conn
	log       *slog.Logger
	send      chan []byte
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	reason    string
}

func NewChannel(ws *websocket.Conn, log *slog.Logger, bufferSize int, maxMessageSize int64) *Channel {
	c := &Channel{
		ws:   ws,
		log:  log,
		send: make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	go c.writePump()
	return c
}

// Send queues a text frame, it never blocks.
func (c *Channel) Send(data []byte) error {
	if c.closed.Load() {
		return errors.ErrChannelClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.ErrChannelFull
	}
}

func (c *Channel) Closed() bool {
	return c.closed.Load()
}

// Close flushes queued frames, sends reason as a last text frame when set,
// then closes the connection. Only the first call has an effect.
func (c *Channel) Close(reason string) error {
	c.closeOnce.Do(func() {
		c.reason = reason
		c.closed.Store(true)
		close(c.done)
	})
	return nil
}

// Read blocks until the next text frame. Binary frames are skipped.
func (c *Channel) Read() ([]byte, error) {
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.TextMessage {
			return data, nil
		}
	}
}

func (c *Channel) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close("")
		_ = c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				c.log.Debug("Write failed, closing channel", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.drain()
			return
		}
	}
}

// drain writes what is still queued, then the close reason and a close frame.
func (c *Channel) drain() {
	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			if c.reason != "" {
				if err := c.write(websocket.TextMessage, []byte(c.reason)); err != nil {
					return
				}
			}
			closeFrame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = c.ws.WriteControl(websocket.CloseMessage, closeFrame, time.Now().Add(writeWait))
			// give the peer a moment to read the reason before the socket goes away
			time.Sleep(closeGrace)
			return
		}
	}
}

func (c *Channel) write(kind int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(kind, data)
}

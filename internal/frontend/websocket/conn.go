// Package websocket carries game sessions over websocket text frames.
package websocket

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 512
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	closeGrace     = 5 * time.Second
)

// Markers the game writes into the output stream to toggle echo. They are
// the telnet sequences so the output path is the same for every
// transport; the writer turns them into control frames.
var (
	markEchoOff = []byte{255, 251, 1}
	markEchoOn  = []byte{255, 252, 1}
)

// ErrClosed is returned by Write after the connection has gone away.
var ErrClosed = errors.New("websocket: connection closed")

// ControlFrame is sent as a JSON text frame alongside game output.
type ControlFrame struct {
	Type string `json:"type"`
	On   bool   `json:"on"`
}

// Conn is a websocket client seen as a game transport. Each incoming text
// frame is one line of input. Output queued before Close is sent ahead of
// the close frame.
type Conn struct {
	ws           *websocket.Conn
	remote       string
	writeTimeout time.Duration

	in      chan []byte
	out     chan []byte
	closing chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// NewConn wraps ws and starts its reader and writer.
//
// Precondition: ws is an upgraded connection; queueSize >= 1.
// Postcondition: Returns a running Conn. Close must be called to release it.
func NewConn(ws *websocket.Conn, remote string, writeTimeout time.Duration, queueSize int) *Conn {
	c := &Conn{
		ws:           ws,
		remote:       remote,
		writeTimeout: writeTimeout,
		in:           make(chan []byte, 16),
		out:          make(chan []byte, queueSize),
		closing:      make(chan struct{}),
		done:         make(chan struct{}),
	}
	go c.readLoop()
	go c.writeLoop()
	return c
}

func (c *Conn) readLoop() {
	defer close(c.in)
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		kind, msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		if !bytes.HasSuffix(msg, []byte("\n")) {
			msg = append(msg, '\n')
		}
		select {
		case c.in <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.shutdown()
	for {
		select {
		case p := <-c.out:
			if err := c.send(p); err != nil {
				return
			}
		case <-ticker.C:
			c.deadline()
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closing:
			c.drain()
			return
		}
	}
}

// drain sends what is still queued and then the close frame, within the
// grace period.
func (c *Conn) drain() {
	grace := c.writeTimeout
	if grace <= 0 {
		grace = closeGrace
	}
	end := time.Now().Add(grace)
	for drained := false; !drained; {
		select {
		case p := <-c.out:
			if err := c.sendBy(p, end); err != nil {
				return
			}
		default:
			drained = true
		}
	}
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), end)
}

// shutdown releases the connection once the writer is finished with it.
func (c *Conn) shutdown() {
	c.closeOnce.Do(func() { close(c.closing) })
	_ = c.ws.Close()
	close(c.done)
}

func (c *Conn) deadline() {
	if c.writeTimeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
}

// send writes p as text frames, replacing echo markers with control frames.
func (c *Conn) send(p []byte) error {
	var end time.Time
	if c.writeTimeout > 0 {
		end = time.Now().Add(c.writeTimeout)
	}
	return c.sendBy(p, end)
}

// sendBy is send with an explicit write deadline; the zero time means none.
func (c *Conn) sendBy(p []byte, end time.Time) error {
	for _, f := range Frames(p) {
		_ = c.ws.SetWriteDeadline(end)
		var err error
		if f.Control != nil {
			err = c.ws.WriteJSON(f.Control)
		} else {
			err = c.ws.WriteMessage(websocket.TextMessage, f.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Frame is either a run of output text or a control frame.
type Frame struct {
	Text    []byte
	Control *ControlFrame
}

// Frames splits game output on the echo markers.
func Frames(p []byte) []Frame {
	var frames []Frame
	for len(p) > 0 {
		i := bytes.IndexByte(p, 255)
		if i < 0 {
			frames = append(frames, Frame{Text: p})
			break
		}
		if i > 0 {
			frames = append(frames, Frame{Text: p[:i]})
		}
		switch {
		case bytes.HasPrefix(p[i:], markEchoOff):
			frames = append(frames, Frame{Control: &ControlFrame{Type: "echo", On: false}})
			p = p[i+len(markEchoOff):]
		case bytes.HasPrefix(p[i:], markEchoOn):
			frames = append(frames, Frame{Control: &ControlFrame{Type: "echo", On: true}})
			p = p[i+len(markEchoOn):]
		default:
			p = p[i+1:]
		}
	}
	return frames
}

// Kind implements world.Transport.
func (c *Conn) Kind() string { return "websocket" }

// RemoteAddr returns the client address, honoring proxy headers.
func (c *Conn) RemoteAddr() string { return c.remote }

// Incoming delivers one line per text frame and is closed when the client goes away.
func (c *Conn) Incoming() <-chan []byte { return c.in }

// Write queues p for the client without blocking.
//
// Postcondition: Returns len(p) or 0, or ErrClosed once the connection is gone.
func (c *Conn) Write(p []byte) (int, error) {
	select {
	case <-c.closing:
		return 0, ErrClosed
	default:
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	select {
	case c.out <- chunk:
		return len(p), nil
	default:
		return 0, nil
	}
}

// EchoOff marks the point where the client should hide input.
func (c *Conn) EchoOff() []byte { return markEchoOff }

// EchoOn marks the point where the client may show input again.
func (c *Conn) EchoOn() []byte { return markEchoOn }

// Close stops accepting output. The writer sends what is queued, then the
// close frame, then releases the connection. Close does not wait for it.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })
	return nil
}

// Done is closed once the connection has been released.
func (c *Conn) Done() <-chan struct{} { return c.done }

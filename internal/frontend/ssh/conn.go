// Package ssh carries game sessions over ssh shell channels. The server
// asks for no client authentication; players log in through the game.
package ssh

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"time"
)

const readChunk = 4096

// closeGrace bounds how long queued output may take to reach the client
// after Close when no write timeout is configured.
const closeGrace = 5 * time.Second

// ErrClosed is returned by Write after the session has gone away.
var ErrClosed = errors.New("ssh: session closed")

// Conn is an ssh shell session seen as a game transport. Output queued
// before Close is still delivered.
type Conn struct {
	ch           io.ReadWriteCloser
	closer       io.Closer
	remote       string
	writeTimeout time.Duration

	in      chan []byte
	out     chan []byte
	closing chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// NewConn wraps a session channel. closer, when non-nil, is closed along
// with the channel and is normally the underlying ssh connection.
//
// Precondition: queueSize >= 1.
// Postcondition: Returns a running Conn. Close must be called to release it.
func NewConn(ch io.ReadWriteCloser, closer io.Closer, remote string, writeTimeout time.Duration, queueSize int) *Conn {
	c := &Conn{
		ch:           ch,
		closer:       closer,
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
	buf := make([]byte, readChunk)
	for {
		n, err := c.ch.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case c.in <- chunk:
			case <-c.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// writeLoop writes queued output. An ssh channel has no write deadline,
// so a write that outlives writeTimeout closes the session.
func (c *Conn) writeLoop() {
	defer c.shutdown()
	for {
		select {
		case p := <-c.out:
			if err := c.write(CRLF(p), c.writeTimeout); err != nil {
				return
			}
		case <-c.closing:
			c.drain()
			return
		}
	}
}

// drain writes what is still queued, giving up at the grace deadline.
func (c *Conn) drain() {
	grace := c.writeTimeout
	if grace <= 0 {
		grace = closeGrace
	}
	end := time.Now().Add(grace)
	for {
		select {
		case p := <-c.out:
			left := time.Until(end)
			if left <= 0 || c.write(CRLF(p), left) != nil {
				return
			}
		default:
			return
		}
	}
}

// shutdown ends the session once the writer is finished with it.
func (c *Conn) shutdown() {
	c.closeOnce.Do(func() { close(c.closing) })
	_ = c.ch.Close()
	if c.closer != nil {
		_ = c.closer.Close()
	}
	close(c.done)
}

func (c *Conn) write(p []byte, timeout time.Duration) error {
	if timeout <= 0 {
		_, err := c.ch.Write(p)
		return err
	}
	errc := make(chan error, 1)
	go func() {
		_, err := c.ch.Write(p)
		errc <- err
	}()
	select {
	case err := <-errc:
		return err
	case <-time.After(timeout):
		return errors.New("ssh: write timed out")
	}
}

// CRLF turns bare line feeds into CRLF pairs for raw terminals.
func CRLF(p []byte) []byte {
	if !bytes.Contains(p, []byte("\n")) {
		return p
	}
	out := make([]byte, 0, len(p)+8)
	for i, b := range p {
		if b == '\n' && (i == 0 || p[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	return out
}

// Kind implements world.Transport.
func (c *Conn) Kind() string { return "ssh" }

// RemoteAddr returns the client address.
func (c *Conn) RemoteAddr() string { return c.remote }

// Incoming delivers raw input and is closed when the session ends.
func (c *Conn) Incoming() <-chan []byte { return c.in }

// Write queues p for the client without blocking.
//
// Postcondition: Returns len(p) or 0, or ErrClosed once the session is gone.
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

// EchoOff returns nil: the client echoes locally and the server never does.
func (c *Conn) EchoOff() []byte { return nil }

// EchoOn returns nil.
func (c *Conn) EchoOn() []byte { return nil }

// Close stops accepting output and ends the session once the queued
// output has been written. It does not wait for the writer.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })
	return nil
}

// Done is closed once the session has ended.
func (c *Conn) Done() <-chan struct{} { return c.done }

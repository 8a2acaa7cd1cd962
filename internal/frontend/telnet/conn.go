package telnet

import (
	"errors"
	"net"
	"sync"
	"time"
)

// Telnet IAC (Interpret As Command) constants per RFC 854.
const (
	IAC  byte = 255 // Interpret As Command
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250 // Sub-negotiation Begin
	SE   byte = 240 // Sub-negotiation End
	NOP  byte = 241
	GA   byte = 249 // Go Ahead

	// Telnet options
	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

const readChunk = 4096

// closeGrace bounds how long queued output may take to reach the client
// after Close when no write timeout is configured.
const closeGrace = 5 * time.Second

// ErrClosed is returned by Write after the connection has gone away.
var ErrClosed = errors.New("telnet: connection closed")

// Conn is a telnet client connection seen as a game transport. A reader
// goroutine strips IAC sequences and delivers input chunks; a writer
// goroutine drains a bounded output queue so the game loop never blocks
// on a slow client. Output queued before Close is still delivered.
type Conn struct {
	raw          net.Conn
	writeTimeout time.Duration

	in      chan []byte
	out     chan []byte
	closing chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// NewConn wraps raw and starts its reader and writer.
//
// Precondition: raw must be a valid, open network connection; queueSize >= 1.
// Postcondition: Returns a running Conn. Close must be called to release it.
func NewConn(raw net.Conn, writeTimeout time.Duration, queueSize int) *Conn {
	c := &Conn{
		raw:          raw,
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
	var f Filter
	buf := make([]byte, readChunk)
	for {
		n, err := c.raw.Read(buf)
		if n > 0 {
			if chunk := f.Write(buf[:n]); len(chunk) > 0 {
				select {
				case c.in <- chunk:
				case <-c.done:
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

func (c *Conn) writeLoop() {
	defer c.shutdown()
	for {
		select {
		case p := <-c.out:
			if c.writeTimeout > 0 {
				_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			}
			if _, err := c.raw.Write(p); err != nil {
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
	_ = c.raw.SetWriteDeadline(time.Now().Add(grace))
	for {
		select {
		case p := <-c.out:
			if _, err := c.raw.Write(p); err != nil {
				return
			}
		default:
			return
		}
	}
}

// shutdown releases the socket once the writer is finished with it.
func (c *Conn) shutdown() {
	c.closeOnce.Do(func() { close(c.closing) })
	_ = c.raw.Close()
	close(c.done)
}

// Kind implements world.Transport.
func (c *Conn) Kind() string { return "telnet" }

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() string { return c.raw.RemoteAddr().String() }

// Incoming delivers filtered input and is closed when the client goes away.
func (c *Conn) Incoming() <-chan []byte { return c.in }

// Write queues p for the client. When the queue is full nothing is taken
// and the caller keeps the bytes for the next pulse.
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

// EchoOff asks the client to stop echoing, for password entry.
func (c *Conn) EchoOff() []byte { return []byte{IAC, WILL, OptEcho} }

// EchoOn gives echoing back to the client.
func (c *Conn) EchoOn() []byte { return []byte{IAC, WONT, OptEcho} }

// Close stops accepting output and hangs up once the queued output has
// been written. It does not wait for the writer.
//
// Postcondition: Write returns ErrClosed; Done is closed when the socket is.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.closing) })
	return nil
}

// Done is closed once the socket has been closed.
func (c *Conn) Done() <-chan struct{} { return c.done }

type filterState int

const (
	stData filterState = iota
	stIAC
	stOption
	stSub
	stSubIAC
)

// Filter strips telnet commands from a byte stream. A command may be
// split across calls to Write. Literal 0xFF bytes are dropped along with
// the commands since the game accepts only printable input.
type Filter struct {
	state filterState
}

// Write returns the data bytes of p.
func (f *Filter) Write(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		switch f.state {
		case stData:
			if b == IAC {
				f.state = stIAC
				continue
			}
			out = append(out, b)
		case stIAC:
			switch b {
			case WILL, WONT, DO, DONT:
				f.state = stOption
			case SB:
				f.state = stSub
			default:
				f.state = stData
			}
		case stOption:
			f.state = stData
		case stSub:
			if b == IAC {
				f.state = stSubIAC
			}
		case stSubIAC:
			if b == SE {
				f.state = stData
			} else {
				f.state = stSub
			}
		}
	}
	return out
}

// FilterIAC removes Telnet IAC sequences from a complete input buffer.
//
// Postcondition: Returns input with all IAC sequences removed.
func FilterIAC(input []byte) []byte {
	var f Filter
	return f.Write(input)
}

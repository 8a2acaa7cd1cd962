package testutil

import (
	"net"
	"strings"
	"testing"
	"time"
)

const (
	tnIAC  byte = 255
	tnWILL byte = 251
	tnWONT byte = 252
	tnDO   byte = 253
	tnDONT byte = 254
	tnSB   byte = 250
	tnSE   byte = 240
	tnEcho byte = 1
)

// TelnetClient plays the player's side of a telnet session. It strips
// negotiation from what the server sends and remembers whether the server
// has taken over echoing, as it does at password prompts.
type TelnetClient struct {
	conn net.Conn
	t    *testing.T

	text    strings.Builder
	pending []byte
	echoOff bool
}

// NewTelnetClient dials addr.
//
// Precondition: a server is listening on addr.
// Postcondition: Returns a connected client closed by t.Cleanup, or fails
// the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil reads until the text seen since the last call contains substr
// and returns that text with negotiation removed.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	tmp := make([]byte, 1024)
	for !strings.Contains(c.text.String(), substr) {
		n, err := c.conn.Read(tmp)
		c.feed(tmp[:n])
		if err != nil && !strings.Contains(c.text.String(), substr) {
			c.t.Fatalf("waiting for %q: got %q: %v", substr, c.text.String(), err)
		}
	}
	out := c.text.String()
	c.text.Reset()
	return out
}

// feed splits raw server bytes into text and negotiation. A sequence cut
// off at the end of b waits for the next read.
func (c *TelnetClient) feed(b []byte) {
	buf := append(c.pending, b...)
	c.pending = nil
	for i := 0; i < len(buf); i++ {
		if buf[i] != tnIAC {
			c.text.WriteByte(buf[i])
			continue
		}
		if i+1 >= len(buf) {
			c.pending = append(c.pending, buf[i:]...)
			return
		}
		switch cmd := buf[i+1]; cmd {
		case tnIAC:
			c.text.WriteByte(tnIAC)
			i++
		case tnWILL, tnWONT, tnDO, tnDONT:
			if i+2 >= len(buf) {
				c.pending = append(c.pending, buf[i:]...)
				return
			}
			if buf[i+2] == tnEcho {
				switch cmd {
				case tnWILL:
					c.echoOff = true
				case tnWONT:
					c.echoOff = false
				}
			}
			i += 2
		case tnSB:
			end := strings.Index(string(buf[i:]), string([]byte{tnIAC, tnSE}))
			if end < 0 {
				c.pending = append(c.pending, buf[i:]...)
				return
			}
			i += end + 1
		default:
			i++
		}
	}
}

// EchoSuppressed reports whether the server last asked to do the echoing
// itself.
func (c *TelnetClient) EchoSuppressed() bool { return c.echoOff }

// Send writes text as one line.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	c.SendRaw([]byte(text + "\r\n"))
}

// SendRaw writes b unchanged.
func (c *TelnetClient) SendRaw(b []byte) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := c.conn.Write(b); err != nil {
		c.t.Fatalf("sending %q: %v", b, err)
	}
}

// Close hangs up.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}
